/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/repscan/repscan/app"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	scanIP     string
	scanURL    string
	rateLimit  float64
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repscan",
	Short: "scan IPs and URLs against reputation and geolocation services",
	Long:  `scan IPs and URLs against reputation and geolocation services.`,
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		cfg, shouldExit, err := app.LoadConfig(configFile)
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}
		if shouldExit {
			return
		}

		if rateLimit > 0 {
			cfg.RateLimit = rateLimit
		}

		a := app.NewApp(
			app.NewReputationClient(cfg),
			app.NewGeoClient(cfg),
			app.NewReporter(os.Stdout),
			cfg.RateLimit,
			os.Stdin,
			os.Stdout,
		)

		if err := a.Run(scanIP, scanURL); err != nil {
			log.Fatalf("Error: %s\n", err)
		}

		if len(a.Results.Findings) == 0 {
			log.Println("Done.")

			return
		}

		for _, finding := range a.Results.Findings {
			log.Printf("%s scan %s failed: %s\n", finding.Kind, finding.Target, finding.Error)
		}

		log.Fatalf("Finished - %d failed scans", len(a.Results.Findings))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "config.yaml", "[optional] path to the YAML config file, generated with defaults when missing")
	rootCmd.Flags().StringVar(&scanIP, "ip", "", "[optional] IP address to scan, bypasses the interactive prompt")
	rootCmd.Flags().StringVar(&scanURL, "url", "", "[optional] URL to scan, bypasses the interactive prompt")
	rootCmd.Flags().Float64Var(&rateLimit, "rateLimit", 0, "[optional] override the configured rate limit of requests / second")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "[optional] log the underlying cause of scan failures")
}

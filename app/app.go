package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	valid "github.com/asaskevich/govalidator"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrLookupFailed         = errors.New("geolocation lookup failed")
)

type reputationScanner interface {
	ScanIP(ip string) (float64, error)
	ScanURL(rawURL string) (float64, error)
}

type geoLookup interface {
	Lookup(ip string) (*Location, error)
}

type limiter interface {
	Wait(context.Context) error
}

type App struct {
	Results    *Results
	reputation reputationScanner
	geo        geoLookup
	reporter   *Reporter
	limiter    limiter
	in         *bufio.Reader
	out        io.Writer
}

func NewApp(
	reputation reputationScanner,
	geo geoLookup,
	reporter *Reporter,
	rateLimit float64,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		Results: &Results{
			Findings: []Finding{},
		},
		reputation: reputation,
		geo:        geo,
		reporter:   reporter,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
		in:         bufio.NewReader(in),
		out:        out,
	}
}

// Run drives one interactive session: scan an IP (geolocating it when the
// scan succeeds), then scan a URL. Targets given as arguments bypass their
// prompt; an empty answer skips that branch. Remote failures are reported and
// recorded but never propagate.
func (a *App) Run(ip, rawURL string) error {
	var err error

	if ip == "" {
		ip, err = a.prompt("IP address to scan (empty to skip): ")
		if err != nil {
			return err
		}
	}
	if ip != "" {
		a.scanIP(ip)
	}

	if rawURL == "" {
		rawURL, err = a.prompt("URL to scan (empty to skip): ")
		if err != nil {
			return err
		}
	}
	if rawURL != "" {
		a.scanURL(rawURL)
	}

	return nil
}

func (a *App) scanIP(ip string) {
	if !valid.IsIP(ip) {
		log.Warnf("%q does not look like an IP address, scanning anyway", ip)
	}

	target := ScanTarget{Kind: KindIP, Value: ip}
	a.pace()

	percentage, err := a.reputation.ScanIP(ip)
	if err != nil {
		log.Debugf("IP scan: %v", err)
		a.reporter.LogFailure(target.Kind, target.Value)
		a.addFinding(target, err)

		return
	}

	a.reporter.LogScan(target.Kind, target.Value, percentage)
	a.locate(ip)
}

func (a *App) locate(ip string) {
	target := ScanTarget{Kind: KindLocation, Value: ip}
	a.pace()

	loc, err := a.geo.Lookup(ip)
	if err != nil {
		log.Debugf("geolocation lookup: %v", err)
		a.reporter.LogFailure(target.Kind, target.Value)
		a.addFinding(target, err)

		return
	}

	a.reporter.LogLocation(ip, loc)
}

func (a *App) scanURL(rawURL string) {
	if !valid.IsRequestURL(rawURL) {
		log.Warnf("%q does not look like a URL, scanning anyway", rawURL)
	}

	target := ScanTarget{Kind: KindURL, Value: rawURL}
	a.pace()

	percentage, err := a.reputation.ScanURL(rawURL)
	if err != nil {
		log.Debugf("URL scan: %v", err)
		a.reporter.LogFailure(target.Kind, target.Value)
		a.addFinding(target, err)

		return
	}

	a.reporter.LogScan(target.Kind, target.Value, percentage)
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)

	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (a *App) pace() {
	if err := a.limiter.Wait(context.Background()); err != nil {
		log.Debugf("error while rate limiting: %v", err)
	}
}

func (a *App) addFinding(target ScanTarget, err error) {
	a.Results.Findings = append(
		a.Results.Findings,
		Finding{
			Kind:   string(target.Kind),
			Target: target.Value,
			Error:  fmt.Sprint(err),
		},
	)
}

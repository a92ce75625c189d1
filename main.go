/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/repscan/repscan/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// Version is the wattle release, set at link time for tagged builds.
var Version = "0.1.0"

var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "wattle",
		Usage:                  "A tiny expression language that compiles to WebAssembly text",
		Version:                Version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log each compilation stage to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetFlags(log.Ltime | log.Lmicroseconds)
			if !c.Bool("verbose") {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: commands,
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

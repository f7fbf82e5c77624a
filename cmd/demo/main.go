// Command demo runs the graphics pipeline in an ebiten window or, with
// -terminal, in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plus3/kestrel/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("demo", flag.ContinueOnError)
	configPath := flags.String("config", "", "Optional YAML config file.")
	terminal := flags.Bool("terminal", false, "Render to the terminal instead of a window.")
	debug := flags.Bool("debug", false, "Start with the debug overlay enabled.")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	if *debug {
		cfg.Graphics.Debug = true
	}
	cfg.Apply()

	if !*terminal {
		return runWindow(cfg, cfg.Logger(os.Stderr))
	}

	// The terminal owns stdout; logs go to a file next to the binary.
	f, err := os.Create("demo.log")
	if err != nil {
		return err
	}
	defer f.Close()
	return runTerminal(cfg, cfg.Logger(f))
}

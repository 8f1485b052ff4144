package main

import (
	"fmt"
	"io"
	"log"
	"os"

	lib "github.com/awused/backgroundchanger/lib"
	"github.com/urfave/cli/v2"
)

const silent = "silent"
const configFlag = "config"

// Accepted anywhere on the command line, not only before the arguments
var silentArgs = []string{"--" + silent, "--hide", "-s"}

var (
	conf     *lib.Config
	out      = lib.NewOutput(false)
	platform *lib.Platform
	logFile  *os.File
)

func main() {
	lib.AttachParentConsole()

	args, quiet := splitSilentArgs(os.Args)
	err := newApp(quiet).Run(args)
	if err != nil {
		reportErr(err)
	}

	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newApp(quiet bool) *cli.App {
	app := cli.NewApp()
	app.Name = "backgroundchanger"
	app.Usage = "Set a wallpaper on one monitor of a multi-monitor desktop"
	app.ArgsUsage = "<image_path> [monitor_index]"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    silent,
			Aliases: []string{"hide", "s"},
			Usage:   "Hide the console window and suppress all output",
		},
		&cli.StringFlag{
			Name:  configFlag,
			Usage: "Read configuration from this TOML file instead of the default locations",
		},
	}
	app.Before = func(c *cli.Context) error {
		return beforeFunc(c, quiet || c.Bool(silent))
	}
	app.Action = setAction
	app.Commands = []*cli.Command{
		listCommand(),
		previewCommand(),
		randomCommand(),
		interactiveCommand(),
		configCommand(),
	}
	return app
}

// splitSilentArgs strips the silent flags wherever they appear.
func splitSilentArgs(args []string) ([]string, bool) {
	quiet := false
	rest := make([]string, 0, len(args))

ArgLoop:
	for i, a := range args {
		if i > 0 {
			for _, s := range silentArgs {
				if a == s {
					quiet = true
					continue ArgLoop
				}
			}
		}
		rest = append(rest, a)
	}
	return rest, quiet
}

func beforeFunc(c *cli.Context, quiet bool) error {
	var err error
	conf, err = lib.Init(c.String(configFlag))
	if err != nil {
		return err
	}

	quiet = quiet || conf.Silent
	out = lib.NewOutput(quiet)
	if quiet {
		lib.HideConsole()
	}

	if conf.LogFile != "" {
		f, err := os.OpenFile(conf.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("Error opening log file: %w", err)
		}
		logFile = f
		log.SetOutput(f)
	} else {
		// Output already covers the console
		log.SetOutput(io.Discard)
	}

	platform = lib.NewPlatform(conf)
	return nil
}

// Errors are reported exactly once, here
func reportErr(err error) {
	log.Println(err)
	out.Printf("Error: %v\n", err)
}

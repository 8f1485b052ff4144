package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
)

func interactiveCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "interactive"
	cmd.Usage = "Interactively move a single image between monitors"
	cmd.ArgsUsage = "FILE"

	cmd.Action = interactiveAction

	return cmd
}

func interactiveAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("Missing input file")
	}

	w, err := filepath.Abs(c.Args().First())
	if err != nil {
		return err
	}

	// Large buffered channel so it doesn't block signals if it's busy
	sigs := make(chan os.Signal, 100)
	promptChan := make(chan error, 1)
	inputChan := make(chan string)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigs)

	go func() {
		promptChan <- promptUntilDone(w, inputChan)
	}()

	for {
		select {
		case err := <-promptChan:
			return err
		case <-sigs:
			// We need to make sure we clean up, so consume sigint
			inputChan <- "exit"
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "exit", Description: "Exit the program"},
		{Text: "list", Description: "List monitors and the combined desktop"},
		{Text: "monitor", Description: "Set the image on the monitor with this index"},
		{Text: "preview", Description: "Write the combined canvas for a monitor " +
			"without applying it"},
	}
	return prompt.FilterHasPrefix(s, d.TextBeforeCursor(), true)
}

// Commands that take a monitor index
type indexCommand func(wallpaper string, index int) error

func promptUntilDone(wallpaper string, inputChan chan string) error {
	executors := map[string]indexCommand{
		"monitor ": interactiveApply,
		"m ":       interactiveApply,
		"preview ": interactivePreview,
		"p ":       interactivePreview,
	}

	exit := prompt.OptionAddKeyBind(prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(b *prompt.Buffer) {
			inputChan <- "exit"
		},
	})

	if err := listMonitors(false); err != nil {
		return err
	}

PromptLoop:
	for {
		go func() {
			// prompt.Input is blocking, synchronous, and provides no way to abort it
			inputChan <- strings.ToLower(prompt.Input("> ", completer, exit))
		}()
		in := strings.TrimSpace(<-inputChan)
		if in == "exit" {
			return nil
		}
		if in == "list" {
			reportInteractive(listMonitors(false))
			continue
		}

		// Very naive, but adequate
		for s, e := range executors {
			if strings.HasPrefix(in, s) {
				index, err := parseMonitorIndex(strings.TrimSpace(strings.TrimPrefix(in, s)))
				if err == nil {
					err = e(wallpaper, index)
				}
				reportInteractive(err)
				continue PromptLoop
			}
		}

		fmt.Println("Unknown command")
	}
}

func interactiveApply(wallpaper string, index int) error {
	_, err := applyWallpaper(wallpaper, index)
	return err
}

func interactivePreview(wallpaper string, index int) error {
	monitors, err := platform.GetMonitors()
	if err != nil {
		return err
	}
	return previewCanvas(
		wallpaper, monitors, index, filepath.Join(conf.TempDirectory, previewFile))
}

// Errors don't end an interactive session
func reportInteractive(err error) {
	if err != nil {
		fmt.Println("Error:", err)
	}
}

package main

import (
	"errors"

	lib "github.com/awused/backgroundchanger/lib"
	"github.com/awused/go-strpick/persistent"
	"github.com/urfave/cli/v2"
)

func randomCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "random"
	cmd.Usage = "Set a random image from OriginalsDirectory, avoiding recent picks"
	cmd.ArgsUsage = "[monitor_index]"

	cmd.Action = randomAction

	return cmd
}

func randomAction(c *cli.Context) error {
	if conf.DatabaseDir == "" {
		return errors.New("Config missing DatabaseDir")
	}

	index := 0
	if c.NArg() > 0 {
		var err error
		index, err = parseMonitorIndex(c.Args().First())
		if err != nil {
			return err
		}
	}

	picker, err := persistent.NewPicker(conf.DatabaseDir)
	if err != nil {
		return err
	}
	defer picker.Close()

	originals, err := lib.GetAllOriginals()
	if err != nil {
		return err
	}

	err = picker.AddAll(originals)
	if err != nil {
		return err
	}

	sz, err := picker.Size()
	if err != nil {
		return err
	}
	if sz == 0 {
		return errors.New("No wallpapers present in OriginalsDirectory")
	}

	picks, err := picker.TryUniqueN(1)
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		return errors.New("Picker returned no wallpaper")
	}

	absPath, err := lib.GetFullInputPath(picks[0])
	if err != nil {
		return err
	}

	_, err = applyWallpaper(absPath, index)
	if err != nil {
		return err
	}

	// Forget files that have been removed from OriginalsDirectory
	return picker.CleanDB()
}

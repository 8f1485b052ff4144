package main

import (
	"fmt"
	"log"
	"strconv"

	lib "github.com/awused/backgroundchanger/lib"
	"github.com/urfave/cli/v2"
)

func setAction(c *cli.Context) error {
	if c.NArg() == 0 {
		printUsage()
		return listMonitors(false)
	}
	if c.NArg() > 2 {
		return fmt.Errorf("Too many arguments: %v", c.Args().Slice())
	}

	index := 0
	if c.NArg() == 2 {
		var err error
		index, err = parseMonitorIndex(c.Args().Get(1))
		if err != nil {
			return err
		}
	}

	_, err := applyWallpaper(c.Args().First(), index)
	return err
}

func printUsage() {
	out.Println("Usage: backgroundchanger <image_path> [monitor_index] [--silent]")
	out.Println("  image_path: Path to the .png or .jpg image file")
	out.Println("  monitor_index: Optional monitor index (0-based, default: 0)")
	out.Println("  --silent, --hide, -s: Hide the console window during execution")
	out.Println()
	out.Println("Available monitors:")
}

func parseMonitorIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("Invalid monitor index [%s]", s)
	}
	return i, nil
}

func applyWallpaper(imagePath string, index int) (lib.Applied, error) {
	if err := lib.CheckImagePath(imagePath); err != nil {
		return lib.Applied{}, err
	}

	out.Printf("Setting background image: %s\n", imagePath)
	out.Printf("Target monitor index: %d\n", index)

	monitors, err := platform.GetMonitors()
	if err != nil {
		return lib.Applied{}, err
	}

	applied, err := lib.NewSelector(platform, monitors, conf, out).Apply(imagePath, index)
	if err != nil {
		return lib.Applied{}, err
	}

	log.Printf("Wallpaper [%s] applied to monitor %d via %s\n", imagePath, index, applied.Via)
	return applied, nil
}

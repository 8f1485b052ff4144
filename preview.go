package main

import (
	"errors"
	"path/filepath"

	lib "github.com/awused/backgroundchanger/lib"
	"github.com/urfave/cli/v2"
)

const output = "output"

const previewFile = "BackgroundChanger_Preview.bmp"

func previewCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "preview"
	cmd.Usage = "Write the combined wallpaper for a monitor without applying it"
	cmd.ArgsUsage = "<image_path> [monitor_index]"
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    output,
			Aliases: []string{"o"},
			Usage:   "Where to write the canvas, defaults to " + previewFile + " in TempDirectory",
		},
	}

	cmd.Action = previewAction

	return cmd
}

func previewAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("Missing input file")
	}

	index := 0
	if c.NArg() > 1 {
		var err error
		index, err = parseMonitorIndex(c.Args().Get(1))
		if err != nil {
			return err
		}
	}

	outFile := c.String(output)
	if outFile == "" {
		outFile = filepath.Join(conf.TempDirectory, previewFile)
	}

	monitors, err := platform.GetMonitors()
	if err != nil {
		return err
	}

	return previewCanvas(c.Args().First(), monitors, index, outFile)
}

func previewCanvas(imagePath string, monitors []lib.MonitorRect, index int, outFile string) error {
	// Check the index before spending time decoding
	if err := lib.ValidateMonitorIndex(monitors, index); err != nil {
		return err
	}

	img, err := lib.DecodeImage(imagePath)
	if err != nil {
		return err
	}

	canvas, placed, err := lib.Compose(img, monitors, index)
	if err != nil {
		return err
	}

	if err = lib.WriteCanvas(outFile, canvas); err != nil {
		return err
	}

	b := canvas.Bounds()
	out.Printf("Combined wallpaper: %dx%d\n", b.Dx(), b.Dy())
	for i := range monitors {
		if i == index {
			out.Printf("Image drawn on monitor %d at (%d, %d) with size %dx%d\n",
				i, placed.Min.X, placed.Min.Y, placed.Dx(), placed.Dy())
		} else {
			out.Printf("Monitor %d filled with black background\n", i)
		}
	}
	out.Printf("Preview saved to: %s\n", outFile)
	return nil
}

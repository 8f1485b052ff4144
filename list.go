package main

import (
	lib "github.com/awused/backgroundchanger/lib"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const yamlFlag = "yaml"

func listCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "list"
	cmd.Usage = "List detected monitors and the combined desktop bounds"
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  yamlFlag,
			Usage: "Print the listing as YAML",
		},
	}

	cmd.Action = func(c *cli.Context) error {
		return listMonitors(c.Bool(yamlFlag))
	}

	return cmd
}

type monitorListing struct {
	Monitors []indexedMonitor  `yaml:"monitors"`
	Combined lib.DesktopBounds `yaml:"combined"`
}

type indexedMonitor struct {
	Index int `yaml:"index"`

	lib.MonitorRect `yaml:",inline"`
}

func newMonitorListing(monitors []lib.MonitorRect) (monitorListing, error) {
	b, err := lib.CombinedBounds(monitors)
	if err != nil {
		return monitorListing{}, err
	}

	l := monitorListing{Combined: b}
	for i, m := range monitors {
		l.Monitors = append(l.Monitors, indexedMonitor{Index: i, MonitorRect: m})
	}
	return l, nil
}

func listMonitors(asYAML bool) error {
	monitors, err := platform.GetMonitors()
	if err != nil {
		return err
	}

	l, err := newMonitorListing(monitors)
	if err != nil {
		return err
	}

	if asYAML {
		data, err := yaml.Marshal(l)
		if err != nil {
			return err
		}
		out.Printf("%s", data)
		return nil
	}

	out.Printf("Total monitors detected: %d\n", len(l.Monitors))
	for _, m := range l.Monitors {
		out.Printf("  %d: %s\n", m.Index, m.MonitorRect)
	}
	out.Printf("Combined desktop: %s\n", l.Combined)
	return nil
}

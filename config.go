package main

import (
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func configCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "config"
	cmd.Usage = "Print the effective configuration, defaults included"

	cmd.Action = func(c *cli.Context) error {
		data, err := yaml.Marshal(conf)
		if err != nil {
			return err
		}
		out.Printf("%s", data)
		return nil
	}

	return cmd
}

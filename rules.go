package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/provsniff/lib/rules"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "rules",
		Usage:    "List the available rules and the codes they report",
		Category: "check",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the list as JSON",
			},
		},
		Action: listRules,
	})
}

func listRules(c *cli.Context) error {
	catalog := rules.Catalog()

	if c.Bool("json") {
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(catalog); err != nil {
			return cli.Exit(color.RedString("Error encoding rules: %s", err), 1)
		}
		return nil
	}

	for _, info := range catalog {
		fmt.Fprintf(c.App.Writer, "%s\n    %s\n    codes: %s\n", color.New(color.Bold).Sprint(info.Name), info.Description, strings.Join(info.Codes, ", "))
	}
	return nil
}

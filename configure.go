package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/provsniff/lib/project"
	"github.com/vyPal/provsniff/lib/rules/models"
	"github.com/vyPal/provsniff/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Write a default " + project.FileName,
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file without asking",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Ask for the class and method names instead of using Laravel's",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, project.FileName)

	conf := project.Default()
	prompt := util.NewPrompter(c.App.Reader, c.App.Writer)

	if c.Bool("interactive") {
		if err := askNames(prompt, &conf); err != nil {
			return cli.Exit(color.RedString("Error reading answers: %s", err), 1)
		}
	}

	written, err := conf.Save(path, c.Bool("force"), prompt)
	if err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", path, err), 1)
	}
	if !written {
		fmt.Fprintf(c.App.Writer, "Left %s unchanged\n", path)
		return nil
	}
	fmt.Fprintln(c.App.Writer, color.GreenString("Wrote %s", path))
	return nil
}

func askNames(prompt *util.Prompter, conf *project.Config) error {
	var err error
	p := &conf.Providers

	if p.BaseClass, err = prompt.PromptString("Provider base class", p.BaseClass); err != nil {
		return err
	}
	if p.DeferrableInterface, err = prompt.PromptString("Deferrable interface", p.DeferrableInterface); err != nil {
		return err
	}
	if p.ProvidesMethod, err = prompt.PromptString("Provides method", p.ProvidesMethod); err != nil {
		return err
	}
	if p.BindingMethods, err = prompt.PromptList("Binding methods", p.BindingMethods); err != nil {
		return err
	}

	guarded, err := prompt.PromptYN("Report models using $guarded?", true)
	if err != nil {
		return err
	}
	if !guarded {
		conf.Rules[models.Name] = project.RuleConfig{Enabled: &guarded}
	}
	return nil
}

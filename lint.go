package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/cache"
	"github.com/vyPal/provsniff/lib/project"
	"github.com/vyPal/provsniff/lib/report"
	"github.com/vyPal/provsniff/lib/rules"
	"github.com/vyPal/provsniff/lib/runner"
	"github.com/vyPal/provsniff/lib/workspace"
	"github.com/zeebo/xxh3"
)

const (
	exitProblems = 1
	exitUsage    = 2
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "lint",
		Usage:     "Check PHP files",
		Category:  "check",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the config file. Defaults to the nearest " + project.FileName,
				EnvVars: []string{"PROVSNIFF_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format: text, json or checkstyle",
				Value:   "text",
				EnvVars: []string{"PROVSNIFF_FORMAT"},
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of files checked in parallel. 0 uses every CPU",
				EnvVars: []string{"PROVSNIFF_JOBS"},
			},
			&cli.BoolFlag{
				Name:    "no-cache",
				Aliases: []string{"n"},
				Usage:   "Disables caching",
				EnvVars: []string{"PROVSNIFF_NO_CACHE"},
			},
			&cli.BoolFlag{
				Name:  "changed",
				Usage: "Only check files changed in the git working tree",
			},
			&cli.StringSliceFlag{
				Name:    "rule",
				Aliases: []string{"r"},
				Usage:   "Only run the named rule. Can be repeated",
			},
		},
		Action: lint,
	})
}

// loadConfig reads the config named by path, or the nearest project file when
// path is empty, and returns it with the directory relative paths resolve from.
func loadConfig(path string) (project.Config, string, error) {
	if path == "" {
		found, ok := project.Find(".")
		if !ok {
			slog.Debug("no project file, using defaults")
			return project.Default(), ".", nil
		}
		path = found
	}

	conf, err := project.Load(path)
	if err != nil {
		return project.Config{}, "", err
	}
	slog.Debug("loaded config", "path", path)
	return conf, filepath.Dir(path), nil
}

func usageError(format string, a ...interface{}) error {
	return cli.Exit(color.RedString(format, a...), exitUsage)
}

func lint(c *cli.Context) error {
	conf, root, err := loadConfig(c.String("config"))
	if err != nil {
		return usageError("Error loading config: %s", err)
	}
	if err := conf.CheckRequires(Version); err != nil {
		return usageError("Error: %s", err)
	}
	if c.IsSet("jobs") {
		conf.Jobs = c.Int("jobs")
	}

	only := c.StringSlice("rule")
	factory := func() (*analyzer.Analyzer, error) {
		return rules.New(&conf, only...)
	}
	if _, err := factory(); err != nil {
		return usageError("Error: %s", err)
	}

	reporter, err := report.For(c.String("format"), Version)
	if err != nil {
		return usageError("Error: %s", err)
	}

	files, err := targets(c, conf)
	if err != nil {
		return usageError("Error finding files: %s", err)
	}
	slog.Debug("discovered files", "count", len(files))

	var results *cache.Results
	if conf.Cache.Enabled && !c.Bool("no-cache") {
		dir := conf.Cache.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		results, err = cache.Open(dir, conf.Cache.Size, conf.Fingerprint()^xxh3.HashString(Version))
		if err != nil {
			return cli.Exit(color.RedString("Error opening cache: %s", err), exitProblems)
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	r := &runner.Runner{Factory: factory, Jobs: conf.Jobs, Cache: results}
	out, err := r.Run(ctx, files)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return cli.Exit(color.RedString("Interrupted"), exitProblems)
		}
		return cli.Exit(color.RedString("Error: %s", err), exitProblems)
	}

	if err := results.Save(); err != nil {
		slog.Warn("could not save cache", "err", err)
	}

	if err := reporter.Report(c.App.Writer, out); err != nil {
		return cli.Exit(color.RedString("Error writing report: %s", err), exitProblems)
	}

	if report.Summarize(out).Failing() {
		return cli.Exit("", exitProblems)
	}
	return nil
}

func targets(c *cli.Context, conf project.Config) ([]string, error) {
	m := workspace.Matcher{Include: conf.Include, Exclude: conf.Exclude}
	paths := c.Args().Slice()

	if c.Bool("changed") {
		dir := "."
		if len(paths) > 0 {
			dir = paths[0]
		}
		return workspace.Changed(dir, m)
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	return workspace.Discover(paths, m)
}

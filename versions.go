package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/provsniff/util"
)

var releaseURL = "https://api.github.com/repos/vyPal/provsniff/releases/latest"

func init() {
	commands = append(commands, &cli.Command{
		Name:     "version",
		Usage:    "Print the version of provsniff",
		Category: "version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Check whether a newer release is available",
			},
		},
		Action: version,
	})
}

type Release struct {
	TagName string `json:"tag_name"`
}

func latestRelease(ctx context.Context) (util.Semver, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return util.Semver{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return util.Semver{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return util.Semver{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return util.Semver{}, fmt.Errorf("decoding release: %w", err)
	}

	// Remove the 'v' prefix from the tag name
	return util.Parse(strings.TrimPrefix(release.TagName, "v"))
}

func version(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "provsniff %s\n", c.App.Version)
	if !c.Bool("check") {
		return nil
	}

	current, err := util.Parse(c.App.Version)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	latest, err := latestRelease(c.Context)
	if err != nil {
		return cli.Exit(color.RedString("Failed to fetch the latest release: %s", err), 1)
	}

	if latest.Compare(current) > 0 {
		fmt.Fprintln(c.App.Writer, color.YellowString("A new version is available: %s", latest))
	} else {
		fmt.Fprintln(c.App.Writer, "You're up to date!")
	}
	return nil
}

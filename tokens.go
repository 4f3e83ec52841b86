package main

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	phplex "github.com/vyPal/provsniff/lib/lexer"
	"github.com/vyPal/provsniff/lib/token"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "tokens",
		Usage:     "Dump the tokens of a PHP file as JSON",
		Category:  "debug",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "significant",
				Aliases: []string{"s"},
				Usage:   "Leave out whitespace and comments",
			},
		},
		Action: dumpTokens,
	})
}

func dumpTokens(c *cli.Context) error {
	filename := c.Args().First()
	if filename == "" {
		return cli.Exit(color.RedString("Error: No file specified"), exitUsage)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return cli.Exit(color.RedString("Error reading file: %s", err), 1)
	}

	stream, err := phplex.Lex(filename, src)
	if err != nil {
		return cli.Exit(color.RedString("Error lexing file: %s", err), 1)
	}

	toks := stream.Tokens()
	if c.Bool("significant") {
		kept := toks[:0]
		for _, tok := range toks {
			switch tok.Kind {
			case token.KindWhitespace, token.KindComment, token.KindDocComment:
				continue
			}
			kept = append(kept, tok)
		}
		toks = kept
	}

	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toks); err != nil {
		return cli.Exit(color.RedString("Error encoding tokens: %s", err), 1)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	pool := &Pool{}

	app := &cli.App{
		Name:  "coref",
		Usage: "coreference resolution over markable-annotated documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Value:   "doc",
				Usage:   "document repository: a directory of JSON files or a sqlite file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI colors",
			},
		},
		Commands: []*cli.Command{
			docCommand(pool),
			resolveCommand(pool),
			evalCommand(pool),
			trainCommand(pool),
			statCommand(pool),
			queryCommand(pool),
			importCommand(),
		},
		After: func(cCtx *cli.Context) error {
			return pool.Close()
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "coref: %v\n", err)
		os.Exit(1)
	}
}

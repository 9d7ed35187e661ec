package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/eval"
)

func evalCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "score a rule sieve against the gold annotations",
		ArgsUsage: "<rule> [rule ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only documents carrying a matching label",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Len() < 1 {
				return fmt.Errorf("need at least one rule")
			}

			names := cCtx.Args().Slice()
			resolver, err := newSieve(names)
			if err != nil {
				return err
			}

			repo, err := NewDocRepository(pool, cCtx.String("repo"))
			if err != nil {
				return err
			}

			lib, err := library(repo, cCtx.String("label"))
			if err != nil {
				return err
			}

			res, err := eval.Dataset(resolver, lib)
			if err != nil {
				return err
			}

			fmt.Fprintf(cCtx.App.Writer, "%s: %d/%d mentions correct, accuracy %.4f\n",
				strings.Join(names, " "), res.Correct, res.Mentions, res.Accuracy())

			return nil
		},
	}
}

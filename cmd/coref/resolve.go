package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/render"
	"github.com/revelaction/coref/rules"
)

func resolveCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve coreference in a document with a rule sieve",
		ArgsUsage: "<id> <rule> [rule ...]",
		Description: "Rules run as sieve passes in the order given: " +
			strings.Join(rules.Names(), ", "),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the resolution as JSON",
			},
			&cli.BoolFlag{
				Name:  "singletons",
				Usage: "include single-mention clusters",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Len() < 2 {
				return fmt.Errorf("need a doc id and at least one rule")
			}

			id, err := strconv.Atoi(cCtx.Args().First())
			if err != nil {
				return fmt.Errorf("not a doc id: %q", cCtx.Args().First())
			}

			names := cCtx.Args().Tail()
			resolver, err := newSieve(names)
			if err != nil {
				return err
			}

			repo, err := NewDocRepository(pool, cCtx.String("repo"))
			if err != nil {
				return err
			}

			doc, err := repo.Read(id)
			if err != nil {
				return err
			}

			ant, err := resolver.Resolve(doc)
			if err != nil {
				return err
			}

			res := render.NewResolution(doc, strings.Join(names, " "), ant)

			if cCtx.Bool("json") {
				jr := render.NewJSONRenderer(cCtx.App.Writer)
				return jr.Render([]*render.Resolution{res})
			}

			r := newRenderer(cCtx)
			r.W = cCtx.App.Writer
			r.Singletons = cCtx.Bool("singletons")
			r.Resolution(res)

			return nil
		},
	}
}

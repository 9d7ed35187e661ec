package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/query"
)

func queryCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive resolution explorer",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "singletons",
				Usage: "include single-mention clusters",
			},
		},
		Action: func(cCtx *cli.Context) error {
			repo, err := NewDocRepository(pool, cCtx.String("repo"))
			if err != nil {
				return err
			}

			r := newRenderer(cCtx)
			r.Singletons = cCtx.Bool("singletons")

			h := query.NewHandler(repo, r)
			return h.Run()
		},
	}
}

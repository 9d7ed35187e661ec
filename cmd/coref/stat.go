package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/stat"
)

func statCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "print corpus statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only documents carrying a matching label",
			},
		},
		Action: func(cCtx *cli.Context) error {
			repo, err := NewDocRepository(pool, cCtx.String("repo"))
			if err != nil {
				return err
			}

			lib, err := library(repo, cCtx.String("label"))
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()
			for _, doc := range lib {
				hdl.Aggregate(doc)
			}

			stats := hdl.Get()
			w := cCtx.App.Writer
			fmt.Fprintf(w, "Num docs %d, num tokens %d, num markables %d, num entities %d\n",
				stats.NumDocs, stats.NumTokens, stats.NumMarkables, stats.NumEntities)
			fmt.Fprintf(w, "Markables per doc %.2f\n", stats.MarkablesPerDocMean)

			fmt.Fprintln(w, "Span lengths:")
			printDis(w, stats.SpanLenDis)

			fmt.Fprintln(w, "Cluster sizes:")
			printDis(w, stats.ClusterSizeDis)

			return nil
		},
	}
}

func printDis(w io.Writer, dis map[int]int) {
	keys := make([]int, 0, len(dis))
	for k := range dis {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  %4d: %d\n", k, dis[k])
	}
}

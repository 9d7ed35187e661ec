package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

func docCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "list documents, or show one with its markables",
		ArgsUsage: "[id]",
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

			if cCtx.Args().Len() == 0 {
				docs, err := repo.List(cCtx.String("label"))
				if err != nil {
					return err
				}

				for _, doc := range docs {
					fmt.Fprintf(cCtx.App.Writer, "📖 %d %s %s\n", doc.Id, doc.Title, strings.Join(doc.Labels, ","))
				}

				return nil
			}

			id, err := strconv.Atoi(cCtx.Args().First())
			if err != nil {
				return fmt.Errorf("not a doc id: %q", cCtx.Args().First())
			}

			doc, err := repo.Read(id)
			if err != nil {
				return err
			}

			r := newRenderer(cCtx)
			r.W = cCtx.App.Writer
			r.Doc(doc, fmt.Sprintf("✍  %d ", doc.Id))
			fmt.Fprintf(cCtx.App.Writer, "   %d tokens, %d markables\n", len(doc.Tokens), len(doc.Markables))

			return nil
		},
	}
}

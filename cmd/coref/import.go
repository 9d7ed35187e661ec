package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/storage/filesystem"
	"github.com/revelaction/coref/storage/sqlite/zombiezen"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a directory of JSON documents into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source directory of JSON documents",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target sqlite file",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			src, err := filesystem.NewDocStore(cCtx.String("from"))
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(cCtx.String("to"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateDocTables(pool); err != nil {
				return fmt.Errorf("failed to create doc tables: %w", err)
			}

			dst := zombiezen.NewDocStore(pool)

			docs, err := src.List("")
			if err != nil {
				return err
			}

			uiprogress.Start()
			bar := uiprogress.AddBar(len(docs))
			bar.AppendCompleted()
			bar.PrependElapsed()

			count := 0
			for _, meta := range docs {
				doc, err := src.Read(meta.Id)
				if err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
				}

				if err := dst.Write(doc); err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
				}

				count++
				bar.Incr()
			}
			uiprogress.Stop()

			fmt.Fprintf(cCtx.App.Writer, "Imported %d docs from %s to %s\n",
				count, cCtx.String("from"), cCtx.String("to"))

			return nil
		},
	}
}

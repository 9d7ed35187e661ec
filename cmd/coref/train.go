package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/embed"
	"github.com/revelaction/coref/eval"
	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/resolve"
	"github.com/revelaction/coref/score"
	"github.com/revelaction/coref/train"
)

func trainCommand(pool *Pool) *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "train the learned scorer and report its accuracy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only documents carrying a matching label",
			},
			&cli.IntFlag{
				Name:  "epochs",
				Value: train.DefaultEpochs,
				Usage: "passes over the library",
			},
			&cli.Float64Flag{
				Name:  "margin",
				Value: train.DefaultMargin,
				Usage: "ranking loss margin",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Value: train.DefaultLearnRate,
				Usage: "gradient step size",
			},
			&cli.IntFlag{
				Name:  "word-limit",
				Usage: "truncate documents to this many tokens, 0 for no limit",
			},
			&cli.IntFlag{
				Name:  "dim",
				Value: embed.DefaultDim,
				Usage: "span embedding dimension",
			},
			&cli.IntFlag{
				Name:  "hidden",
				Value: score.DefaultHiddenDim,
				Usage: "scorer hidden layer width",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "parameter initialization seed",
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

			if len(lib) == 0 {
				return fmt.Errorf("repository holds no documents")
			}

			producer := embed.NewLexical(cCtx.Int("dim"))

			ext, model, err := newScorer(producer, cCtx.Int("hidden"), cCtx.Int64("seed"))
			if err != nil {
				return err
			}

			cfg := train.Config{
				Epochs:    cCtx.Int("epochs"),
				Margin:    cCtx.Float64("margin"),
				LearnRate: cCtx.Float64("rate"),
				WordLimit: cCtx.Int("word-limit"),
			}
			trainer := train.New(producer, model, ext, cfg)

			uiprogress.Start()
			bar := uiprogress.AddBar(cfg.Epochs * len(lib))
			bar.AppendCompleted()
			bar.PrependElapsed()

			var reports []train.Report
			err = trainer.Run(lib,
				func(r train.Report) { reports = append(reports, r) },
				func() { bar.Incr() },
			)
			uiprogress.Stop()
			if err != nil {
				return err
			}

			for _, r := range reports {
				fmt.Fprintf(cCtx.App.Writer, "epoch %d: avg loss %.4f\n", r.Epoch, r.AvgLoss)
			}

			learned := resolve.NewLearned(producer, model, ext)
			res, err := eval.Dataset(learned, lib)
			if err != nil {
				return err
			}

			fmt.Fprintf(cCtx.App.Writer, "learned: %d/%d mentions correct, accuracy %.4f\n",
				res.Correct, res.Mentions, res.Accuracy())

			return nil
		},
	}
}

// newScorer wires the default feature set to a fresh model: pairwise match
// features plus distance buckets, vocabulary frozen before construction.
func newScorer(producer embed.Producer, hidden int, seed int64) (feature.Extractor, *score.Model, error) {
	vocab := feature.NewVocabulary()

	minimal, err := feature.NewMinimal(vocab)
	if err != nil {
		return nil, nil, err
	}

	distance, err := feature.NewDistance(vocab, feature.DefaultMaxMentionDistance, feature.DefaultMaxTokenDistance)
	if err != nil {
		return nil, nil, err
	}

	vocab.Freeze()
	ext := feature.NewUnion(minimal, distance)

	model, err := score.New(vocab, score.Config{
		MarkDim:   producer.Dim(),
		HiddenDim: hidden,
		Seed:      seed,
	})
	if err != nil {
		return nil, nil, err
	}

	return ext, model, nil
}

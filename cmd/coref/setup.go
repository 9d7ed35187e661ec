package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/render"
	"github.com/revelaction/coref/resolve"
	"github.com/revelaction/coref/rules"
	"github.com/revelaction/coref/storage"
	"github.com/revelaction/coref/storage/filesystem"
	"github.com/revelaction/coref/storage/sqlite/zombiezen"
)

// NewDocRepository opens the repository at path. A directory is served from
// the filesystem, a file is opened as a sqlite database.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func newRenderer(cCtx *cli.Context) *render.Renderer {
	r := render.NewRenderer()
	r.HasColor = !cCtx.Bool("no-color")
	return r
}

// library reads every document of the repository into memory, with a
// progress bar over the doc titles.
func library(repo storage.DocReader, labelMatch string) (markable.Library, error) {
	docs, err := repo.List(labelMatch)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, nil
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return barTitle(docs, b.Current())
	})

	var lib markable.Library
	for _, meta := range docs {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			uiprogress.Stop()
			return nil, err
		}

		lib = append(lib, doc)
		bar.Incr()
	}

	uiprogress.Stop()
	return lib, nil
}

// barTitle is the title shown next to the progress bar. The render
// goroutine may tick before the first Incr, when current is still 0.
func barTitle(docs []markable.Doc, current int) string {
	if current < 1 || current > len(docs) {
		return ""
	}

	return docs[current-1].Title
}

// newSieve builds a resolver from rule names, a single rule or a sieve over
// several, in the order given.
func newSieve(names []string) (resolve.Resolver, error) {
	var passes []rules.Matcher
	for _, name := range names {
		m, err := rules.ByName(name)
		if err != nil {
			return nil, err
		}

		passes = append(passes, m)
	}

	if len(passes) == 1 {
		return resolve.NewRule(passes[0]), nil
	}

	return resolve.NewSieve(passes...), nil
}

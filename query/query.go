// Package query is the interactive resolution explorer: pick a document and
// a rule chain, see the resulting clusters.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/coref/render"
	"github.com/revelaction/coref/resolve"
	"github.com/revelaction/coref/rules"
	"github.com/revelaction/coref/storage"
)

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer
}

func NewHandler(dr storage.DocReader, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Renderer: r,
	}
}

func (h *Handler) Run() error {
	fmt.Println("🔑 <doc id> <rule> [rule ...]   rules in sieve order, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("coref query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		docId, resolver, names, err := h.parse(in)
		if err != nil {
			fmt.Printf("✍  %v\n", err)
			continue
		}

		doc, err := h.DocRepo.Read(docId)
		if err != nil {
			fmt.Printf("✍  %v\n", err)
			continue
		}

		ant, err := resolver.Resolve(doc)
		if err != nil {
			fmt.Printf("✍  %v\n", err)
			continue
		}

		h.Renderer.Resolution(render.NewResolution(doc, strings.Join(names, " "), ant))
	}
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// Only one character in line
		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		// first token is the doc id; complete with titles
		if len(tokens) == 1 {
			docs, err := h.DocRepo.List("")
			if err != nil {
				return s
			}

			for _, d := range docs {
				id := strconv.Itoa(d.Id)
				if strings.HasPrefix(id, tokens[0]) {
					s = append(s, prompt.Suggest{Text: id, Description: "📖 " + d.Title})
				}
			}

			return s
		}

		// later tokens are rule names
		word := in.GetWordBeforeCursor()
		for _, name := range rules.Names() {
			if strings.HasPrefix(name, word) {
				s = append(s, prompt.Suggest{Text: name, Description: "rule"})
			}
		}

		return s
	}
}

func (h *Handler) parse(in string) (int, resolve.Resolver, []string, error) {
	tokens := strings.Fields(in)

	if len(tokens) < 2 {
		return 0, nil, nil, errors.New("need a doc id and at least one rule")
	}

	docId, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, nil, nil, fmt.Errorf("not a doc id: %q", tokens[0])
	}

	names := tokens[1:]
	var passes []rules.Matcher
	for _, name := range names {
		m, err := rules.ByName(name)
		if err != nil {
			return 0, nil, nil, err
		}

		passes = append(passes, m)
	}

	if len(passes) == 1 {
		return docId, resolve.NewRule(passes[0]), names, nil
	}

	return docId, resolve.NewSieve(passes...), names, nil
}

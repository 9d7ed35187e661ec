package rules

import (
	"fmt"
	"sort"
	"strings"
)

// registry maps the rule names accepted on the command line and in the REPL
// to their matchers.
var registry = map[string]Matcher{
	"exact":                 ExactMatch{},
	"exact-no-pronouns":     ExactMatchNoPronouns{},
	"last-token":            MatchLastToken{},
	"last-token-no-overlap": MatchLastTokenNoOverlap{},
	"content":               MatchOnContent{},
	"no-overlap":            MatchNoOverlap{},
	"singleton":             Singleton{},
	"cluster":               FullCluster{},
}

// ByName returns the matcher registered under name.
func ByName(name string) (Matcher, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q, available: %s", name, strings.Join(Names(), " "))
	}

	return m, nil
}

// Names returns all registered rule names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}

	sort.Strings(names)
	return names
}

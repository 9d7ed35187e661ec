package main

import (
	"testing"

	"github.com/revelaction/coref/markable"
)

func TestBarTitleBounds(t *testing.T) {
	docs := []markable.Doc{
		{Id: 0, Title: "a.json"},
		{Id: 1, Title: "b.json"},
	}

	// the bar renders with current == 0 until the first increment
	if got := barTitle(docs, 0); got != "" {
		t.Errorf("current 0: got %q, want empty", got)
	}

	if got := barTitle(docs, 1); got != "a.json" {
		t.Errorf("current 1: got %q, want a.json", got)
	}

	if got := barTitle(docs, 2); got != "b.json" {
		t.Errorf("current 2: got %q, want b.json", got)
	}

	if got := barTitle(docs, 3); got != "" {
		t.Errorf("current past the end: got %q, want empty", got)
	}

	if got := barTitle(nil, 1); got != "" {
		t.Errorf("empty doc list: got %q, want empty", got)
	}
}

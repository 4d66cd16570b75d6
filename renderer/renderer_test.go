// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mdhender/grpsum/groups"
	"github.com/mdhender/grpsum/model"
	"github.com/mdhender/grpsum/renderer"
)

func TestRender(t *testing.T) {
	list, err := groups.Split([]string{"4", "", "8", "", "4", "", "4", "", "1"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	result, err := groups.Summarize(list)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	r, err := renderer.New(renderer.WithTitle("Elves & Snacks"), renderer.WithShowValues(true), renderer.WithVersion("1.0.0"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, result, list); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<!doctype html>",
		"<title>Elves &amp; Snacks</title>",
		"<h1>Elves &amp; Snacks</h1>",
		"<th>Values</th>",
		"<td>2</td><td>3-3</td><td>8</td><td>8</td>",
		`<dd id="part-1">8</dd>`,
		`<dd id="part-2">16</dd>`,
		`<dd id="groups">5</dd>`,
		"<footer>grpsum 1.0.0</footer>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}

	// the 8 and the first two 4s are highlighted, not the third 4 or the 1
	if got := strings.Count(page, `<tr class="top">`); got != 3 {
		t.Errorf("expected 3 highlighted rows, got %d", got)
	}
	if !strings.Contains(page, `<tr class="top"><td>3</td>`) {
		t.Error("expected group 3 to be highlighted")
	}
	if !strings.Contains(page, "<tr><td>4</td>") {
		t.Error("expected group 4 not to be highlighted")
	}
}

func TestPage_Defaults(t *testing.T) {
	list, err := groups.Split([]string{"1", "2", "", "<3"}, groups.WithSkipMalformed(true))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	result, err := groups.Summarize(list)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	r, err := renderer.New(renderer.WithTitle("<b>sums</b>"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Page(result, list).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := buf.String()

	if !strings.Contains(page, "<title>&lt;b&gt;sums&lt;/b&gt;</title>") {
		t.Error("expected escaped title")
	}
	if strings.Contains(page, "<th>Values</th>") {
		t.Error("expected no values column by default")
	}
	if strings.Contains(page, "<footer>") {
		t.Error("expected no footer without a version")
	}
	if !strings.Contains(page, `<tr class="top"><td>1</td><td>1-2</td><td>3</td></tr>`) {
		t.Errorf("expected highlighted group row, got %s", page)
	}
}

func TestPage_CanceledContext(t *testing.T) {
	r, err := renderer.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := r.Page(model.Result{}, nil).Render(ctx, &buf); err == nil {
		t.Error("expected error rendering with a canceled context")
	}
}

func TestNew_InvalidHighlight(t *testing.T) {
	if _, err := renderer.New(renderer.WithHighlightTop(-1)); err == nil {
		t.Fatal("expected error for negative highlight count")
	}
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package renderer writes an HTML summary of a run.
package renderer

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/mdhender/grpsum/groups"
	"github.com/mdhender/grpsum/model"
)

type Renderer struct {
	title      string
	version    string
	highlight  int
	showValues bool
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		title:     "Group Sums",
		highlight: 3,
	}
	for _, option := range options {
		err := option(r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render writes the page for the result and its groups to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, result model.Result, list []*model.Group) error {
	started := time.Now()
	if err := r.Page(result, list).Render(ctx, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("render: groups %4d: in %v\n", len(list), time.Since(started))
	return nil
}

// Page returns the page as a component.
func (r *Renderer) Page(result model.Result, list []*model.Group) templ.Component {
	return page(r.title, r.version, result, list, r.topSeqs(list), r.showValues)
}

// lineRange formats the input lines a group spans.
func lineRange(g *model.Group) string {
	return fmt.Sprintf("%d-%d", g.FirstLine, g.LastLine)
}

func joinValues(values []int) string {
	list := make([]string, 0, len(values))
	for _, v := range values {
		list = append(list, strconv.Itoa(v))
	}
	return strings.Join(list, ", ")
}

// topSeqs returns the sequence numbers of the highlighted groups.
// Ties are broken in input order.
func (r *Renderer) topSeqs(list []*model.Group) map[int]bool {
	top := make(map[int]bool)
	if r.highlight == 0 {
		return top
	}
	sums := groups.TopN(groups.Sums(list), r.highlight)
	if len(sums) == 0 {
		return top
	}
	cutoff := sums[len(sums)-1]
	above := 0
	for _, sum := range sums {
		if sum > cutoff {
			above++
		}
	}
	atCutoff := len(sums) - above
	for _, g := range list {
		switch {
		case g.Sum > cutoff:
			top[g.Seq] = true
		case g.Sum == cutoff && atCutoff > 0:
			top[g.Seq] = true
			atCutoff--
		}
	}
	return top
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import "fmt"

type Option func(p *Renderer) error

func WithTitle(title string) Option {
	return func(p *Renderer) error {
		p.title = title
		return nil
	}
}

// WithHighlightTop marks the n groups with the largest sums.
func WithHighlightTop(n int) Option {
	return func(p *Renderer) error {
		if n < 0 {
			return fmt.Errorf("highlight: invalid count %d", n)
		}
		p.highlight = n
		return nil
	}
}

// WithShowValues lists the values of each group, not just the sum.
func WithShowValues(flag bool) Option {
	return func(p *Renderer) error {
		p.showValues = flag
		return nil
	}
}

func WithVersion(version string) Option {
	return func(p *Renderer) error {
		p.version = version
		return nil
	}
}

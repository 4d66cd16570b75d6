// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package groups splits blank-line separated integers into groups and
// reports on the group sums.
package groups

import (
	"log"
	"strconv"
	"strings"

	"github.com/mdhender/grpsum/model"
)

// Split partitions lines into groups. A zero-length line closes the
// current group; runs of blank lines, and blank lines at either end of
// the input, never produce empty groups.
//
// Every other line must hold a signed base-10 integer, optionally
// surrounded by whitespace. The first line that does not returns an
// *ErrParseLine, unless WithSkipMalformed is set. A group sum that does
// not fit in an int returns an *ErrParseLine wrapping ErrOverflow.
func Split(lines []string, opts ...Option) ([]*model.Group, error) {
	var cfg Config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	var list []*model.Group
	var g *model.Group
	for n, line := range lines {
		lineNo := n + 1
		text := strings.TrimSpace(line)
		if line == "" || (cfg.blankWhitespace && text == "") {
			g = nil
			continue
		}

		value, err := strconv.Atoi(text)
		if err != nil {
			if cfg.skipMalformed {
				log.Printf("groups: line %d: skipping %q\n", lineNo, line)
				continue
			}
			return nil, &ErrParseLine{
				Line:   lineNo,
				Column: strings.Index(line, text) + 1,
				Text:   text,
				Err:    err,
			}
		}

		if g == nil {
			g = &model.Group{Seq: len(list) + 1, FirstLine: lineNo}
			list = append(list, g)
		}
		sum, ok := add(g.Sum, value)
		if !ok {
			return nil, &ErrParseLine{
				Line:   lineNo,
				Column: strings.Index(line, text) + 1,
				Text:   text,
				Err:    ErrOverflow,
			}
		}
		g.LastLine = lineNo
		g.Values = append(g.Values, value)
		g.Sum = sum
	}

	return list, nil
}

// add returns a+b, and false if the sum overflows an int.
func add(a, b int) (int, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// Sums returns the group sums in input order.
func Sums(list []*model.Group) []int {
	sums := make([]int, 0, len(list))
	for _, g := range list {
		sums = append(sums, g.Sum)
	}
	return sums
}

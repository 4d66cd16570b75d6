// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package groups

import (
	"fmt"
	"io"
	"sort"

	"github.com/mdhender/grpsum/model"
)

// Max returns the largest sum. It returns 0 for an empty slice.
func Max(sums []int) int {
	if len(sums) == 0 {
		return 0
	}
	m := sums[0]
	for _, sum := range sums[1:] {
		if sum > m {
			m = sum
		}
	}
	return m
}

// TopN returns the n largest sums, largest first. Ties are kept, so a
// sum shared by several groups appears once per group. If there are
// fewer than n sums, all of them are returned. The input is not modified.
func TopN(sums []int, n int) []int {
	if n <= 0 {
		return nil
	}
	sorted := make([]int, len(sums))
	copy(sorted, sums)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i] > sorted[j]
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// SumTop returns the sum of the n largest sums.
// It returns ErrOverflow if the total does not fit in an int.
func SumTop(sums []int, n int) (int, error) {
	total := 0
	for _, sum := range TopN(sums, n) {
		var ok bool
		if total, ok = add(total, sum); !ok {
			return 0, ErrOverflow
		}
	}
	return total, nil
}

// Summarize computes the result for a list of groups.
// It returns ErrNoGroups if the list is empty.
func Summarize(list []*model.Group) (model.Result, error) {
	if len(list) == 0 {
		return model.Result{}, ErrNoGroups
	}
	sums := Sums(list)
	top3, err := SumTop(sums, 3)
	if err != nil {
		return model.Result{}, fmt.Errorf("top 3: %w", err)
	}
	return model.Result{
		Groups: len(list),
		Max:    Max(sums),
		Top3:   top3,
	}, nil
}

// Print writes the two report lines.
func Print(w io.Writer, r model.Result) error {
	if _, err := fmt.Fprintf(w, "Part 1: %d\n", r.Max); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Part 2: %d\n", r.Top3)
	return err
}

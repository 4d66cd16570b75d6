// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package groups_test

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"

	"github.com/mdhender/grpsum/groups"
)

func TestSplit_ThreeGroups(t *testing.T) {
	lines := []string{"1", "2", "", "3", "", "10", "10", "10"}

	list, err := groups.Split(lines)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got, want := groups.Sums(list), []int{3, 3, 30}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sums = %v, want %v", got, want)
	}

	g := list[2]
	if g.Seq != 3 {
		t.Errorf("Seq = %d, want 3", g.Seq)
	}
	if g.FirstLine != 6 || g.LastLine != 8 {
		t.Errorf("lines = %d..%d, want 6..8", g.FirstLine, g.LastLine)
	}
	if !reflect.DeepEqual(g.Values, []int{10, 10, 10}) {
		t.Errorf("Values = %v, want [10 10 10]", g.Values)
	}
}

func TestSplit_BlankLinesAtEdges(t *testing.T) {
	lines := []string{"", "", "4", "", "", "", "5", "6", ""}

	list, err := groups.Split(lines)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got, want := groups.Sums(list), []int{4, 11}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sums = %v, want %v", got, want)
	}
	if list[0].FirstLine != 3 {
		t.Errorf("first group starts at line %d, want 3", list[0].FirstLine)
	}
}

func TestSplit_Empty(t *testing.T) {
	for _, lines := range [][]string{nil, {}, {""}, {"", "", ""}} {
		list, err := groups.Split(lines)
		if err != nil {
			t.Fatalf("%q: split: %v", lines, err)
		}
		if len(list) != 0 {
			t.Errorf("%q: got %d groups, want 0", lines, len(list))
		}
	}
}

func TestSplit_SingleLineGroupIsItsValue(t *testing.T) {
	for _, v := range []int{0, 7, -12, 123456789} {
		list, err := groups.Split([]string{strconv.Itoa(v)})
		if err != nil {
			t.Fatalf("%d: split: %v", v, err)
		}
		if len(list) != 1 || list[0].Sum != v {
			t.Errorf("%d: got %+v", v, list)
		}
	}
}

func TestSplit_SignedAndPadded(t *testing.T) {
	list, err := groups.Split([]string{" +5 ", "-2\t"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(list) != 1 || list[0].Sum != 3 {
		t.Fatalf("got %+v, want one group summing to 3", list)
	}
}

func TestSplit_MalformedLine(t *testing.T) {
	_, err := groups.Split([]string{"1", "", "  x2"})
	var pe *groups.ErrParseLine
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ErrParseLine, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
	if pe.Column != 3 {
		t.Errorf("Column = %d, want 3", pe.Column)
	}
	if pe.Text != "x2" {
		t.Errorf("Text = %q, want %q", pe.Text, "x2")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("expected wrapped strconv.ErrSyntax, got %v", pe.Err)
	}
	if got := groups.ErrorCode(err); got != groups.ErrCodeParseLine {
		t.Errorf("ErrorCode = %q, want %q", got, groups.ErrCodeParseLine)
	}
}

func TestSplit_SkipMalformed(t *testing.T) {
	list, err := groups.Split([]string{"1", "oops", "2", "", "nope", "", "3"}, groups.WithSkipMalformed(true))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got, want := groups.Sums(list), []int{3, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sums = %v, want %v", got, want)
	}
}

func TestSplit_WhitespaceLineIsNotBlank(t *testing.T) {
	_, err := groups.Split([]string{"1", " ", "2"})
	var pe *groups.ErrParseLine
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ErrParseLine, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}

	// skipping drops the line without closing the group
	list, err := groups.Split([]string{"1", " ", "2"}, groups.WithSkipMalformed(true))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got, want := groups.Sums(list), []int{3}; !reflect.DeepEqual(got, want) {
		t.Errorf("sums = %v, want %v", got, want)
	}
}

func TestSplit_BlankWhitespace(t *testing.T) {
	list, err := groups.Split([]string{"1", " \t", "2", "  ", "", "3"}, groups.WithBlankWhitespace(true))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got, want := groups.Sums(list), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sums = %v, want %v", got, want)
	}
}

func TestSplit_Overflow(t *testing.T) {
	for _, lines := range [][]string{
		{strconv.Itoa(math.MaxInt), "1"},
		{strconv.Itoa(math.MinInt), "-1"},
	} {
		_, err := groups.Split(lines)
		if !errors.Is(err, groups.ErrOverflow) {
			t.Fatalf("%q: expected ErrOverflow, got %v", lines, err)
		}
		var pe *groups.ErrParseLine
		if !errors.As(err, &pe) || pe.Line != 2 {
			t.Errorf("%q: expected overflow on line 2, got %v", lines, err)
		}
		if got := groups.ErrorCode(err); got != groups.ErrCodeOverflow {
			t.Errorf("%q: ErrorCode = %q, want %q", lines, got, groups.ErrCodeOverflow)
		}
	}

	// a single value at the limit is fine
	list, err := groups.Split([]string{strconv.Itoa(math.MaxInt), "", "-1"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if list[0].Sum != math.MaxInt {
		t.Errorf("Sum = %d, want %d", list[0].Sum, math.MaxInt)
	}
}

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package groups

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGroups is returned when the input holds no groups at all.
	ErrNoGroups = errors.New("no groups in input")
	// ErrOverflow is returned when a sum does not fit in an int.
	ErrOverflow = errors.New("sum overflows int")
)

// ErrParseLine is returned when a non-blank line is not an integer.
type ErrParseLine struct {
	Line   int // 1-based
	Column int // 1-based, first non-space byte
	Text   string
	Err    error
}

func (e *ErrParseLine) Error() string {
	if errors.Is(e.Err, ErrOverflow) {
		return fmt.Sprintf("line %d: adding %s: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d: invalid integer %q: %v", e.Line, e.Text, e.Err)
}

func (e *ErrParseLine) Unwrap() error {
	return e.Err
}

// Error code constants.
const (
	ErrCodeParseLine = "PARSE_LINE"
	ErrCodeNoGroups  = "NO_GROUPS"
	ErrCodeOverflow  = "OVERFLOW"
	ErrCodeUnknown   = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	var pe *ErrParseLine
	switch {
	case errors.Is(err, ErrOverflow):
		return ErrCodeOverflow
	case errors.As(err, &pe):
		return ErrCodeParseLine
	case errors.Is(err, ErrNoGroups):
		return ErrCodeNoGroups
	default:
		return ErrCodeUnknown
	}
}

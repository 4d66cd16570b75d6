// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"errors"
	"fmt"

	"github.com/mdhender/grpsum/groups"
	"github.com/mdhender/grpsum/inputs"
)

// ErrDatabase is returned when database operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// ErrParse is returned when the input can not be split into groups
// or summarized.
type ErrParse struct {
	Path string
	Err  error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ErrParse) Unwrap() error {
	return e.Err
}

// Error code constants for database storage.
const (
	ErrCodeReadFile  = "READ_FILE"
	ErrCodeDatabase  = "DATABASE"
	ErrCodeParseLine = groups.ErrCodeParseLine
	ErrCodeNoGroups  = groups.ErrCodeNoGroups
	ErrCodeOverflow  = groups.ErrCodeOverflow
	ErrCodeUnknown   = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	var re *inputs.ErrReadFile
	var de *ErrDatabase
	switch {
	case errors.As(err, &re):
		return ErrCodeReadFile
	case errors.As(err, &de):
		return ErrCodeDatabase
	case err == nil:
		return ""
	}
	if code := groups.ErrorCode(err); code != groups.ErrCodeUnknown {
		return code
	}
	return ErrCodeUnknown
}

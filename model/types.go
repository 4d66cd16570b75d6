// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import (
	"time"
)

// Input is the provenance of one run: the file that was read.
type Input struct {
	ID        int64     `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"` // file name as given on the command line
	SHA256    string    `json:"sha256"    db:"sha256"`
	Options   string    `json:"options"   db:"options"` // parse options the run used
	Lines     int       `json:"lines"     db:"lines"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Group is a maximal run of non-blank lines.
type Group struct {
	ID      int64 `json:"id"      db:"id"`
	InputID int64 `json:"inputId" db:"input_id"`
	Seq     int   `json:"seq"     db:"seq"` // 1-based position in the input

	// 1-based input line numbers of the first and last line in the group.
	FirstLine int `json:"firstLine" db:"first_line"`
	LastLine  int `json:"lastLine"  db:"last_line"`

	Values []int `json:"values,omitempty" db:"-"`
	Sum    int   `json:"sum"              db:"sum"`
}

// Result is the report for one input.
type Result struct {
	InputID int64 `json:"inputId,omitempty" db:"input_id"`
	Groups  int   `json:"groups"            db:"num_groups"`
	Max     int   `json:"max"               db:"max_sum"`
	Top3    int   `json:"top3"              db:"top3_sum"`
}

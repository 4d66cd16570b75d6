// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package inputs loads the text files that the reporter reads.
package inputs

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/spf13/afero"
)

// DefaultPath is the input read when no other path is configured.
const DefaultPath = "day_01.input"

// Source is the content of one input file.
type Source struct {
	Path   string   // the path to the input file
	Data   []byte   // the content, after line ending normalization
	SHA256 string   // hash of the content as read from disk
	Lines  []string // the content split into lines, terminators removed
}

// ErrReadFile is returned when the input can not be read.
type ErrReadFile struct {
	Op   string // stat, read
	Path string
	Err  error
}

func (e *ErrReadFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrReadFile) Unwrap() error {
	return e.Err
}

type config struct {
	autoEOL bool
	stripCR bool
	debug   bool
}

type Option func(c *config) error

// WithAutoEOL converts CR+LF and lone CR line endings to LF.
func WithAutoEOL(flag bool) Option {
	return func(c *config) error {
		c.autoEOL = flag
		return nil
	}
}

// WithStripCR converts CR+LF line endings to LF. Ignored when
// WithAutoEOL is set.
func WithStripCR(flag bool) Option {
	return func(c *config) error {
		c.stripCR = flag
		return nil
	}
}

func WithDebug(flag bool) Option {
	return func(c *config) error {
		c.debug = flag
		return nil
	}
}

// Load reads the whole file at path from fs and splits it into lines.
// The file is closed before Load returns.
func Load(fs afero.Fs, path string, opts ...Option) (*Source, error) {
	cfg := config{autoEOL: true}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ErrReadFile{Op: "read", Path: path, Err: err}
	}
	hash := sha256.Sum256(data)

	if cfg.autoEOL {
		if cfg.debug {
			log.Printf("inputs: auto-eol: replacing CR+LF and CR with LF")
		}
		data = bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
		data = bytes.ReplaceAll(data, []byte{'\r'}, []byte{'\n'})
	} else if cfg.stripCR {
		if cfg.debug {
			log.Printf("inputs: strip-cr: replacing CR+LF with LF")
		}
		data = bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
	}

	src := &Source{
		Path:   path,
		Data:   data,
		SHA256: hex.EncodeToString(hash[:]),
		Lines:  SplitLines(data),
	}
	if cfg.debug {
		log.Printf("inputs: %q: %d bytes, %d lines\n", path, len(data), len(src.Lines))
	}
	return src, nil
}

// SplitLines splits data on LF. A terminator on the last line does not
// add an empty line, so empty data has no lines.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte{'\n'})
	var lines []string
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		lines = append(lines, string(line))
	}
	return lines
}

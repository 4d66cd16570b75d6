// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mdhender/grpsum/groups"
	"github.com/mdhender/grpsum/inputs"
	"github.com/mdhender/grpsum/model"
	"github.com/spf13/afero"
)

// IngestService reads an input, reports on its groups, and records the run.
type IngestService struct {
	store IngestStore
	fs    afero.Fs
}

// IngestStore defines the store operations needed by IngestService.
type IngestStore interface {
	InsertInput(ctx context.Context, in *model.Input) (int64, error)
	GetInput(ctx context.Context, sha256, options string) (*model.Input, error)
	InsertGroup(ctx context.Context, g *model.Group) (int64, error)
	GroupsByInput(ctx context.Context, inputID int64) ([]*model.Group, error)
	InsertResult(ctx context.Context, r *model.Result) error
	GetResult(ctx context.Context, inputID int64) (*model.Result, error)
}

// NewIngestService creates a new IngestService.
func NewIngestService(store IngestStore) *IngestService {
	return &IngestService{
		store: store,
		fs:    afero.NewOsFs(),
	}
}

// SetFS sets the filesystem for testing.
func (s *IngestService) SetFS(fs afero.Fs) {
	s.fs = fs
}

// IngestRequest contains the parameters for ingesting a file.
type IngestRequest struct {
	Path            string
	AutoEOL         bool // convert CR+LF and CR to LF
	StripCR         bool // convert CR+LF to LF
	SkipMalformed   bool // drop lines that are not integers
	BlankWhitespace bool // whitespace-only lines separate groups
	Debug           bool
}

// Options returns the settings that change how content is split into
// groups. A run is identified by its content hash and its options.
func (req IngestRequest) Options() string {
	return fmt.Sprintf("auto-eol=%t,strip-cr=%t,skip-malformed=%t,blank-whitespace=%t",
		req.AutoEOL, req.StripCR, req.SkipMalformed, req.BlankWhitespace)
}

// IngestResult contains the result of an ingest operation.
type IngestResult struct {
	InputID   int64
	Result    model.Result
	Groups    []*model.Group
	Duplicate bool // true if the content was already ingested with the same options
	Elapsed   time.Duration
}

// IngestFile reads, splits and summarizes a single file, then persists
// the input, its groups and the result. The content is always parsed, so
// parse errors are reported even for content seen before. A run that is
// already recorded for the same content and options is not stored again;
// Duplicate is set and the recorded input id is returned.
func (s *IngestService) IngestFile(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	started := time.Now()

	src, err := inputs.Load(s.fs, req.Path,
		inputs.WithAutoEOL(req.AutoEOL),
		inputs.WithStripCR(req.StripCR),
		inputs.WithDebug(req.Debug),
	)
	if err != nil {
		return nil, err
	}

	list, err := groups.Split(src.Lines,
		groups.WithSkipMalformed(req.SkipMalformed),
		groups.WithBlankWhitespace(req.BlankWhitespace),
	)
	if err != nil {
		return nil, &ErrParse{Path: req.Path, Err: err}
	}
	result, err := groups.Summarize(list)
	if err != nil {
		return nil, &ErrParse{Path: req.Path, Err: err}
	}

	options := req.Options()
	existing, err := s.store.GetInput(ctx, src.SHA256, options)
	if err != nil {
		return nil, &ErrDatabase{Op: "check duplicate", Err: err}
	}
	if existing != nil {
		if req.Debug {
			log.Printf("ingest: %q: duplicate of input %d\n", req.Path, existing.ID)
		}
		if err := s.complete(ctx, existing.ID, list, &result); err != nil {
			return nil, err
		}
		return &IngestResult{
			InputID:   existing.ID,
			Result:    result,
			Groups:    list,
			Duplicate: true,
			Elapsed:   time.Since(started),
		}, nil
	}

	in := &model.Input{
		Name:      filepath.Base(req.Path),
		SHA256:    src.SHA256,
		Options:   options,
		Lines:     len(src.Lines),
		CreatedAt: time.Now().UTC(),
	}
	inputID, err := s.store.InsertInput(ctx, in)
	if err != nil {
		return nil, &ErrDatabase{Op: "insert input", Err: err}
	}
	for _, g := range list {
		g.InputID = inputID
		if _, err := s.store.InsertGroup(ctx, g); err != nil {
			return nil, &ErrDatabase{Op: "insert group", Err: err}
		}
	}
	result.InputID = inputID
	if err := s.store.InsertResult(ctx, &result); err != nil {
		return nil, &ErrDatabase{Op: "insert result", Err: err}
	}

	return &IngestResult{
		InputID: inputID,
		Result:  result,
		Groups:  list,
		Elapsed: time.Since(started),
	}, nil
}

// complete stores whatever an interrupted run left out: the groups
// after the last one recorded, and the result.
func (s *IngestService) complete(ctx context.Context, inputID int64, list []*model.Group, result *model.Result) error {
	stored, err := s.store.GroupsByInput(ctx, inputID)
	if err != nil {
		return &ErrDatabase{Op: "get groups", Err: err}
	}
	for _, g := range list {
		g.InputID = inputID
		if g.Seq <= len(stored) {
			continue
		}
		if _, err := s.store.InsertGroup(ctx, g); err != nil {
			return &ErrDatabase{Op: "insert group", Err: err}
		}
	}
	result.InputID = inputID
	recorded, err := s.store.GetResult(ctx, inputID)
	if err != nil {
		return &ErrDatabase{Op: "get result", Err: err}
	} else if recorded == nil {
		if err := s.store.InsertResult(ctx, result); err != nil {
			return &ErrDatabase{Op: "insert result", Err: err}
		}
	}
	return nil
}

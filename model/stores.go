// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "context"

// Store is an interface for persisting runs.
type Store interface {
	InsertInput(ctx context.Context, in *Input) (int64, error)
	GetInput(ctx context.Context, sha256, options string) (*Input, error)
	LatestInput(ctx context.Context) (*Input, error)

	InsertGroup(ctx context.Context, g *Group) (int64, error)
	GroupsByInput(ctx context.Context, inputID int64) ([]*Group, error)
	TopGroups(ctx context.Context, inputID int64, n int) ([]*Group, error)

	InsertResult(ctx context.Context, r *Result) error
	GetResult(ctx context.Context, inputID int64) (*Result, error)

	TableStats(ctx context.Context) (map[string]int64, error)
}


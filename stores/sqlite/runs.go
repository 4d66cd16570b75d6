// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdhender/grpsum/model"
)

// InsertInput inserts an Input and returns its assigned ID.
func (s *SQLiteStore) InsertInput(ctx context.Context, in *model.Input) (int64, error) {
	const query = `
		INSERT INTO inputs (name, sha256, options, lines, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		in.Name,
		in.SHA256,
		in.Options,
		in.Lines,
		in.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert input: %w", err)
	}
	return result.LastInsertId()
}

// GetInput returns the input recorded for the content hash and options,
// or nil if there is none.
func (s *SQLiteStore) GetInput(ctx context.Context, sha256, options string) (*model.Input, error) {
	const query = `
		SELECT id, name, sha256, options, lines, created_at
		FROM inputs
		WHERE sha256 = ? AND options = ?
	`
	return s.scanInput(s.db.QueryRowContext(ctx, query, sha256, options))
}

// LatestInput returns the most recently recorded input, or nil if there is none.
func (s *SQLiteStore) LatestInput(ctx context.Context) (*model.Input, error) {
	const query = `
		SELECT id, name, sha256, options, lines, created_at
		FROM inputs
		ORDER BY id DESC
		LIMIT 1
	`
	return s.scanInput(s.db.QueryRowContext(ctx, query))
}

func (s *SQLiteStore) scanInput(row *sql.Row) (*model.Input, error) {
	var in model.Input
	var createdAt string
	err := row.Scan(
		&in.ID,
		&in.Name,
		&in.SHA256,
		&in.Options,
		&in.Lines,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get input: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		in.CreatedAt = t
	}
	return &in, nil
}

// InsertGroup inserts a Group and its values, returning the group's assigned ID.
func (s *SQLiteStore) InsertGroup(ctx context.Context, g *model.Group) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO input_groups (input_id, seq, first_line, last_line, sum)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		g.InputID,
		g.Seq,
		g.FirstLine,
		g.LastLine,
		g.Sum,
	)
	if err != nil {
		return 0, fmt.Errorf("insert group: %w", err)
	}
	groupID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get group id: %w", err)
	}

	for n, value := range g.Values {
		const query = `INSERT INTO group_values (group_id, seq, value) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, groupID, n+1, value); err != nil {
			return 0, fmt.Errorf("insert group_value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	g.ID = groupID
	return groupID, nil
}

// GroupsByInput returns the groups of an input in input order, with their values.
func (s *SQLiteStore) GroupsByInput(ctx context.Context, inputID int64) ([]*model.Group, error) {
	const query = `
		SELECT id, input_id, seq, first_line, last_line, sum
		FROM input_groups
		WHERE input_id = ?
		ORDER BY seq
	`
	return s.queryGroups(ctx, query, inputID)
}

// TopGroups returns the n groups with the largest sums, largest first.
// Ties are returned in input order.
func (s *SQLiteStore) TopGroups(ctx context.Context, inputID int64, n int) ([]*model.Group, error) {
	const query = `
		SELECT id, input_id, seq, first_line, last_line, sum
		FROM input_groups
		WHERE input_id = ?
		ORDER BY sum DESC, seq
		LIMIT ?
	`
	return s.queryGroups(ctx, query, inputID, n)
}

func (s *SQLiteStore) queryGroups(ctx context.Context, query string, args ...any) ([]*model.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var list []*model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.InputID, &g.Seq, &g.FirstLine, &g.LastLine, &g.Sum); err != nil {
			return nil, err
		}
		list = append(list, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range list {
		if g.Values, err = s.loadValuesForGroup(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *SQLiteStore) loadValuesForGroup(ctx context.Context, groupID int64) ([]int, error) {
	const query = `SELECT value FROM group_values WHERE group_id = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("query group_values: %w", err)
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// InsertResult inserts or replaces the result for an input.
func (s *SQLiteStore) InsertResult(ctx context.Context, r *model.Result) error {
	const query = `
		INSERT OR REPLACE INTO results (input_id, num_groups, max_sum, top3_sum)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, r.InputID, r.Groups, r.Max, r.Top3); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// GetResult returns the result for an input, or nil if there is none.
func (s *SQLiteStore) GetResult(ctx context.Context, inputID int64) (*model.Result, error) {
	const query = `
		SELECT input_id, num_groups, max_sum, top3_sum
		FROM results
		WHERE input_id = ?
	`
	var r model.Result
	err := s.db.QueryRowContext(ctx, query, inputID).Scan(&r.InputID, &r.Groups, &r.Max, &r.Top3)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return &r, nil
}

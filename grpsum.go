// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package grpsum reports on groups of blank-line separated integers.
package grpsum

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 1,
		Minor: 0,
		Patch: 0,
		Build: semver.Commit(),
	}
)

func Version() semver.Version {
	return version
}

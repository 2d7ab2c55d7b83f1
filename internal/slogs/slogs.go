// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package slogs

// Structured logging keys
const (
	// Core entity keys
	Path   = "path"
	Action = "action"
	Line   = "line"
	Code   = "code"
	RunID  = "run_id"

	// Generator keys
	Format      = "format"
	Output      = "output"
	Source      = "source"
	Actions     = "actions"
	Groups      = "groups"
	Diagnostics = "diagnostics"
	Bytes       = "bytes"

	// Release keys
	Version = "version"
	Current = "current"
	Archive = "archive"
	Files   = "files"
	Commit  = "commit"
	Step    = "step"
	Branch  = "branch"
	Dirty   = "dirty"

	// Status and operation keys
	Status   = "status"
	Error    = "error"
	Count    = "count"
	Duration = "duration"
)

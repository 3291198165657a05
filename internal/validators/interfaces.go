// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package validators checks admin input before it reaches the vault or the
// store: setup and unlock requests, post drafts and profiles.
//
// Failures are the sentinels in errors.go; the service layer reports them
// as its validation error.
package validators

import "context"

// Validator validates a request value. When fields are given only those
// struct fields are checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package tui

import (
	"errors"

	"github.com/kianlavi/onlyfan/internal/app"
)

var errInvalidNumber = errors.New("must be a non-negative number")

// humanize returns the message shown in the error overlay.
func humanize(err error) string {
	if errors.Is(err, errInvalidNumber) {
		return err.Error()
	}
	return app.Message(err)
}

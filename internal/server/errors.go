// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package server

import "errors"

// errNoHTTPHandler is returned by NewServer when there is nothing to listen
// with: no HTTP handler or no listen address.
var errNoHTTPHandler = errors.New("store has no http handler to serve")

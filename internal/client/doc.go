// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package client implements the admin panel process lifecycle.
//
// It runs the terminal UI until the user quits or the process is
// signalled, and makes sure the refresh worker never outlives it.
package client

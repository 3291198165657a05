// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package cli implements the onlyfan command-line tool: scripted setup,
// post and profile administration, the feed preview and token minting for
// the self-hosted store.
//
// Commands that change content unlock the vault with a prompted password
// in-process; the session ends with the command.
package cli

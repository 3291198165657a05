// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package feed renders the public timeline (profile header and posts) in
// the terminal, the same way the published site shows it.
//
// Loading needs no session: documents are read from the published site or
// anonymously through the contents API with an [adapter.DocumentReader].
package feed

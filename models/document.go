// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package models

import "time"

// Version is an opaque document version token issued by the store on every
// read and every successful write.
//
// The zero value [NoVersion] means "absent": a write carrying it uses create
// semantics and only succeeds when no document exists at the path.
type Version string

// NoVersion is the absent version token.
const NoVersion Version = ""

// IsAbsent reports whether the version token is absent.
func (v Version) IsAbsent() bool {
	return v == NoVersion
}

// Document is a single file read from the versioned store.
type Document struct {
	// Path is the repository-relative path of the document.
	Path string
	// Content is the raw (decoded) document body.
	Content []byte
	// Version is the version the content was observed at.
	Version Version
}

// WriteRequest describes a conditional write of a document.
type WriteRequest struct {
	// Path is the repository-relative path of the document.
	Path string
	// Content is the raw document body to store.
	Content []byte
	// ExpectedVersion is the version the caller last observed, or
	// [NoVersion] for create semantics.
	ExpectedVersion Version
	// Message is the audit annotation attached to the change.
	Message string
}

// DocumentVersion is the result of a successful write.
type DocumentVersion struct {
	Path     string
	Version  Version
	CommitID string
}

// StoredDocument is the server-side representation of a document held by the
// self-hosted store.
type StoredDocument struct {
	Repository string
	Path       string
	Content    []byte
	SHA        Version
	UpdatedAt  time.Time
}

// Revision is one audit-trail entry recorded for every accepted write.
type Revision struct {
	Repository string
	Path       string
	SHA        Version
	CommitID   string
	Message    string
	CreatedAt  time.Time
}

// Repository describes a repository hosted by the store.
type Repository struct {
	FullName    string                 `json:"full_name"`
	Name        string                 `json:"name"`
	Private     bool                   `json:"private"`
	Permissions *RepositoryPermissions `json:"permissions,omitempty"`
}

// RepositoryPermissions are the caller's permissions on a repository as
// reported by the store. Absent for anonymous callers.
type RepositoryPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

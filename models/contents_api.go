// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package models

import "time"

// ContentsFile is the body returned by GET /repos/{owner}/{repo}/contents/{path}.
// Content is base64, possibly wrapped with newlines every 60 characters.
type ContentsFile struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// ContentsPutRequest is the body of PUT /repos/{owner}/{repo}/contents/{path}.
type ContentsPutRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// ContentsPutResponse is returned by a successful PUT.
type ContentsPutResponse struct {
	Content ContentsFile `json:"content"`
	Commit  Commit       `json:"commit"`
}

// Commit identifies the change created by a write.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// APIError is the error body used by the contents API.
type APIError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// RepositoryCommit is one entry of GET /repos/{owner}/{repo}/commits.
type RepositoryCommit struct {
	SHA    string       `json:"sha"`
	Commit CommitDetail `json:"commit"`
}

// CommitDetail carries the message and time of a commit.
type CommitDetail struct {
	Message   string          `json:"message"`
	Committer CommitSignature `json:"committer"`
}

// CommitSignature is the committer of a commit. Only the date is reported
// by the self-hosted store.
type CommitSignature struct {
	Date time.Time `json:"date"`
}

// Package http implements the self-hosted contents API.
//
// It speaks the subset of the hosted contents API the admin client uses:
// repository metadata with the caller's permissions, base64 document reads
// and conditional writes keyed by the git blob sha, and the commit history
// of a path. Tracing, access logging, request metrics, compression and
// bearer authentication are handled here before requests reach the service
// layer.
package http

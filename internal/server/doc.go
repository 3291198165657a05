// Package server runs the HTTP listener of the self-hosted store: startup,
// signal handling and graceful shutdown.
package server

package server

import "context"

// Server defines the lifecycle of the self-hosted store listener.
type Server interface {
	// RunServer serves until a termination signal arrives.
	RunServer()

	// Run serves until ctx is done and then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}

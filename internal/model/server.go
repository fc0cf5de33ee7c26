package model

import "context"

// Server is a long-running listener with graceful shutdown.
type Server interface {
	Start() error
	Stop(ctx context.Context) error
	Address() string
}

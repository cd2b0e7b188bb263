// Package delivery defines the contract every transport entrypoint fulfills.
package delivery

import "context"

// Delivery is a long-running transport server started by the application
// lifecycle. Serve blocks until the server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}

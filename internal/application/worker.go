package application

import "context"

// Worker is a background loop that runs until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}

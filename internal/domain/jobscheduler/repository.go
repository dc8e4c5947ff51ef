package jobscheduler

import "context"

// Repository records job dispatch events. Writing the same dispatch id and status twice is a no-op.
type Repository interface {
	UpsertEvent(ctx context.Context, event DispatchEvent) error
}

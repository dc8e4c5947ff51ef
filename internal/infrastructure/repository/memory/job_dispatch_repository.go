package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	mu     sync.Mutex
	events map[string]jobscheduler.DispatchEvent
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{events: make(map[string]jobscheduler.DispatchEvent)}
}

// UpsertEvent keeps the latest event per dispatch id.
func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	id := strings.TrimSpace(event.DispatchID)
	if id == "" {
		return fmt.Errorf("dispatch id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[id] = event
	return nil
}

func (r *JobDispatchRepository) Get(dispatchID string) (jobscheduler.DispatchEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[dispatchID]
	return event, ok
}

package submission

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RequestState is the aggregate lifecycle of one tracked submission,
// independent of the finer-grained Response status stream.
type RequestState string

const (
	RequestPending   RequestState = "pending"
	RequestCompleted RequestState = "completed"
	RequestFailed    RequestState = "failed"
	RequestRejected  RequestState = "rejected"
)

// TrackedRequest is one registered in-flight submission.
type TrackedRequest struct {
	ID        string
	State     RequestState
	CreatedAt time.Time
	Message   string
}

// ErrRequestNotFound is returned for unknown tracker IDs.
var ErrRequestNotFound = errors.New("submission request not found")

// Tracker registers in-flight submissions so that out-of-band collaborators
// (confirmation UI, interactive signers) can look up and settle them by ID.
type Tracker struct {
	mu       sync.Mutex
	requests map[string]*TrackedRequest
}

func NewTracker() *Tracker {
	return &Tracker{requests: make(map[string]*TrackedRequest)}
}

// Create registers a new pending request and returns its ID.
func (t *Tracker) Create() *TrackedRequest {
	request := &TrackedRequest{
		ID:        uuid.New().String(),
		State:     RequestPending,
		CreatedAt: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests[request.ID] = request

	return request
}

// Update transitions a tracked request to a new state. Terminal states win:
// a request already completed, failed or rejected is not overwritten.
func (t *Tracker) Update(id string, state RequestState, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	request, ok := t.requests[id]
	if !ok {
		return ErrRequestNotFound
	}

	if request.State != RequestPending {
		return nil
	}

	request.State = state
	request.Message = message

	return nil
}

// Get returns a copy of the tracked request.
func (t *Tracker) Get(id string) (TrackedRequest, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	request, ok := t.requests[id]
	if !ok {
		return TrackedRequest{}, ErrRequestNotFound
	}

	return *request, nil
}

// Remove drops a settled request from the registry.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.requests, id)
}

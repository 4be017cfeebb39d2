package document

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// ArtifactState is the lifecycle position of a rendered document.
type ArtifactState int

const (
	StateCreated ArtifactState = iota
	StateStreaming
	StateDelivered
	StateDeliveryFailed
	StateDeleted
)

func (s ArtifactState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStreaming:
		return "streaming"
	case StateDelivered:
		return "delivered"
	case StateDeliveryFailed:
		return "delivery_failed"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("ArtifactState(%d)", int(s))
	}
}

const artifactPrefix = "analyzed_transcript_"

var artifactKeyRe = regexp.MustCompile(`^analyzed_transcript_[0-9a-f-]{36}\.pdf$`)

// NewArtifactKey returns a storage key unique across concurrent requests.
func NewArtifactKey() string {
	return artifactPrefix + uuid.NewString() + ".pdf"
}

// IsArtifactKey reports whether name was produced by NewArtifactKey.
func IsArtifactKey(name string) bool {
	return artifactKeyRe.MatchString(name)
}

// Artifact tracks one transient document in a Store. Release removes it
// exactly once no matter how many times it is called.
type Artifact struct {
	Key string

	store  Store
	logger *slog.Logger

	mu    sync.Mutex
	state ArtifactState

	once       sync.Once
	releaseErr error
}

func newArtifact(store Store, key string, logger *slog.Logger) *Artifact {
	return &Artifact{Key: key, store: store, logger: logger, state: StateCreated}
}

// State returns the current lifecycle state.
func (a *Artifact) State() ArtifactState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Artifact) setState(s ArtifactState) {
	a.mu.Lock()
	prev := a.state
	if prev != StateDeleted {
		a.state = s
	}
	a.mu.Unlock()
	a.logger.Debug("artifact state", "key", a.Key, "from", prev.String(), "to", s.String())
}

// Release deletes the stored object. The delete runs detached from ctx's
// cancellation so an aborted request still cleans up.
func (a *Artifact) Release(ctx context.Context) error {
	a.once.Do(func() {
		a.releaseErr = a.store.Delete(context.WithoutCancel(ctx), a.Key)
		a.setState(StateDeleted)
	})
	return a.releaseErr
}

package featureflags

import (
	"context"
	"sync"
)

// Repository defines the interface for feature flag storage.
type Repository interface {
	GetFlag(ctx context.Context, key string) (*Flag, error)
	GetAllFlags(ctx context.Context) (map[string]*Flag, error)
	SetFlag(ctx context.Context, flag *Flag) error
	SetFlags(ctx context.Context, flags []*Flag) error
	DeleteFlag(ctx context.Context, key string) error
}

// MemoryRepository is an in-memory flag store. Flags reset to defaults on
// restart, which is acceptable for per-deployment operational toggles.
type MemoryRepository struct {
	mu    sync.RWMutex
	flags map[string]*Flag
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{flags: make(map[string]*Flag)}
}

// GetFlag retrieves a flag by key.
func (r *MemoryRepository) GetFlag(_ context.Context, key string) (*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flag, ok := r.flags[key]
	if !ok {
		return nil, ErrFlagNotFound
	}
	return flag, nil
}

// GetAllFlags retrieves all stored flags.
func (r *MemoryRepository) GetAllFlags(_ context.Context) (map[string]*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Flag, len(r.flags))
	for k, v := range r.flags {
		out[k] = v
	}
	return out, nil
}

// SetFlag stores a flag.
func (r *MemoryRepository) SetFlag(_ context.Context, flag *Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[flag.Key] = flag
	return nil
}

// SetFlags stores multiple flags atomically.
func (r *MemoryRepository) SetFlags(_ context.Context, flags []*Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, flag := range flags {
		r.flags[flag.Key] = flag
	}
	return nil
}

// DeleteFlag removes a flag, reverting it to its default.
func (r *MemoryRepository) DeleteFlag(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flags[key]; !ok {
		return ErrFlagNotFound
	}
	delete(r.flags, key)
	return nil
}

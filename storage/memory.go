package storage

import "sync"

// MemoryAdapter keeps values in a map. Used by tests and ephemeral runs.
type MemoryAdapter struct {
	mu      sync.RWMutex
	data    map[string][]byte
	saveErr error
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

func (a *MemoryAdapter) Load(key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (a *MemoryAdapter) Save(key string, value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.saveErr != nil {
		return a.saveErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	a.data[key] = stored
	return nil
}

// FailSaves makes every subsequent Save return err (nil restores normal
// behavior). Lets tests exercise the log-and-continue persistence path.
func (a *MemoryAdapter) FailSaves(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saveErr = err
}

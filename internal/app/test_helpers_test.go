package app

import (
	"context"
	"errors"
	"time"

	"github.com/BobBjorklund/progressTracker/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.KeyValueStore = (*mockKVStore)(nil)
	_ secondary.ReportReader  = (*mockReportReader)(nil)
)

// mockKVStore implements secondary.KeyValueStore for testing.
type mockKVStore struct {
	values    map[string]string
	sets      map[string]int
	getErr    error
	setErr    error
	deleteErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		values: make(map[string]string),
		sets:   make(map[string]int),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKVStore) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	m.sets[key]++
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

// mockReportReader implements secondary.ReportReader for testing.
type mockReportReader struct {
	sheet    *secondary.Sheet
	readErr  error
	lastFile string
}

func (m *mockReportReader) Read(ctx context.Context, data []byte, filename string) (*secondary.Sheet, error) {
	m.lastFile = filename
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.sheet == nil {
		return &secondary.Sheet{Name: "Sheet1"}, nil
	}
	return m.sheet, nil
}

var errStorage = errors.New("disk full")

// newTestTrackerService returns a service over fresh mocks with a fixed clock.
func newTestTrackerService() (*TrackerServiceImpl, *mockKVStore, *mockReportReader) {
	kv := newMockKVStore()
	reader := &mockReportReader{}
	svc := NewTrackerService(kv, reader, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 9, 22, 15, 30, 250_000_000, time.FixedZone("EST", -5*3600))
	}
	return svc, kv, reader
}

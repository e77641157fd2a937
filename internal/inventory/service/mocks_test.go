package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"flexstock/internal/inventory"

	"github.com/prometheus/client_golang/prometheus"
)

// memStore keeps products and updates in memory and can be told to fail.
type memStore struct {
	mu       sync.Mutex
	products map[int64]inventory.Product
	events   []inventory.UpdateEvent
	nextID   int64
	clock    time.Time

	createUpdateErr error
	listUpdatesErr  error
	findErr         error
	finds           int
}

func newMemStore(products ...inventory.Product) *memStore {
	s := &memStore{
		products: make(map[int64]inventory.Product),
		clock:    time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) CreateUpdate(_ context.Context, u inventory.Update) (inventory.UpdateEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createUpdateErr != nil {
		return inventory.UpdateEvent{}, s.createUpdateErr
	}
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	event := inventory.UpdateEvent{ID: s.nextID, Update: u, Timestamp: s.clock}
	s.events = append(s.events, event)
	return event, nil
}

func (s *memStore) ListUpdates(_ context.Context) ([]inventory.UpdateEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listUpdatesErr != nil {
		return nil, s.listUpdatesErr
	}
	return append([]inventory.UpdateEvent{}, s.events...), nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (inventory.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.findErr != nil {
		return inventory.Product{}, s.findErr
	}
	p, ok := s.products[id]
	if !ok {
		return inventory.Product{}, inventory.ErrNotFound
	}
	return p, nil
}

func (s *memStore) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type mockPublisher struct {
	events []inventory.UpdateEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event inventory.UpdateEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestUpdates(store *memStore, pub Publisher) *Updates {
	return NewUpdates(store, store, pub, discardLogger(),
		prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_recorded", Help: "t"}, []string{"type"}),
	)
}

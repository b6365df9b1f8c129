package store

import (
	"context"
	"sync"

	"inmueblesv-catalog/internal/models"
)

// MemoryStore is an in-process Store fed with synthetic snapshots. It
// backs the unit tests and local development without a database.
type MemoryStore struct {
	mu         sync.Mutex
	properties []models.Property
	reviews    []models.Review

	nextID       int
	propertySubs map[int]func(PropertySnapshot)
	reviewSubs   map[int]func(ReviewSnapshot)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		propertySubs: make(map[int]func(PropertySnapshot)),
		reviewSubs:   make(map[int]func(ReviewSnapshot)),
	}
}

type memorySubscription struct {
	cancel func()
}

func (s *memorySubscription) Unsubscribe() {
	s.cancel()
}

// SubscribeProperties registers fn and synchronously delivers the
// current snapshot before returning.
func (m *MemoryStore) SubscribeProperties(ctx context.Context, fn func(PropertySnapshot)) (Subscription, error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.propertySubs[id] = fn
	initial := PropertySnapshot{Records: copyProperties(m.properties)}
	m.mu.Unlock()

	fn(initial)

	sub := &memorySubscription{cancel: func() {
		m.mu.Lock()
		delete(m.propertySubs, id)
		m.mu.Unlock()
	}}
	go func() {
		<-ctx.Done()
		sub.Unsubscribe()
	}()
	return sub, nil
}

func (m *MemoryStore) SubscribeReviews(ctx context.Context, fn func(ReviewSnapshot)) (Subscription, error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.reviewSubs[id] = fn
	initial := ReviewSnapshot{Reviews: copyReviews(m.reviews)}
	m.mu.Unlock()

	fn(initial)

	sub := &memorySubscription{cancel: func() {
		m.mu.Lock()
		delete(m.reviewSubs, id)
		m.mu.Unlock()
	}}
	go func() {
		<-ctx.Done()
		sub.Unsubscribe()
	}()
	return sub, nil
}

// SetProperties replaces the collection and pushes a snapshot to every
// active subscriber, in emission order.
func (m *MemoryStore) SetProperties(records []models.Property) {
	m.mu.Lock()
	m.properties = copyProperties(records)
	subs := make([]func(PropertySnapshot), 0, len(m.propertySubs))
	for _, fn := range m.propertySubs {
		subs = append(subs, fn)
	}
	snapshot := PropertySnapshot{Records: copyProperties(records)}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// SetReviews replaces the review collection and pushes a snapshot.
func (m *MemoryStore) SetReviews(reviews []models.Review) {
	m.mu.Lock()
	m.reviews = copyReviews(reviews)
	subs := make([]func(ReviewSnapshot), 0, len(m.reviewSubs))
	for _, fn := range m.reviewSubs {
		subs = append(subs, fn)
	}
	snapshot := ReviewSnapshot{Reviews: copyReviews(reviews)}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// FailProperties pushes a failure snapshot; subscribers keep their
// last known good records.
func (m *MemoryStore) FailProperties(err error) {
	m.mu.Lock()
	subs := make([]func(PropertySnapshot), 0, len(m.propertySubs))
	for _, fn := range m.propertySubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(PropertySnapshot{Err: err})
	}
}

func copyProperties(in []models.Property) []models.Property {
	out := make([]models.Property, len(in))
	copy(out, in)
	return out
}

func copyReviews(in []models.Review) []models.Review {
	out := make([]models.Review, len(in))
	copy(out, in)
	return out
}

package inmemory

import (
	"slices"
	"sync"

	"gym-app-go/internal/domain/gym"
)

// records is the collection behind every in-memory repository. Reads hand out
// clones; writes replace the stored slice with a clone of the input.
type records[T any] struct {
	mu       sync.RWMutex
	items    []T
	kind     gym.Kind
	ids      gym.IDAllocator
	idOf     func(T) int
	emailOf  func(T) string
	clone    func(T) T
	notFound error
}

func (r *records[T]) loadAll() ([]T, error) {
	r.mu.RLock()
	items := r.cloneAll(r.items)
	r.mu.RUnlock()

	if err := r.syncIDs(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *records[T]) saveAll(items []T) error {
	cloned := r.cloneAll(items)

	r.mu.Lock()
	r.items = cloned
	r.mu.Unlock()

	return r.syncIDs(cloned)
}

func (r *records[T]) add(item T) error {
	r.mu.Lock()
	r.items = append(r.items, r.clone(item))
	r.mu.Unlock()

	if id := r.idOf(item); id > r.ids.LastID(r.kind) {
		return r.ids.SaveLastID(r.kind, id)
	}
	return nil
}

func (r *records[T]) find(match func(T) bool) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.items, match)
	if idx == -1 {
		return nil, r.notFound
	}
	item := r.clone(r.items[idx])
	return &item, nil
}

func (r *records[T]) findByID(id int) (*T, error) {
	return r.find(func(item T) bool { return r.idOf(item) == id })
}

func (r *records[T]) findByEmail(email string) (*T, error) {
	return r.find(func(item T) bool { return r.emailOf(item) == email })
}

// delete removes id from items and stores what is left.
func (r *records[T]) delete(id int, items []T) error {
	idx := slices.IndexFunc(items, func(item T) bool { return r.idOf(item) == id })
	if idx == -1 {
		return r.notFound
	}

	remaining := r.cloneAll(items)
	remaining = slices.Delete(remaining, idx, idx+1)
	return r.saveAll(remaining)
}

// syncIDs sets the allocator to the highest ID in items.
func (r *records[T]) syncIDs(items []T) error {
	highest := 0
	for _, item := range items {
		highest = max(highest, r.idOf(item))
	}
	return r.ids.SaveLastID(r.kind, highest)
}

func (r *records[T]) cloneAll(items []T) []T {
	cloned := make([]T, len(items))
	for i := range items {
		cloned[i] = r.clone(items[i])
	}
	return cloned
}

func identity[T any](item T) T {
	return item
}

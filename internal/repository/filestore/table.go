// Package filestore implements the repositories on top of comma-separated text
// files. Every call re-reads or re-writes the file, so the file stays the
// source of truth across restarts.
package filestore

import (
	"fmt"
	"slices"
	"strings"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/flatfile"
	"gym-app-go/pkg/logger"
)

type codec[T any] struct {
	fields  int
	encode  func(T) []string
	decode  func(fields []string) (T, error)
	idOf    func(T) int
	emailOf func(T) string
	// withID is set for formats whose ID column is optional. Rows without an
	// ID are numbered after the highest stored ID, in file order.
	withID func(T, int) T
}

type table[T any] struct {
	store    *flatfile.Store
	kind     gym.Kind
	ids      gym.IDAllocator
	codec    codec[T]
	notFound error
	log      logger.Logger
}

func newTable[T any](path string, kind gym.Kind, ids gym.IDAllocator, c codec[T], notFound error, log logger.Logger) *table[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &table[T]{
		store:    flatfile.New(path, log),
		kind:     kind,
		ids:      ids,
		codec:    c,
		notFound: notFound,
		log:      log.Component("filestore", "kind", kind),
	}
}

// loadAll parses every line. Rows that are short, have an empty required
// field or a non-numeric ID are skipped and loading continues.
func (t *table[T]) loadAll() ([]T, error) {
	lines := t.store.ReadLines()

	items := make([]T, 0, len(lines))
	for i, line := range lines {
		fields := flatfile.Split(line, flatfile.Delimiter)
		for j := range fields {
			fields[j] = flatfile.Trim(fields[j])
		}

		item, err := t.decode(fields)
		if err != nil {
			t.log.Debug("flatfile: skipping record", "line", i+1, "err", err)
			continue
		}
		items = append(items, item)
	}
	t.numberRows(items)

	if err := t.syncIDs(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t *table[T]) numberRows(items []T) {
	if t.codec.withID == nil {
		return
	}
	highest := 0
	for _, item := range items {
		highest = max(highest, t.codec.idOf(item))
	}
	for i, item := range items {
		if t.codec.idOf(item) == 0 {
			highest++
			items[i] = t.codec.withID(item, highest)
		}
	}
}

func (t *table[T]) decode(fields []string) (T, error) {
	var zero T
	if len(fields) < t.codec.fields {
		return zero, malformed("expected %d fields, got %d", t.codec.fields, len(fields))
	}
	for i := 0; i < t.codec.fields; i++ {
		if fields[i] == "" {
			return zero, malformed("field %d is empty", i+1)
		}
	}
	return t.codec.decode(fields)
}

func (t *table[T]) saveAll(items []T) error {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line, err := t.encode(item)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	if err := t.store.WriteLines(lines); err != nil {
		return err
	}
	return t.syncIDs(items)
}

func (t *table[T]) add(item T) error {
	line, err := t.encode(item)
	if err != nil {
		return err
	}
	if err := t.store.AppendLine(line); err != nil {
		return err
	}
	if id := t.codec.idOf(item); id > t.ids.LastID(t.kind) {
		return t.ids.SaveLastID(t.kind, id)
	}
	return nil
}

func (t *table[T]) find(match func(T) bool) (*T, error) {
	items, err := t.loadAll()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(items, match)
	if idx == -1 {
		return nil, t.notFound
	}
	return &items[idx], nil
}

func (t *table[T]) findByID(id int) (*T, error) {
	return t.find(func(item T) bool { return t.codec.idOf(item) == id })
}

func (t *table[T]) findByEmail(email string) (*T, error) {
	return t.find(func(item T) bool { return t.codec.emailOf(item) == email })
}

func (t *table[T]) delete(id int, items []T) (T, error) {
	var removed T
	idx := slices.IndexFunc(items, func(item T) bool { return t.codec.idOf(item) == id })
	if idx == -1 {
		return removed, t.notFound
	}

	removed = items[idx]
	remaining := slices.Delete(slices.Clone(items), idx, idx+1)
	return removed, t.saveAll(remaining)
}

// encode refuses fields that would shift columns or split the record.
func (t *table[T]) encode(item T) (string, error) {
	fields := t.codec.encode(item)
	for i, field := range fields {
		if strings.ContainsAny(field, flatfile.Delimiter+"\r\n") {
			return "", fmt.Errorf("%w: %s field %d must not contain commas or line breaks", gym.ErrValidation, t.kind, i+1)
		}
	}
	return joinFields(fields), nil
}

// syncIDs sets the allocator to the highest ID among items, never to the
// allocator's own value.
func (t *table[T]) syncIDs(items []T) error {
	highest := 0
	for _, item := range items {
		highest = max(highest, t.codec.idOf(item))
	}
	return t.ids.SaveLastID(t.kind, highest)
}

// Package idalloc issues per-kind integer IDs. A memory-only allocator lives
// for the process; a file-backed one keeps "kind:lastID" lines on disk so IDs
// keep growing across restarts.
package idalloc

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/flatfile"
	"gym-app-go/pkg/logger"
)

type Allocator struct {
	mu    sync.Mutex
	last  map[gym.Kind]int
	store *flatfile.Store
	log   logger.Logger
}

func New() *Allocator {
	return &Allocator{
		last: make(map[gym.Kind]int),
		log:  logger.Nop(),
	}
}

// NewFile loads counters from path. A missing or unreadable file starts every
// kind at zero.
func NewFile(path string, log logger.Logger) *Allocator {
	if log == nil {
		log = logger.Nop()
	}
	a := &Allocator{
		last:  make(map[gym.Kind]int),
		store: flatfile.New(path, log),
		log:   log.Component("idalloc"),
	}

	for _, line := range a.store.ReadLines() {
		kind, lastID, ok := parseLine(line)
		if !ok {
			continue
		}
		a.last[kind] = lastID
	}
	return a
}

// LastID returns 0 for kinds that never had an ID.
func (a *Allocator) LastID(kind gym.Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last[kind]
}

func (a *Allocator) NextID(kind gym.Kind) int {
	return a.LastID(kind) + 1
}

// SaveLastID records lastID as given. Repositories pass the highest ID they
// loaded, so counters may also move down after the newest record is removed.
func (a *Allocator) SaveLastID(kind gym.Kind, lastID int) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown entity kind %q", gym.ErrValidation, kind)
	}
	if lastID < 0 {
		return fmt.Errorf("%w: negative id %d", gym.ErrValidation, lastID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last[kind] == lastID && a.store != nil && a.store.Exists() {
		return nil
	}
	a.last[kind] = lastID

	if a.store == nil {
		return nil
	}
	return a.persist(kind, lastID)
}

// persist rewrites the counter line for kind and keeps every other line as is.
func (a *Allocator) persist(kind gym.Kind, lastID int) error {
	entry := formatLine(kind, lastID)
	lines := a.store.ReadLines()

	found := false
	for i, line := range lines {
		lineKind, _, ok := parseLine(line)
		if ok && lineKind == kind {
			lines[i] = entry
			found = true
		}
	}
	if !found {
		lines = append(lines, entry)
	}

	if err := a.store.WriteLines(lines); err != nil {
		a.log.InternalError("idalloc: save counter failed", err, "kind", kind)
		return fmt.Errorf("save %s counter: %w", kind, err)
	}
	return nil
}

func parseLine(line string) (gym.Kind, int, bool) {
	kindPart, idPart, ok := strings.Cut(line, ":")
	if !ok {
		return "", 0, false
	}
	kind := gym.Kind(strings.TrimSpace(kindPart))
	if !kind.Valid() {
		return "", 0, false
	}
	lastID, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil || lastID < 0 {
		return "", 0, false
	}
	return kind, lastID, true
}

func formatLine(kind gym.Kind, lastID int) string {
	return string(kind) + ":" + strconv.Itoa(lastID)
}

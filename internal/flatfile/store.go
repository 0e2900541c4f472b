// Package flatfile reads and writes line-oriented text files. One record per
// line, fields separated by a delimiter, no escaping.
package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/pkg/logger"
)

const Delimiter = ","

type Store struct {
	path string
	log  logger.Logger
}

func New(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		log:  log.Component("flatfile", "path", path),
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// ReadLines returns every non-blank line. A file that cannot be opened reads
// as empty: no records yet.
func (s *Store) ReadLines() []string {
	file, err := os.Open(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("flatfile: open for read failed", "err", err)
		}
		return []string{}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		s.log.Warn("flatfile: read interrupted", "err", err, "lines", len(lines))
	}
	return lines
}

// WriteLines replaces the file contents. The new contents land in a temp file
// next to the target and are renamed into place.
func (s *Store) WriteLines(lines []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s.unavailable("create dir", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(s.path)+"-*")
	if err != nil {
		return s.unavailable("open for write", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	writer := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			_ = tmp.Close()
			return s.unavailable("write", err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = tmp.Close()
		return s.unavailable("flush", err)
	}
	if err := tmp.Close(); err != nil {
		return s.unavailable("close", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return s.unavailable("replace", err)
	}
	return nil
}

func (s *Store) AppendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.unavailable("create dir", err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return s.unavailable("open for append", err)
	}

	// Hand-edited files may end without a newline.
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, info.Size()-1); err == nil && last[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err := file.WriteString(line + "\n"); err != nil {
		_ = file.Close()
		return s.unavailable("append", err)
	}
	if err := file.Close(); err != nil {
		return s.unavailable("close", err)
	}
	return nil
}

// Clear truncates the file, creating it when missing.
func (s *Store) Clear() error {
	return s.WriteLines(nil)
}

func (s *Store) unavailable(op string, err error) error {
	s.log.InternalError("flatfile: "+op+" failed", err)
	return fmt.Errorf("%w: %s %s: %v", gym.ErrStorageUnavailable, op, s.path, err)
}

// Split cuts line at every delimiter. Fields are returned untrimmed.
func Split(line, delimiter string) []string {
	return strings.Split(line, delimiter)
}

func Trim(field string) string {
	return strings.TrimSpace(field)
}

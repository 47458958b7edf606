// Package registry tracks registered repositories by short name and keeps
// the name -> path mapping durable across invocations.
package registry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is one persisted repository registration.
type Record struct {
	Path string
	Name string
}

// Store persists registrations as a flat line-oriented file, one
// "path,name" record per line. Neither field may contain a comma.
type Store struct {
	Path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Exists reports whether the store file has been created yet.
func (s *Store) Exists() bool {
	fi, err := os.Stat(s.Path)
	return err == nil && !fi.IsDir()
}

// Load reads all records in file order. Blank lines are ignored. A line
// that does not split into exactly two comma-separated fields is skipped
// and a warning is written to warn; registrations are never dropped
// silently.
func (s *Store) Load(warn io.Writer) ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open repo store: %w", err)
	}
	defer func() { _ = f.Close() }()

	var records []Record

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		path, name, ok := splitRecord(line)
		if !ok {
			_, _ = fmt.Fprintf(warn, "Warning: skipping malformed line in %s: %q\n", s.Path, line)
			continue
		}

		records = append(records, Record{Path: path, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read repo store: %w", err)
	}

	return records, nil
}

// splitRecord splits a "path,name" line into its two fields.
func splitRecord(line string) (path, name string, ok bool) {
	i := strings.Index(line, ",")
	if i < 0 {
		return "", "", false
	}

	path, name = line[:i], line[i+1:]
	if path == "" || name == "" || strings.Contains(name, ",") {
		return "", "", false
	}

	return path, name, true
}

// Append adds records to the end of the store file, creating the file and
// its parent directory when missing.
func (s *Store) Append(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open repo store: %w", err)
	}

	for _, rec := range records {
		if _, err := fmt.Fprintf(f, "%s,%s\n", rec.Path, rec.Name); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write repo store: %w", err)
		}
	}

	return f.Close()
}

// Rewrite replaces the whole store file with the given mapping, written in
// name order. The new content lands via a temp file and rename so a crash
// never leaves a half-written store.
func (s *Store) Rewrite(repos map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	names := make([]string, 0, len(repos))
	for name := range repos {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		_, _ = fmt.Fprintf(&sb, "%s,%s\n", repos[name], name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".repo_path-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store: %w", err)
	}

	if _, err := tmp.WriteString(sb.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write repo store: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write repo store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace repo store: %w", err)
	}

	return nil
}

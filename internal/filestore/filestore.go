// Package filestore implements the flat file store the shell's file commands
// and its run command operate on: every file lives directly under a single
// root directory, named with up to 63 ASCII bytes, read and written whole.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	maxEntries  = 64
	maxNameLen  = 63
	defaultRoot = "fs"
)

// Entry describes one cached file: its name, size and modification time.
// Data is loaded on demand by Read, not held in the cache.
type Entry struct {
	Name     string
	Size     int64
	Modified time.Time
}

// Store mirrors a directory on disk into an in-memory entry cache capped at
// maxEntries, rescanning the directory after every mutation rather than
// patching the cache in place.
type Store struct {
	root    string
	entries []Entry
}

// New creates the store's root directory if needed and returns a Store with
// the initial directory contents scanned in.
func New(root string) (*Store, error) {
	if root == "" {
		root = defaultRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create file store root %q: %w", root, err)
	}
	s := &Store{root: root}
	if err := s.Scan(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the directory the store mirrors.
func (s *Store) Root() string {
	return s.root
}

// Scan rebuilds the entry cache from the directory, ignoring subdirectories
// and stopping once maxEntries files have been seen.
func (s *Store) Scan() error {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("scan file store: %w", err)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || len(entries) >= maxEntries {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:     de.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	s.entries = entries
	return nil
}

// List returns the cached directory listing as of the last Scan.
func (s *Store) List() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Find returns the cached entry for name, if any.
func (s *Store) Find(name string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("invalid file name %q", name)
	}
	for i := 0; i < len(name); i++ {
		if name[i] > 0x7f {
			return fmt.Errorf("invalid file name %q: not ASCII", name)
		}
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q: must not contain a path", name)
	}
	return nil
}

// Read loads a file's entire contents from disk.
func (s *Store) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

// Write creates or overwrites a file's entire contents, then rescans so the
// cache reflects the change.
func (s *Store) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return s.Scan()
}

// Delete removes a file and rescans.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return s.Scan()
}

// Rename moves a file to a new name within the store and rescans.
func (s *Store) Rename(oldName, newName string) error {
	if err := validateName(oldName); err != nil {
		return err
	}
	if err := validateName(newName); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(s.root, oldName), filepath.Join(s.root, newName)); err != nil {
		return fmt.Errorf("rename %q to %q: %w", oldName, newName, err)
	}
	return s.Scan()
}

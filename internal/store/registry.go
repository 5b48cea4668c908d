// Package store owns the uploaded files on disk and the per-session parse
// cache over them. The cache is explicit memoization with manual
// invalidation: entries are keyed by file path and reloaded when a cached
// parse turned out empty.
package store

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ggAnalyze/internal/aggregate"
	"ggAnalyze/internal/loader"
)

// Registry tracks one session's uploaded file list and cached per-file
// results. One logical writer per session; the mutex covers the networked
// multi-user case where handlers and the rescan job race.
type Registry struct {
	mu     sync.Mutex
	dir    string
	files  []string
	cache  map[string]*loader.FileData
	loadFn func(string) *loader.FileData
}

// NewRegistry roots a registry at dir, creating it if needed and picking up
// spreadsheet files retained from earlier sessions.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	r := &Registry{
		dir:    dir,
		cache:  make(map[string]*loader.FileData),
		loadFn: loader.Load,
	}
	r.Rescan()
	return r, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// Rescan reconciles the in-memory file list with the upload directory:
// files added on disk join the list, vanished ones drop out along with
// their cache entries.
func (r *Registry) Rescan() {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		log.Printf("[ERROR] rescan of %s failed: %v", r.dir, err)
		return
	}
	onDisk := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		onDisk[filepath.Join(r.dir, e.Name())] = true
	}

	kept := r.files[:0]
	known := make(map[string]bool)
	for _, p := range r.files {
		if onDisk[p] {
			kept = append(kept, p)
			known[p] = true
		} else {
			delete(r.cache, p)
		}
	}
	for p := range onDisk {
		if !known[p] {
			kept = append(kept, p)
		}
	}
	r.files = kept
}

// Files returns the tracked paths in upload order.
func (r *Registry) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.files...)
}

// Save writes an uploaded file into the store and parses it immediately.
func (r *Registry) Save(name string, src io.Reader) (string, error) {
	path := filepath.Join(r.dir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.cache[path]; !known {
		tracked := false
		for _, p := range r.files {
			if p == path {
				tracked = true
				break
			}
		}
		if !tracked {
			r.files = append(r.files, path)
		}
	}
	r.cache[path] = r.loadFn(path)
	return path, nil
}

// GetOrLoad returns the cached result for path, loading it on a miss. A
// cached result whose tips slot came back empty is treated as stale and
// reloaded once, mirroring how transient read failures were recovered in
// practice.
func (r *Registry) GetOrLoad(path string) *loader.FileData {
	r.mu.Lock()
	defer r.mu.Unlock()
	fd, ok := r.cache[path]
	if !ok || fd.TipsEmpty() {
		fd = r.loadFn(path)
		r.cache[path] = fd
	}
	return fd
}

// Invalidate drops the cached parse for path; the next access reloads.
func (r *Registry) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, path)
}

// Remove deletes an uploaded file from disk and forgets it.
func (r *Registry) Remove(name string) error {
	path := filepath.Join(r.dir, filepath.Base(name))
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	delete(r.cache, path)
	for i, p := range r.files {
		if p == path {
			r.files = append(r.files[:i], r.files[i+1:]...)
			break
		}
	}
	return nil
}

// Combined rebuilds the session-wide dataset view from every tracked file.
func (r *Registry) Combined() *aggregate.SessionData {
	files := r.Files()
	results := make([]*loader.FileData, 0, len(files))
	for _, p := range files {
		results = append(results, r.GetOrLoad(p))
	}
	return aggregate.Combine(results)
}

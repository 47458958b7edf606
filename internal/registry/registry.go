package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/inovacc/multigit/internal/gitutil"
)

// ErrRepoNotFound reports an operation referencing a name that is not in
// the registry.
var ErrRepoNotFound = errors.New("repository not registered")

// Registry is the validated, collision-resolved view of the store for one
// process run. The first Load reads the store file once; later calls reuse
// the snapshot, so a run always sees consistent data even if the file
// changes underneath it.
type Registry struct {
	Out  io.Writer // mutation summaries
	Warn io.Writer // skipped-entry warnings

	store *Store

	loadOnce sync.Once
	repos    map[string]string
	loadErr  error
}

// New returns a registry backed by store, reporting to stdout/stderr.
func New(store *Store) *Registry {
	return &Registry{
		Out:   os.Stdout,
		Warn:  os.Stderr,
		store: store,
	}
}

// Load returns the name -> absolute path mapping of all registered
// repositories whose paths still look like git working directories.
// Entries failing the check stay in the store file but are dropped from
// the view. The returned map is the registry's own snapshot; treat it as
// read-only.
func (r *Registry) Load() (map[string]string, error) {
	r.loadOnce.Do(func() {
		r.repos, r.loadErr = r.load()
	})

	return r.repos, r.loadErr
}

func (r *Registry) load() (map[string]string, error) {
	records, err := r.store.Load(r.Warn)
	if err != nil {
		return nil, err
	}

	repos := make(map[string]string, len(records))

	for _, rec := range records {
		if !gitutil.IsRepository(rec.Path) {
			continue
		}

		key, ok := resolveKey(repos, rec)
		if !ok {
			_, _ = fmt.Fprintf(r.Warn, "Warning: cannot find a unique name for %s, skipping\n", rec.Path)
			continue
		}

		repos[key] = rec.Path
	}

	return repos, nil
}

// resolveKey picks a unique key for rec. On a name collision the key is
// prefixed with the parent directory name, walking further up the path
// until the key is unique or the path is exhausted.
func resolveKey(repos map[string]string, rec Record) (string, bool) {
	key := rec.Name
	dir := filepath.Dir(rec.Path)

	for {
		if _, taken := repos[key]; !taken {
			return key, true
		}

		parent := filepath.Base(dir)
		next := filepath.Dir(dir)
		if next == dir || parent == string(filepath.Separator) || parent == "." {
			return "", false
		}

		key = parent + "/" + key
		dir = next
	}
}

// Add registers the given paths. Paths that are not git working
// directories or are already registered (by path) are skipped. New
// entries are appended to the store under their base directory name.
// Returns the number of repositories actually added and always prints a
// one-line outcome summary.
func (r *Registry) Add(paths []string) (int, error) {
	repos, err := r.Load()
	if err != nil {
		return 0, err
	}

	registered := make(map[string]bool, len(repos))
	for _, p := range repos {
		registered[p] = true
	}

	var records []Record

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return 0, fmt.Errorf("cannot resolve path %q: %w", p, err)
		}
		abs = filepath.Clean(abs)

		if strings.Contains(abs, ",") {
			return 0, fmt.Errorf("path %q contains a comma, which the repo store cannot represent", abs)
		}

		if !gitutil.IsRepository(abs) || registered[abs] {
			continue
		}

		registered[abs] = true
		records = append(records, Record{Path: abs, Name: filepath.Base(abs)})
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(r.Out, "No new repos found!")
		return 0, nil
	}

	if err := r.store.Append(records); err != nil {
		return 0, err
	}

	_, _ = fmt.Fprintf(r.Out, "Found %d new repo(s).\n", len(records))

	return len(records), nil
}

// Rename gives the repository registered under oldName the name newName
// and rewrites the whole store file from the updated mapping.
func (r *Registry) Rename(oldName, newName string) error {
	repos, err := r.Load()
	if err != nil {
		return err
	}

	path, ok := repos[oldName]
	if !ok {
		return fmt.Errorf("%q: %w", oldName, ErrRepoNotFound)
	}

	if strings.Contains(newName, ",") {
		return fmt.Errorf("name %q contains a comma, which the repo store cannot represent", newName)
	}

	delete(repos, oldName)
	repos[newName] = path

	return r.store.Rewrite(repos)
}

// Remove unregisters the given names and rewrites the store. A missing
// store file makes this a no-op; an unknown name is an error.
func (r *Registry) Remove(names ...string) error {
	if !r.store.Exists() {
		return nil
	}

	repos, err := r.Load()
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, ok := repos[name]; !ok {
			return fmt.Errorf("%q: %w", name, ErrRepoNotFound)
		}
		delete(repos, name)
	}

	return r.store.Rewrite(repos)
}

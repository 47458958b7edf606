// Package dispatch runs one external command across a set of repository
// working directories, concurrently when that is safe and serially
// otherwise.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inovacc/multigit/internal/gitutil"
	"github.com/inovacc/multigit/internal/registry"
)

// Target is one repository the command runs in.
type Target struct {
	Name string
	Path string
}

// Dispatcher executes a command once per target. Commands whose root verb
// is on the denylist never run concurrently because they may need
// interactive input (credential prompts contend for one terminal).
type Dispatcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	denylist map[string]struct{}
}

// New returns a dispatcher wired to the process stdio.
func New(denylist []string) *Dispatcher {
	d := &Dispatcher{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		denylist: make(map[string]struct{}, len(denylist)),
	}

	for _, verb := range denylist {
		d.denylist[verb] = struct{}{}
	}

	return d
}

// ResolveTargets restricts repos to the given names, preserving their
// order. With no names, every repository is a target, sorted by name.
func ResolveTargets(repos map[string]string, names []string) ([]Target, error) {
	if len(names) == 0 {
		all := make([]Target, 0, len(repos))
		for name, path := range repos {
			all = append(all, Target{Name: name, Path: path})
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		return all, nil
	}

	targets := make([]Target, 0, len(names))

	for _, name := range names {
		path, ok := repos[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, registry.ErrRepoNotFound)
		}
		targets = append(targets, Target{Name: name, Path: path})
	}

	return targets, nil
}

// Run executes argv once in every target directory.
//
// A single target, or a denylisted root verb, forces serial execution with
// inherited stdio so interactive prompts reach the user. Everything else
// fans out one subprocess per target with stdin disabled and output
// captured, joins at a barrier, then re-runs the failed targets serially
// so the user can resolve prompts or transient errors attended.
func (d *Dispatcher) Run(ctx context.Context, argv []string, targets []Target) error {
	if len(argv) == 0 || len(targets) == 0 {
		return nil
	}

	if len(targets) == 1 || d.denied(argv) {
		return d.runSerial(ctx, argv, targets)
	}

	failed, err := d.runConcurrent(ctx, argv, targets)
	if err != nil {
		return err
	}

	return d.runSerial(ctx, argv, failed)
}

// denied reports whether the command's root verb is on the denylist.
// argv[0] is the executable, argv[1] the verb.
func (d *Dispatcher) denied(argv []string) bool {
	if len(argv) < 2 {
		return false
	}

	_, ok := d.denylist[argv[1]]

	return ok
}

// runSerial runs the command in each target directory one at a time with
// the dispatcher's stdio inherited. A non-zero exit is not an error here:
// the child's own output already went to the user.
func (d *Dispatcher) runSerial(ctx context.Context, argv []string, targets []Target) error {
	for _, t := range targets {
		_, _ = fmt.Fprintln(d.Stdout, t.Path)

		c := &gitutil.Client{
			GitPath: argv[0],
			RepoDir: t.Path,
			Stdin:   d.Stdin,
			Stdout:  d.Stdout,
			Stderr:  d.Stderr,
		}
		cmd := c.CommandInteractive(ctx, argv[1:]...)

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return &SpawnError{Path: t.Path, Err: err}
			}
		}
	}

	return nil
}

// runConcurrent launches one subprocess per target and waits for all of
// them before returning the targets that exited non-zero. Each child gets
// no stdin and its own session, so nothing blocks on a prompt and a ^C to
// the parent does not tear down every child mid-flight. Each target's
// report (path header plus captured output) is printed as one unit.
func (d *Dispatcher) runConcurrent(ctx context.Context, argv []string, targets []Target) ([]Target, error) {
	var (
		mu        sync.Mutex
		failedSet = make(map[string]struct{})
	)

	var g errgroup.Group

	for _, t := range targets {
		g.Go(func() error {
			c := &gitutil.Client{GitPath: argv[0], RepoDir: t.Path}
			cmd := c.Command(ctx, argv[1:]...)
			cmd.SysProcAttr = detachedSysProcAttr()

			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			if err := cmd.Start(); err != nil {
				return &SpawnError{Path: t.Path, Err: err}
			}

			err := cmd.Wait()

			var exitErr *exec.ExitError
			if err != nil && !errors.As(err, &exitErr) {
				return &SpawnError{Path: t.Path, Err: err}
			}

			mu.Lock()
			defer mu.Unlock()

			_, _ = fmt.Fprintln(d.Stdout, t.Path)
			writeChunk(d.Stdout, stdout.Bytes())
			writeChunk(d.Stderr, stderr.Bytes())

			if err != nil {
				failedSet[t.Name] = struct{}{}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Retry in target order regardless of which child finished first.
	var failed []Target
	for _, t := range targets {
		if _, ok := failedSet[t.Name]; ok {
			failed = append(failed, t)
		}
	}

	return failed, nil
}

// writeChunk writes captured child output, newline-terminated, skipping
// empty captures entirely.
func writeChunk(w io.Writer, b []byte) {
	if len(b) == 0 {
		return
	}

	_, _ = w.Write(b)

	if b[len(b)-1] != '\n' {
		_, _ = io.WriteString(w, "\n")
	}
}

package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inovacc/multigit/internal/registry"
)

// writeScript drops an executable shell script standing in for git.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fakegit")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func makeTargets(t *testing.T, names ...string) []Target {
	t.Helper()

	root := t.TempDir()
	targets := make([]Target, 0, len(names))

	for _, name := range names {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		targets = append(targets, Target{Name: name, Path: dir})
	}

	return targets
}

func testDispatcher(denylist []string) (*Dispatcher, *bytes.Buffer) {
	d := New(denylist)
	out := new(bytes.Buffer)
	d.Stdout = out
	d.Stderr = out
	d.Stdin = strings.NewReader("")

	return d, out
}

// readLog returns the working directories the script ran in, in order.
func readLog(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	return strings.Fields(string(data))
}

func TestResolveTargetsAllSorted(t *testing.T) {
	repos := map[string]string{"c": "/r/c", "a": "/r/a", "b": "/r/b"}

	targets, err := ResolveTargets(repos, nil)
	require.NoError(t, err)
	require.Equal(t, []Target{
		{Name: "a", Path: "/r/a"},
		{Name: "b", Path: "/r/b"},
		{Name: "c", Path: "/r/c"},
	}, targets)
}

func TestResolveTargetsExplicitOrder(t *testing.T) {
	repos := map[string]string{"a": "/r/a", "b": "/r/b"}

	targets, err := ResolveTargets(repos, []string{"b", "a"})
	require.NoError(t, err)
	require.Equal(t, []Target{
		{Name: "b", Path: "/r/b"},
		{Name: "a", Path: "/r/a"},
	}, targets)
}

func TestResolveTargetsUnknownName(t *testing.T) {
	_, err := ResolveTargets(map[string]string{"a": "/r/a"}, []string{"ghost"})
	require.ErrorIs(t, err, registry.ErrRepoNotFound)
}

func TestDenied(t *testing.T) {
	d := New([]string{"pull", "log"})

	tests := []struct {
		name string
		argv []string
		want bool
	}{
		{name: "denylisted verb", argv: []string{"git", "pull"}, want: true},
		{name: "free verb", argv: []string{"git", "fetch"}, want: false},
		{name: "verb with args", argv: []string{"git", "log", "--oneline"}, want: true},
		{name: "bare executable", argv: []string{"git"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, d.denied(tt.argv))
		})
	}
}

func TestRunSingleTargetIsSerial(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")
	script := writeScript(t, `echo "$PWD" >> "$2"`)
	targets := makeTargets(t, "only")

	d, out := testDispatcher(nil)
	require.NoError(t, d.Run(context.Background(), []string{script, "run", log}, targets))

	require.Equal(t, []string{targets[0].Path}, readLog(t, log))
	require.Equal(t, 1, strings.Count(out.String(), targets[0].Path+"\n"))
}

func TestRunDenylistedVerbIsSerial(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")
	script := writeScript(t, `echo "$PWD" >> "$2"`)
	targets := makeTargets(t, "a", "b", "c")

	d, out := testDispatcher([]string{"pull"})
	require.NoError(t, d.Run(context.Background(), []string{script, "pull", log}, targets))

	// Serial execution runs one child at a time in target order.
	want := []string{targets[0].Path, targets[1].Path, targets[2].Path}
	require.Equal(t, want, readLog(t, log))

	for _, target := range targets {
		require.Equal(t, 1, strings.Count(out.String(), target.Path+"\n"))
	}
}

func TestRunConcurrentRunsEveryTargetOnce(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")
	script := writeScript(t, `echo "$PWD" >> "$2"`)
	targets := makeTargets(t, "a", "b", "c")

	d, out := testDispatcher(nil)
	require.NoError(t, d.Run(context.Background(), []string{script, "fetch", log}, targets))

	ran := readLog(t, log)
	require.Len(t, ran, 3)

	for _, target := range targets {
		require.Contains(t, ran, target.Path)
		require.Equal(t, 1, strings.Count(out.String(), target.Path+"\n"))
	}
}

func TestRunRetriesConcurrentFailuresSerially(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")
	targets := makeTargets(t, "a", "b", "c")
	failing := targets[1]

	script := writeScript(t,
		`echo "$PWD" >> "$2"
if [ "$PWD" = "$3" ]; then exit 1; fi
echo done`)

	d, out := testDispatcher(nil)
	argv := []string{script, "fetch", log, failing.Path}
	require.NoError(t, d.Run(context.Background(), argv, targets))

	// Total invocations: every target once concurrently, the failing one
	// once more in the serial retry.
	ran := readLog(t, log)
	require.Len(t, ran, 4)
	require.Equal(t, 2, countOf(ran, failing.Path))

	// The failing path is announced twice, the healthy ones once.
	require.Equal(t, 2, strings.Count(out.String(), failing.Path+"\n"))
	require.Equal(t, 1, strings.Count(out.String(), targets[0].Path+"\n"))
	require.Equal(t, 1, strings.Count(out.String(), targets[2].Path+"\n"))
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	script := writeScript(t, `exit 3`)
	targets := makeTargets(t, "only")

	d, _ := testDispatcher(nil)
	require.NoError(t, d.Run(context.Background(), []string{script, "push"}, targets))
}

func TestRunSpawnFailurePropagates(t *testing.T) {
	targets := makeTargets(t, "a", "b")

	d, _ := testDispatcher(nil)
	err := d.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing-exe"), "fetch"}, targets)

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
}

func TestRunCapturedOutputIsNewlineTerminated(t *testing.T) {
	script := writeScript(t, `printf nonewline`)
	targets := makeTargets(t, "a", "b")

	d, out := testDispatcher(nil)
	require.NoError(t, d.Run(context.Background(), []string{script, "fetch"}, targets))

	require.Equal(t, 2, strings.Count(out.String(), "nonewline\n"))
}

func countOf(items []string, want string) int {
	n := 0
	for _, item := range items {
		if item == want {
			n++
		}
	}

	return n
}

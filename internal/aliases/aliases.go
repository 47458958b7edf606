// Package aliases defines the delegated git subcommands: a bundled
// default table optionally shadowed by a user override file.
package aliases

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cmds.yml
var defaultCmds []byte

// Alias describes one delegated git subcommand.
type Alias struct {
	// Cmd is the git command line to delegate; empty means the alias
	// name itself.
	Cmd string `yaml:"cmd"`

	// Help is the one-line subcommand description.
	Help string `yaml:"help"`

	// AllowAll lets the subcommand run against every registered
	// repository when no names are given.
	AllowAll bool `yaml:"allow_all"`

	// DisableAsync keeps the command serial because it needs the
	// terminal (pagers, interactive tools, credential prompts).
	DisableAsync bool `yaml:"disable_async"`
}

// Argv returns the full command line for the alias registered as name.
func (a Alias) Argv(name string) []string {
	cmd := a.Cmd
	if cmd == "" {
		cmd = name
	}

	return append([]string{"git"}, strings.Fields(cmd)...)
}

// Verb returns the git root verb the alias delegates to.
func (a Alias) Verb(name string) string {
	argv := a.Argv(name)
	return argv[1]
}

// Load returns the delegated command table: the embedded defaults
// overlaid with the user file at userPath. A user entry fully replaces a
// same-named default entry; fields are not merged. A missing user file is
// fine; a malformed one is an error.
func Load(userPath string) (map[string]Alias, error) {
	table := make(map[string]Alias)
	if err := yaml.Unmarshal(defaultCmds, &table); err != nil {
		return nil, fmt.Errorf("failed to parse bundled command table: %w", err)
	}

	if userPath == "" {
		return table, nil
	}

	data, err := os.ReadFile(userPath)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userPath, err)
	}

	user := make(map[string]Alias)
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userPath, err)
	}

	for name, alias := range user {
		table[name] = alias
	}

	return table, nil
}

// Denylist returns the git root verbs excluded from concurrent
// execution, per the table's disable_async entries.
func Denylist(table map[string]Alias) []string {
	var verbs []string

	for name, alias := range table {
		if alias.DisableAsync {
			verbs = append(verbs, alias.Verb(name))
		}
	}

	return verbs
}

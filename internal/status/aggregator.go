package status

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Aggregator joins probe outputs into one aligned line per repository.
// Probes are swappable and run in slice order against every repository.
type Aggregator struct {
	Probes []Probe
}

// NewAggregator returns an aggregator with the default probe pipeline.
func NewAggregator(color bool) *Aggregator {
	return &Aggregator{Probes: DefaultProbes(color)}
}

// Describe returns one formatted line per repository, sorted by name.
// Names are left-padded to the longest name plus one so the probe columns
// line up. Each call rebuilds the lines from current repository state.
func (a *Aggregator) Describe(repos map[string]string) []string {
	if len(repos) == 0 {
		return nil
	}

	names := make([]string, 0, len(repos))
	width := 0

	// Width counts runes, not bytes, so multi-byte names keep the
	// probe columns aligned.
	for name := range repos {
		names = append(names, name)
		if n := utf8.RuneCountInString(name); n > width {
			width = n
		}
	}
	sort.Strings(names)
	width++

	lines := make([]string, 0, len(names))

	for _, name := range names {
		var tokens []string

		for _, p := range a.Probes {
			if tok := p.Run(repos[name]); tok != "" {
				tokens = append(tokens, tok)
			}
		}

		pad := strings.Repeat(" ", width-utf8.RuneCountInString(name))
		lines = append(lines, name+pad+strings.Join(tokens, " "))
	}

	return lines
}

// Names reports the configured probe names in pipeline order.
func (a *Aggregator) Names() []string {
	names := make([]string, 0, len(a.Probes))
	for _, p := range a.Probes {
		names = append(names, p.Name)
	}

	return names
}

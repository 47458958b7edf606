package gitutil

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

type branchSection struct {
	Remote string `ini:"remote"`
	Merge  string `ini:"merge"`
}

// Upstream returns the remote-tracking ref ("origin/main") configured for
// branch in the repository's .git/config, and whether one exists.
func Upstream(repoPath, branch string) (string, bool) {
	cfgPath := filepath.Join(repoPath, ".git", "config")
	if _, err := os.Stat(cfgPath); err != nil {
		return "", false
	}

	cfg, err := ini.Load(cfgPath)
	if err != nil {
		return "", false
	}

	sec, err := cfg.GetSection(`branch "` + branch + `"`)
	if err != nil {
		return "", false
	}

	var bs branchSection
	if err := sec.MapTo(&bs); err != nil {
		return "", false
	}

	if bs.Remote == "" || bs.Merge == "" {
		return "", false
	}

	return bs.Remote + "/" + strings.TrimPrefix(bs.Merge, "refs/heads/"), true
}

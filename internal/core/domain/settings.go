package domain

import "strings"

// State backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Settings are the runtime options of a kiln invocation.
type Settings struct {
	// Jobs bounds the number of concurrently running compile jobs per session.
	Jobs int `koanf:"jobs"`
	// Platform is a comma-separated list of platform tags; empty means the project's platforms.
	Platform  string `koanf:"platform"`
	Backend   string `koanf:"backend"`
	Verbosity string `koanf:"verbosity"`
	// Force ignores stored build state and recompiles every resource.
	Force bool `koanf:"force"`
}

// Platforms splits Platform into tags, falling back to defaults.
func (s *Settings) Platforms(defaults []string) []string {
	var out []string
	for p := range strings.SplitSeq(s.Platform, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}

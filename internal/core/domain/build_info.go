package domain

import "time"

// BuildInfo is the persisted record of a compile, used to decide whether a later
// session can reuse the output. A Rejected record belongs to a compile whose output
// was discarded; it keeps the edges but never satisfies the cache.
type BuildInfo struct {
	Resource        ResourceID   `json:"resource"`
	Platform        string       `json:"platform"`
	CompilerVersion uint32       `json:"compiler_version"`
	Fingerprint     string       `json:"fingerprint"`
	Dependencies    []string     `json:"dependencies,omitzero"`
	Requirements    []ResourceID `json:"requirements,omitzero"`
	Timestamp       time.Time    `json:"timestamp,omitzero"`
	Rejected        bool         `json:"rejected,omitzero"`
}

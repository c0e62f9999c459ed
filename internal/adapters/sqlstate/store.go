// Package sqlstate implements the build state store on SQLite.
package sqlstate

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"slices"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed schema.sql
var schemaSQL string

var _ ports.BuildStateStore = (*Store)(nil)

// Store implements ports.BuildStateStore on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open database"), "path", path)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to connect to database"), "path", path)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, zerr.With(zerr.Wrap(err, "failed to apply pragma"), "pragma", pragma)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to apply schema")
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get retrieves the build info of a resource. Returns nil, nil if not found.
func (s *Store) Get(platform string, id domain.ResourceID) (*domain.BuildInfo, error) {
	row := s.db.QueryRow(`
		SELECT platform, resource, compiler_version, fingerprint, dependencies, requirements, built_at, rejected
		FROM build_info WHERE platform = ? AND resource = ?`,
		platform, id.String(),
	)
	info, err := scanInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to query build info"), "resource", id.String())
	}
	return info, nil
}

// Put stores the build info, replacing any previous record.
func (s *Store) Put(info domain.BuildInfo) error {
	deps, err := json.Marshal(nonNil(info.Dependencies))
	if err != nil {
		return zerr.Wrap(err, "failed to marshal dependencies")
	}
	reqs, err := json.Marshal(nonNil(info.Requirements))
	if err != nil {
		return zerr.Wrap(err, "failed to marshal requirements")
	}

	var builtAt int64
	if !info.Timestamp.IsZero() {
		builtAt = info.Timestamp.UnixNano()
	}

	_, err = s.db.Exec(`
		INSERT INTO build_info (platform, resource, compiler_version, fingerprint, dependencies, requirements, built_at, rejected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (platform, resource) DO UPDATE SET
			compiler_version = excluded.compiler_version,
			fingerprint      = excluded.fingerprint,
			dependencies     = excluded.dependencies,
			requirements     = excluded.requirements,
			built_at         = excluded.built_at,
			rejected         = excluded.rejected`,
		info.Platform, info.Resource.String(), info.CompilerVersion, info.Fingerprint,
		string(deps), string(reqs), builtAt, info.Rejected,
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store build info"), "resource", info.Resource.String())
	}
	return nil
}

// Delete removes the build info of a resource.
func (s *Store) Delete(platform string, id domain.ResourceID) error {
	if _, err := s.db.Exec(`DELETE FROM build_info WHERE platform = ? AND resource = ?`, platform, id.String()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to delete build info"), "resource", id.String())
	}
	return nil
}

// List returns every record stored for a platform, sorted by resource.
func (s *Store) List(platform string) ([]domain.BuildInfo, error) {
	rows, err := s.db.Query(`
		SELECT platform, resource, compiler_version, fingerprint, dependencies, requirements, built_at, rejected
		FROM build_info WHERE platform = ?`,
		platform,
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list build info")
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []domain.BuildInfo
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to scan build info")
		}
		out = append(out, *info)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to iterate build info")
	}

	slices.SortFunc(out, func(a, b domain.BuildInfo) int { return a.Resource.Compare(b.Resource) })
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(row scanner) (*domain.BuildInfo, error) {
	var (
		info     domain.BuildInfo
		resource string
		deps     string
		reqs     string
		builtAt  int64
	)
	if err := row.Scan(&info.Platform, &resource, &info.CompilerVersion, &info.Fingerprint, &deps, &reqs, &builtAt, &info.Rejected); err != nil {
		return nil, err
	}

	id, err := domain.ParseResourceID(resource)
	if err != nil {
		return nil, err
	}
	info.Resource = id

	if err := json.Unmarshal([]byte(deps), &info.Dependencies); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal dependencies")
	}
	if err := json.Unmarshal([]byte(reqs), &info.Requirements); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal requirements")
	}
	if len(info.Dependencies) == 0 {
		info.Dependencies = nil
	}
	if len(info.Requirements) == 0 {
		info.Requirements = nil
	}
	if builtAt != 0 {
		info.Timestamp = time.Unix(0, builtAt).UTC()
	}
	return &info, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Package backup exports and restores a versioned snapshot of all records.
//
// A snapshot carries a checksum over the canonical form of its records, so
// hand-edited or truncated files are rejected before anything is written.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/store"
)

const (
	// Version is the snapshot format version written by Export.
	Version = "1.0"

	// AppName identifies the producer in snapshot metadata.
	AppName = "Forge Discipline OS"
)

var (
	// ErrChecksumMismatch is returned when a snapshot's records do not
	// hash to its recorded checksum.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrUnsupportedVersion is returned for snapshots of another format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrInvalidRecord is returned when a snapshot record fails validation.
	ErrInvalidRecord = errors.New("invalid snapshot record")
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown backup format %q (valid: json, yaml)", s)
}

// Meta describes a snapshot.
type Meta struct {
	Version   string    `json:"version" yaml:"version"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	App       string    `json:"app" yaml:"app"`
	Checksum  string    `json:"checksum" yaml:"checksum"`
}

// Snapshot is the full exported document.
type Snapshot struct {
	Meta     Meta              `json:"meta" yaml:"meta"`
	Tasks    []model.Task      `json:"tasks" yaml:"tasks"`
	Stats    []model.DailyStat `json:"stats" yaml:"stats"`
	Projects []model.Project   `json:"projects" yaml:"projects"`
}

// Source lists every record for export. Implemented by *store.Store.
type Source interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListStats(ctx context.Context) ([]model.DailyStat, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
}

// Sink restores records. Implemented by *store.Store.
type Sink interface {
	ImportSnapshot(ctx context.Context, tasks []model.Task, stats []model.DailyStat, projects []model.Project) (store.ImportResult, error)
}

// Build reads all records from src into a checksummed snapshot stamped at.
func Build(ctx context.Context, src Source, at time.Time) (Snapshot, error) {
	tasks, err := src.ListTasks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build snapshot: %w", err)
	}
	stats, err := src.ListStats(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build snapshot: %w", err)
	}
	projects, err := src.ListProjects(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build snapshot: %w", err)
	}

	snap := Snapshot{
		Meta:     Meta{Version: Version, Timestamp: at.UTC(), App: AppName},
		Tasks:    nonNil(tasks),
		Stats:    nonNil(stats),
		Projects: nonNil(projects),
	}
	snap.Meta.Checksum, err = model.SnapshotChecksum(snap.Tasks, snap.Stats, snap.Projects)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, nil
}

// Export writes a snapshot of src to w in the given format.
func Export(ctx context.Context, src Source, w io.Writer, format Format, at time.Time) (Meta, error) {
	snap, err := Build(ctx, src, at)
	if err != nil {
		return Meta{}, err
	}
	if err := Encode(w, snap, format); err != nil {
		return Meta{}, err
	}
	return snap.Meta, nil
}

// Encode writes snap to w as indented JSON or YAML.
func Encode(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	default:
		return fmt.Errorf("encode snapshot: unknown format %q", format)
	}
	return nil
}

// Decode reads a snapshot from r. JSON is detected by a leading '{';
// anything else is parsed as YAML. Unknown fields are rejected.
func Decode(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("parse snapshot JSON: %w", err)
		}
		return snap, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot YAML: %w", err)
	}
	return snap, nil
}

// Verify checks the version, every record, and the checksum.
func Verify(snap Snapshot) error {
	if snap.Meta.Version != Version {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnsupportedVersion, snap.Meta.Version, Version)
	}
	if err := validateRecords(snap); err != nil {
		return err
	}
	sum, err := model.SnapshotChecksum(snap.Tasks, snap.Stats, snap.Projects)
	if err != nil {
		return fmt.Errorf("verify snapshot: %w", err)
	}
	if sum != snap.Meta.Checksum {
		return fmt.Errorf("%w: recorded %s, computed %s", ErrChecksumMismatch, snap.Meta.Checksum, sum)
	}
	return nil
}

// Import decodes, verifies and restores a snapshot from r into dst.
// Records whose id (or stat date) already exists are skipped.
func Import(ctx context.Context, dst Sink, r io.Reader) (store.ImportResult, error) {
	snap, err := Decode(r)
	if err != nil {
		return store.ImportResult{}, err
	}
	if err := Verify(snap); err != nil {
		return store.ImportResult{}, err
	}
	res, err := dst.ImportSnapshot(ctx, snap.Tasks, snap.Stats, snap.Projects)
	if err != nil {
		return store.ImportResult{}, fmt.Errorf("import snapshot: %w", err)
	}
	return res, nil
}

func validateRecords(snap Snapshot) error {
	for i, t := range snap.Tasks {
		switch {
		case t.ID == "":
			return fmt.Errorf("%w: task %d has no id", ErrInvalidRecord, i)
		case t.Title == "":
			return fmt.Errorf("%w: task %s: %v", ErrInvalidRecord, t.ID, model.ErrEmptyTitle)
		case !t.EnergyLevel.Valid():
			return fmt.Errorf("%w: task %s: energy %q", ErrInvalidRecord, t.ID, t.EnergyLevel)
		case !t.Status.Valid():
			return fmt.Errorf("%w: task %s: status %q", ErrInvalidRecord, t.ID, t.Status)
		case t.SnoozeCount < 0:
			return fmt.Errorf("%w: task %s: negative snooze count", ErrInvalidRecord, t.ID)
		}
	}
	for i, s := range snap.Stats {
		if s.ID == "" {
			return fmt.Errorf("%w: stat %d has no id", ErrInvalidRecord, i)
		}
		if _, err := model.ParseDateKey(s.Date, nil); err != nil {
			return fmt.Errorf("%w: stat %s: %v", ErrInvalidRecord, s.ID, err)
		}
		if s.Score < 0 || s.Score > 100 || s.FocusMinutes < 0 {
			return fmt.Errorf("%w: stat %s: score %d, focus %d", ErrInvalidRecord, s.ID, s.Score, s.FocusMinutes)
		}
	}
	for i, p := range snap.Projects {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("%w: project %d needs id and name", ErrInvalidRecord, i)
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

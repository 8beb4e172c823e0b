package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for checksums.
// Version suffix enables future algorithm migration.
const (
	DomainSnapshot = "forge/snapshot/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SnapshotChecksum hashes the canonical form of tasks, stats and projects.
// Timestamps are hashed as unix milliseconds, the precision the store keeps.
func SnapshotChecksum(tasks []Task, stats []DailyStat, projects []Project) (string, error) {
	doc := map[string]any{
		"tasks":    tasksToCanonical(tasks),
		"stats":    statsToCanonical(stats),
		"projects": projectsToCanonical(projects),
	}
	data, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("snapshot checksum: %w", err)
	}
	return hashWithDomain(DomainSnapshot, data), nil
}

func tasksToCanonical(tasks []Task) []any {
	out := make([]any, len(tasks))
	for i, t := range tasks {
		out[i] = map[string]any{
			"id":                t.ID,
			"title":             t.Title,
			"is_non_negotiable": t.IsNonNegotiable,
			"energy_level":      string(t.EnergyLevel),
			"status":            string(t.Status),
			"snooze_count":      t.SnoozeCount,
			"did_commit":        t.DidCommit,
			"project_id":        t.ProjectID,
			"created_at":        t.CreatedAt.UnixMilli(),
			"updated_at":        t.UpdatedAt.UnixMilli(),
		}
	}
	return out
}

func statsToCanonical(stats []DailyStat) []any {
	out := make([]any, len(stats))
	for i, s := range stats {
		out[i] = map[string]any{
			"id":            s.ID,
			"date":          s.Date,
			"score":         s.Score,
			"focus_minutes": s.FocusMinutes,
			"created_at":    s.CreatedAt.UnixMilli(),
			"updated_at":    s.UpdatedAt.UnixMilli(),
		}
	}
	return out
}

func projectsToCanonical(projects []Project) []any {
	out := make([]any, len(projects))
	for i, p := range projects {
		out[i] = map[string]any{
			"id":         p.ID,
			"name":       p.Name,
			"color":      p.Color,
			"created_at": p.CreatedAt.UnixMilli(),
			"updated_at": p.UpdatedAt.UnixMilli(),
		}
	}
	return out
}

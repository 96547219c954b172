package cache

import (
	"strings"
	"time"
)

// Keyer builds cache keys.
type Keyer interface {
	BoundsKey(instanceHash string, opts BoundsKeyOpts) string
	ScheduleKey(instanceHash string, opts ScheduleKeyOpts) string
	ArtifactKey(scheduleHash string, opts ArtifactKeyOpts) string
}

// BoundsKeyOpts are the options that change computed bounds.
type BoundsKeyOpts struct {
	Mode string `json:"mode"`
}

// ScheduleKeyOpts are the options that change a solved schedule.
type ScheduleKeyOpts struct {
	Mode      string        `json:"mode"`
	VarOrder  string        `json:"var_order"`
	Balance   bool          `json:"balance"`
	NodeLimit int           `json:"node_limit"`
	Timeout   time.Duration `json:"timeout"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Bounds bool   `json:"bounds"`
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BoundsKey keys precedence bounds of an instance.
func (DefaultKeyer) BoundsKey(instanceHash string, opts BoundsKeyOpts) string {
	return hashKey("bounds", instanceHash, opts)
}

// ScheduleKey keys a solved schedule.
func (DefaultKeyer) ScheduleKey(instanceHash string, opts ScheduleKeyOpts) string {
	return hashKey("schedule", instanceHash, opts)
}

// ArtifactKey keys one rendered format of a schedule.
func (DefaultKeyer) ArtifactKey(scheduleHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scheduleHash, opts)
}

// keyType is the kind prefix of a key ("bounds", "schedule", ...), which is
// what hooks report. Scoped prefixes are skipped.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}

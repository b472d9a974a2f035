// Package xmindstruct provides XMind member extraction functionality.
package xmindstruct

import "go.uber.org/zap"

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts per-sheet member counts only (no group rows).
	ModeLight Mode = "light"
	// ModeStandard extracts member counts and one row per green-filled group.
	ModeStandard Mode = "standard"
	// ModeVerbose is ModeStandard with the owning sheet title on every row.
	ModeVerbose Mode = "verbose"
)

// ParseMode converts a mode name, returning false for unknown names.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	case "":
		return ModeStandard, true
	}
	return "", false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// Logger receives debug and warning events. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldCollectGroups returns whether group rows are built.
func (o Options) ShouldCollectGroups() bool {
	return o.Mode != ModeLight
}

// ShouldIncludeSheet returns whether rows carry their sheet title.
func (o Options) ShouldIncludeSheet() bool {
	return o.Mode == ModeVerbose
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

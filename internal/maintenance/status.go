package maintenance

import (
	"fmt"
	"time"

	"github.com/conn-castle/sitemaint/internal/messages"
)

// State is the effective maintenance state.
type State int

const (
	// StateOff means no marker, or a timed marker whose expiry has passed.
	StateOff State = iota
	// StateOnIndefinite means a marker without a known expiry.
	StateOnIndefinite
	// StateOnTimed means a marker that expires at StatusReport.ExpiresAt.
	StateOnTimed
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateOnIndefinite:
		return "on-indefinite"
	case StateOnTimed:
		return "on-timed"
	default:
		return "off"
	}
}

// StatusReport is the result of Status.
type StatusReport struct {
	State State
	// ExpiresAt is the effective expiry; set only for StateOnTimed.
	ExpiresAt time.Time
	// Remaining is the time left until ExpiresAt, in whole seconds.
	Remaining time.Duration
}

// On reports whether maintenance mode is active.
func (r StatusReport) On() bool {
	return r.State != StateOff
}

// Message renders the status line. emphasize, when non-nil, decorates the on/off word.
func (r StatusReport) Message(emphasize func(a ...any) string) string {
	word := func(s string) string {
		if emphasize == nil {
			return s
		}
		return emphasize(s)
	}
	switch r.State {
	case StateOnTimed:
		return fmt.Sprintf(messages.MaintenanceStatusUntilFmt,
			word(messages.MaintenanceStateOn),
			r.ExpiresAt.Format(time.RFC1123Z),
			FormatRemaining(r.Remaining))
	case StateOnIndefinite:
		return fmt.Sprintf(messages.MaintenanceStatusIndefiniteFmt, word(messages.MaintenanceStateOn))
	default:
		return fmt.Sprintf(messages.MaintenanceStatusOffFmt, word(messages.MaintenanceStateOff))
	}
}

// String renders the status line without decoration.
func (r StatusReport) String() string {
	return r.Message(nil)
}

// FormatRemaining renders d as hours, minutes and seconds, flooring to whole seconds.
// Hours are not wrapped at a day.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf(messages.MaintenanceRemainingFmt, hours, minutes, seconds)
}

// Package maintenance implements the maintenance mode state machine on top of
// the marker file and the template override block.
//
// The marker file is authoritative for on/off. The two files are updated in
// sequence, not as a pair, so readers tolerate a template block without a
// marker and vice versa.
package maintenance

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/conn-castle/sitemaint/internal/config"
	"github.com/conn-castle/sitemaint/internal/logging"
	"github.com/conn-castle/sitemaint/internal/marker"
	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/override"
)

// GraceWindow is subtracted from the expiry when persisting it and added back when reading.
// The site runtime keeps maintenance on while the persisted instant is younger than this.
const GraceWindow = 10 * time.Minute

// MaxDurationMinutes is the longest duration whose expiry fits in a time.Duration.
const MaxDurationMinutes int64 = math.MaxInt64 / int64(time.Minute)

// Controller runs activate, deactivate and status for one site.
type Controller struct {
	paths    config.Paths
	markers  *marker.Store
	injector *override.Injector
	now      func() time.Time
	log      logrus.FieldLogger
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithMarkerSystem sets the filesystem used for the marker file.
func WithMarkerSystem(sys marker.System) Option {
	return func(c *Controller) { c.markers = marker.NewStore(sys, c.paths.MarkerPath) }
}

// WithOverrideSystem sets the filesystem used for the template file.
func WithOverrideSystem(sys override.System) Option {
	return func(c *Controller) { c.injector = override.NewInjector(sys) }
}

// NewController returns a controller for the site described by paths.
func NewController(paths config.Paths, opts ...Option) *Controller {
	c := &Controller{
		paths:    paths,
		markers:  marker.NewStore(marker.RealSystem{}, paths.MarkerPath),
		injector: override.NewInjector(override.RealSystem{}),
		now:      time.Now,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ActivateRequest holds the arguments of Activate.
type ActivateRequest struct {
	// Duration in minutes; nil keeps maintenance on until deactivation.
	Duration *int
	// Template is the page to display instead of the default template; empty keeps the default.
	Template string
}

// ActivationResult is the outcome of a successful Activate.
type ActivationResult struct {
	Message string
	// Template is set when the template file was edited.
	Template *override.Change
}

// DeactivationResult is the outcome of a successful Deactivate.
type DeactivationResult struct {
	Message  string
	Template override.Change
}

// Activate turns maintenance mode on, overwriting any existing marker.
//
// A custom template other than the default slot is injected into the default
// slot first. The injection does not strip an earlier block, so activating
// again with a different template stacks blocks; deactivate removes one
// block per call.
func (c *Controller) Activate(req ActivateRequest) (ActivationResult, error) {
	if req.Duration != nil && (*req.Duration <= 0 || int64(*req.Duration) > MaxDurationMinutes) {
		return ActivationResult{}, fmt.Errorf(messages.MaintenanceInvalidDurationFmt, ErrInvalidDuration, MaxDurationMinutes, *req.Duration)
	}

	var result ActivationResult
	if strings.TrimSpace(req.Template) != "" {
		change, err := c.injectTemplate(req.Template)
		if err != nil {
			return ActivationResult{}, err
		}
		result.Template = change
	}

	var persisted *time.Time
	if req.Duration != nil {
		at := c.now().Add(time.Duration(*req.Duration)*time.Minute - GraceWindow)
		persisted = &at
	}
	replaced, err := c.markers.Exists()
	if err != nil {
		c.log.WithError(err).Warn(messages.MaintenanceMarkerStatWarn)
	}
	if err := c.markers.Write(persisted); err != nil {
		return result, fmt.Errorf(messages.MaintenanceActivationFailedFmt, ErrActivationFailed, err)
	}
	c.log.WithFields(logrus.Fields{
		"marker":   c.markers.Path(),
		"duration": durationField(req.Duration),
		"replaced": replaced,
	}).Debug("marker written")

	result.Message = activatedMessage(req.Duration)
	return result, nil
}

func (c *Controller) injectTemplate(template string) (*override.Change, error) {
	resolved, err := override.ResolvePath(c.paths.ContentRoot, template)
	if err != nil {
		return nil, fmt.Errorf(messages.MaintenanceTemplateResolveFailedFmt, template, err)
	}
	if resolved == filepath.Clean(c.paths.TemplatePath) {
		c.log.WithField("template", resolved).Debug("template is the default slot; leaving it untouched")
		return nil, nil
	}
	change, err := c.injector.Insert(c.paths.TemplatePath, resolved)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"target":   c.paths.TemplatePath,
		"template": resolved,
	}).Debug("template override inserted")
	return &change, nil
}

// Deactivate turns maintenance mode off and strips the template override.
// Failing to delete the marker is logged and otherwise ignored so the template is still cleaned.
func (c *Controller) Deactivate() (DeactivationResult, error) {
	on, err := c.IsOn()
	if err != nil {
		return DeactivationResult{}, err
	}
	if !on {
		return DeactivationResult{}, ErrNotActive
	}

	if err := c.markers.Delete(); err != nil {
		c.log.WithError(err).Warnf(messages.MaintenanceDeleteMarkerWarnFmt, c.markers.Path())
	}

	change, err := c.injector.Remove(c.paths.TemplatePath)
	if err != nil {
		return DeactivationResult{}, fmt.Errorf(messages.MaintenanceCleanTemplateFailFmt, c.paths.TemplatePath, err)
	}
	if change.Changed() {
		c.log.WithFields(logrus.Fields{
			"target":  c.paths.TemplatePath,
			"deleted": change.Deleted,
		}).Debug("template override removed")
	}
	return DeactivationResult{Message: messages.MaintenanceDeactivated, Template: change}, nil
}

// IsOn reports the effective state. A marker without a readable timestamp counts as on.
func (c *Controller) IsOn() (bool, error) {
	report, err := c.Status()
	if err != nil {
		return false, err
	}
	return report.On(), nil
}

// Status reads the effective state without changing anything.
func (c *Controller) Status() (StatusReport, error) {
	parsed, err := c.markers.Read()
	if err != nil {
		return StatusReport{}, fmt.Errorf(messages.MaintenanceStatusReadFailedFmt, err)
	}
	return evaluate(parsed, c.now()), nil
}

// evaluate derives the effective state of a marker at now.
func evaluate(parsed *marker.Parsed, now time.Time) StatusReport {
	if parsed == nil {
		return StatusReport{State: StateOff}
	}
	if !parsed.HasTimestamp {
		return StatusReport{State: StateOnIndefinite}
	}
	expiresAt := parsed.Timestamp.Add(GraceWindow).In(now.Location())
	if !expiresAt.After(now) {
		return StatusReport{State: StateOff}
	}
	return StatusReport{
		State:     StateOnTimed,
		ExpiresAt: expiresAt,
		Remaining: expiresAt.Sub(now).Truncate(time.Second),
	}
}

func activatedMessage(duration *int) string {
	if duration == nil {
		return messages.MaintenanceActivated
	}
	unit := messages.MaintenanceMinutes
	if *duration == 1 {
		unit = messages.MaintenanceMinute
	}
	return fmt.Sprintf(messages.MaintenanceActivatedForFmt, *duration, unit)
}

func durationField(duration *int) any {
	if duration == nil {
		return "indefinite"
	}
	return *duration
}

package messages

// Maintenance messages for the activate, deactivate and status operations.
const (
	// MaintenanceActivated is printed after a successful activation without a duration.
	MaintenanceActivated           = "Maintenance mode is now activated."
	MaintenanceActivatedForFmt     = "Maintenance mode is now activated for %d %s."
	MaintenanceDeactivated         = "Maintenance mode is now deactivated."
	MaintenanceStatusOffFmt        = "Maintenance mode is currently %s."
	MaintenanceStatusIndefiniteFmt = "Maintenance mode is currently %s indefinitely."
	MaintenanceStatusUntilFmt      = "Maintenance mode is currently %s until %s (%s to go)."
	MaintenanceRemainingFmt        = "%d hours, %d minutes and %d seconds"
	MaintenanceMinute              = "minute"
	MaintenanceMinutes             = "minutes"
	MaintenanceStateOn             = "on"
	MaintenanceStateOff            = "off"

	MaintenanceErrTemplateNotFound = "template file does not exist"
	MaintenanceErrActivationFailed = "could not activate maintenance mode"
	MaintenanceErrNotActive        = "we did nothing because maintenance mode was not activated"
	MaintenanceErrInvalidDuration  = "duration must be a positive number of minutes"
	MaintenanceErrUnknownVerb      = "unknown maintenance command"

	MaintenanceTemplateNotFoundFmt      = "%w: %s"
	MaintenanceTemplateResolveFailedFmt = "failed to resolve template path %s: %w"
	MaintenanceActivationFailedFmt      = "%w: %w"
	MaintenanceInvalidDurationFmt       = "%w (at most %d, got %d)"
	MaintenanceStatusReadFailedFmt      = "failed to read maintenance state: %w"
	MaintenanceDeleteMarkerWarnFmt      = "failed to delete marker file %s"
	MaintenanceMarkerStatWarn           = "failed to check for an existing marker file"
	MaintenanceCleanTemplateFailFmt     = "failed to clean maintenance template %s: %w"
	MaintenanceDispatchUnknownVerbFmt   = "%w %q"

	MarkerReadFailedFmt   = "failed to read marker file %s: %w"
	MarkerWriteFailedFmt  = "failed to write marker file %s: %w"
	MarkerDeleteFailedFmt = "failed to delete marker file %s: %w"
	MarkerStatFailedFmt   = "failed to stat marker file %s: %w"

	OverrideStatTemplateFailedFmt = "failed to stat template file %s: %w"
	OverrideReadFailedFmt         = "failed to read maintenance template %s: %w"
	OverrideWriteFailedFmt        = "failed to write maintenance template %s: %w"
	OverrideDeleteFailedFmt       = "failed to delete empty maintenance template %s: %w"
	OverrideTemplateIsDirFmt      = "%w: template path %s is a directory"
)

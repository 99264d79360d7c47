package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt       = "failed to read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigValidationFailed    = "config validation failed"
	ConfigValidationGuidance  = "(see the [log] and path keys documented in .sitemaint.toml)"
	ConfigExpandPathFmt       = "%s: cannot expand %s %q: %w"

	ConfigPathEmptyFmt         = "%s: %s must not be empty"
	ConfigFileNameHasDirFmt    = "%s: %s must be a file name, not a path (got %q)"
	ConfigLogLevelInvalidFmt   = "%s: log.level %q is invalid (allowed: debug, info, warn, error)"
	ConfigLogLimitNegativeFmt  = "%s: %s must not be negative"
	ConfigSiteRootRequired     = "site root path is required"
	ConfigSiteRootResolveFmt   = "failed to resolve site root %s: %w"
	ConfigSiteRootExpandFmt    = "failed to expand site root %q: %w"
	ConfigLogFileOpenFailedFmt = "failed to prepare log directory for %s: %w"
)

package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "sitemaint"
	// RootShort is the short description for the root command.
	RootShort         = "Site maintenance mode CLI"
	RootLong          = "Toggle and inspect maintenance mode for a WordPress-style site."
	RootMissingSite   = "no site root found (looked for .sitemaint.toml or wp-load.php); pass --root or set SITEMAINT_ROOT"
	RootPathNotDirFmt = "site root %s is not a directory"
	RootStatFailedFmt = "failed to stat %s: %w"

	RootFlagRoot    = "Site root directory (defaults to $SITEMAINT_ROOT, then the nearest parent holding .sitemaint.toml or wp-load.php)"
	RootFlagConfig  = "Config file path (defaults to <root>/.sitemaint.toml)"
	RootFlagVerbose = "Enable debug logging on stderr"
	RootFlagColor   = "Colorize output: auto, always, or never"

	RootColorModeInvalidFmt = "invalid --color value %q (allowed: auto, always, never)"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// MaintenanceUse is the maintenance command usage line.
	MaintenanceUse   = "maintenance <on|off|info>"
	MaintenanceShort = "Handle maintenance mode."
	MaintenanceLong  = "Whether to activate (on), deactivate (off) or check (info) maintenance mode."

	MaintenanceFlagDuration = "When activating, the maintenance duration in minutes.\nIf not specified, maintenance stays active until deactivation."
	MaintenanceFlagTemplate = "When activating, the maintenance template to display.\nRelative paths are evaluated in the content directory."
	MaintenanceFlagDiff     = "Print a unified diff of the maintenance template file changes"

	MaintenanceUnknownVerbFmt = "%w %q\n\n%s"
	MaintenanceNoTemplateDiff = "(maintenance template file unchanged)"
)

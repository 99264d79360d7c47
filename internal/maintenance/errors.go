package maintenance

import (
	"errors"

	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/override"
)

// Error kinds returned by the controller. Match them with errors.Is.
var (
	// ErrTemplateNotFound means the requested template file does not exist; nothing was changed.
	ErrTemplateNotFound = override.ErrTemplateNotFound
	// ErrActivationFailed means the marker file could not be written.
	ErrActivationFailed = errors.New(messages.MaintenanceErrActivationFailed)
	// ErrNotActive means deactivate was called while maintenance mode was off.
	ErrNotActive = errors.New(messages.MaintenanceErrNotActive)
	// ErrInvalidDuration means a duration was given but was not a positive number of minutes.
	ErrInvalidDuration = errors.New(messages.MaintenanceErrInvalidDuration)
	// ErrUnknownVerb means Dispatch received a verb other than on, off or info.
	ErrUnknownVerb = errors.New(messages.MaintenanceErrUnknownVerb)
)

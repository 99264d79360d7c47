package maintenance

import (
	"fmt"

	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/override"
)

// Verb names one of the three maintenance operations.
type Verb string

const (
	// VerbOn activates maintenance mode.
	VerbOn Verb = "on"
	// VerbOff deactivates maintenance mode.
	VerbOff Verb = "off"
	// VerbInfo reports maintenance mode status.
	VerbInfo Verb = "info"
)

// Verbs lists the accepted verbs in display order.
var Verbs = []Verb{VerbOn, VerbOff, VerbInfo}

// Request is one maintenance invocation. Duration and Template only apply to VerbOn.
type Request struct {
	Verb     Verb
	Duration *int
	Template string
}

// Response is the outcome of a dispatched request.
type Response struct {
	Message string
	// Status is set for VerbInfo.
	Status *StatusReport
	// Template is set when the template file was edited.
	Template *override.Change
}

// Handler serves maintenance requests.
type Handler func(Request) (Response, error)

// Dispatch routes req to Activate, Deactivate or Status.
func (c *Controller) Dispatch(req Request) (Response, error) {
	switch req.Verb {
	case VerbOn:
		result, err := c.Activate(ActivateRequest{Duration: req.Duration, Template: req.Template})
		if err != nil {
			return Response{}, err
		}
		return Response{Message: result.Message, Template: result.Template}, nil
	case VerbOff:
		result, err := c.Deactivate()
		if err != nil {
			return Response{}, err
		}
		change := result.Template
		return Response{Message: result.Message, Template: &change}, nil
	case VerbInfo:
		report, err := c.Status()
		if err != nil {
			return Response{}, err
		}
		return Response{Message: report.String(), Status: &report}, nil
	default:
		return Response{}, fmt.Errorf(messages.MaintenanceDispatchUnknownVerbFmt, ErrUnknownVerb, req.Verb)
	}
}

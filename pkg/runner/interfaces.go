//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import "github.com/isabella232/teacup/pkg/events"

type (
	// EventHandler consumes the ordered event stream produced by a run.
	// Calls arrive from a single goroutine, in event order.
	EventHandler interface {
		HandleEvent(event events.Event)
	}
)

// Package widgets holds the interaction controllers behind the article UI:
// the bookmark toggle and the comment thread. Both read the session store to
// refuse anonymous callers, call the backend through the API ports, and
// mutate their local view state only after the server acknowledges.
package widgets

import "github.com/rs/zerolog"

// Notifier receives the transient user-facing notices the controllers emit
// (the toast equivalent). Implementations must be safe for concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier routes notices to a structured logger. It is the default sink
// at the gateway, where the visitor-facing notice travels in the HTTP
// response instead.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Success(msg string) { n.Log.Info().Msg(msg) }
func (n LogNotifier) Error(msg string)   { n.Log.Warn().Msg(msg) }

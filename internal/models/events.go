package models

// LogEvent is the websocket payload broadcast for every progress log
// line.
type LogEvent struct {
	Line string `json:"line"`
}

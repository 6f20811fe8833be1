package domain

// EventKind is the type of inbound transport event
type EventKind string

const (
	EventStart  EventKind = "start"
	EventText   EventKind = "text"
	EventButton EventKind = "button"
)

// Event is a single inbound interaction for one chat
type Event struct {
	Kind   EventKind
	ChatID int64
	Text   string
	Data   string
}

// Option is a labeled button; Value is what comes back on press
type Option struct {
	Label string
	Value string
}

// Reply is an outbound message, optionally carrying buttons or an image
type Reply struct {
	Text    string
	Options []Option
	Image   string
}

package manager

// Event represents a slot lifecycle event.
// Minimal and stable: name + model and optional fields via key/values.
type Event struct {
	Name      string
	Model     string
	AttemptID string
	Fields    map[string]any
}

// Event names published by the manager.
const (
	EventLoadStart  = "load_start"
	EventLoadReady  = "load_ready"
	EventLoadFailed = "load_failed"
	EventLoadBusy   = "load_busy"
	EventSwitch     = "switch"
)

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

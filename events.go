package nature

// EventType identifies a kind of world event.
type EventType uint8

const (
	EventBlocked    EventType = iota // a move was reverted by a collision
	EventSlid                        // a diagonal move was reduced to one axis
	EventTransition                  // an entity changed visual state through a built-in hook
	EventTerminate                   // a hook terminated the update pass
)

// Event carries world event data for an optional sink such as an ECS bridge.
type Event struct {
	Type     EventType
	Entity   Handle
	Kind     Kind
	State    State
	Position XY
	// Hits lists the entities that blocked a move (EventBlocked, EventSlid).
	Hits []Handle
}

// EventSink receives world events. When set on a World, events raised
// during the update pass are forwarded synchronously.
type EventSink interface {
	EmitEvent(event Event)
}

package skiff

import "sort"

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case CONTACT_ENTER:
		return "enter"
	case CONTACT_STAY:
		return "stay"
	default:
		return "exit"
	}
}

// ContactEvent is delivered to listeners at the end of a step. Exit events
// carry the pair's last recorded contact.
type ContactEvent struct {
	Type    EventType
	Contact Contact
}

// ContactListener - callback for contact events
type ContactListener func(event ContactEvent)

// Subscription identifies a registered listener for Unsubscribe.
type Subscription int

type pairKey struct {
	a, b VehicleID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(a, b VehicleID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

type listenerEntry struct {
	sub       Subscription
	eventType EventType
	fn        ContactListener
}

// Events tracks contact pairs across steps and turns them into
// Enter/Stay/Exit transitions. It is owned by a World and shares its
// single-goroutine contract.
type Events struct {
	listeners []listenerEntry
	nextSub   Subscription

	// Event buffer to send at flush
	buffer []ContactEvent

	// Contact tracking for Enter/Stay/Exit detection
	previous map[pairKey]Contact
	current  map[pairKey]Contact
}

func NewEvents() Events {
	return Events{
		nextSub:  1,
		buffer:   make([]ContactEvent, 0, 256),
		previous: make(map[pairKey]Contact),
		current:  make(map[pairKey]Contact),
	}
}

// Subscribe adds a listener for an event type. Listeners fire in
// subscription order.
func (e *Events) Subscribe(eventType EventType, listener ContactListener) Subscription {
	sub := e.nextSub
	e.nextSub++
	e.listeners = append(e.listeners, listenerEntry{sub: sub, eventType: eventType, fn: listener})
	return sub
}

// Unsubscribe removes a listener, reporting whether it was registered.
func (e *Events) Unsubscribe(sub Subscription) bool {
	for i := range e.listeners {
		if e.listeners[i].sub == sub {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// record marks the contacts of the current step. Contacts are stored with
// ids in key order, flipping the normal when the pair swaps.
func (e *Events) record(contacts []Contact) {
	for _, c := range contacts {
		if c.B < c.A {
			c.A, c.B = c.B, c.A
			c.Normal = c.Normal.Mul(-1)
		}
		e.current[makePairKey(c.A, c.B)] = c
	}
}

// forget drops every tracked pair involving id, without emitting Exit
// events for them.
func (e *Events) forget(id VehicleID) {
	for pair := range e.previous {
		if pair.a == id || pair.b == id {
			delete(e.previous, pair)
		}
	}
	for pair := range e.current {
		if pair.a == id || pair.b == id {
			delete(e.current, pair)
		}
	}
}

// processTransitions compares current and previous pairs to detect
// Enter/Stay/Exit. Pairs are visited in sorted id order so the emitted
// sequence is deterministic.
func (e *Events) processTransitions() {
	for _, pair := range sortedKeys(e.current) {
		contact := e.current[pair]
		if _, active := e.previous[pair]; active {
			e.buffer = append(e.buffer, ContactEvent{Type: CONTACT_STAY, Contact: contact})
		} else {
			e.buffer = append(e.buffer, ContactEvent{Type: CONTACT_ENTER, Contact: contact})
		}
	}

	for _, pair := range sortedKeys(e.previous) {
		if _, active := e.current[pair]; !active {
			e.buffer = append(e.buffer, ContactEvent{Type: CONTACT_EXIT, Contact: e.previous[pair]})
		}
	}

	// Swap for next step and clear current
	e.previous, e.current = e.current, e.previous
	clear(e.current)
}

// flush turns the recorded contacts into transition events and delivers the
// whole buffer to the listeners.
func (e *Events) flush() {
	e.processTransitions()

	for _, event := range e.buffer {
		for _, entry := range e.listeners {
			if entry.eventType == event.Type {
				entry.fn(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

func sortedKeys(m map[pairKey]Contact) []pairKey {
	keys := make([]pairKey, 0, len(m))
	for pair := range m {
		keys = append(keys, pair)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	return keys
}

// File: /realtime/relay.go
package realtime

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"livewall-api/models"
)

// wireEvent is the NATS payload exchanged between instances. Origin lets an
// instance ignore its own messages coming back around.
type wireEvent struct {
	Origin  string          `json:"origin"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NATSRelay wraps a Hub so broadcasts reach the subscribers of every
// instance, not just the local one. Local publishes go to the hub first and
// are then mirrored onto the subject; events arriving from other instances
// are folded into the local hub.
type NATSRelay struct {
	hub      *Hub
	nc       *nats.Conn
	subject  string
	instance string
	sub      *nats.Subscription
}

func NewNATSRelay(hub *Hub, nc *nats.Conn, subject string) (*NATSRelay, error) {
	relay := &NATSRelay{
		hub:      hub,
		nc:       nc,
		subject:  subject,
		instance: uuid.New().String(),
	}

	sub, err := nc.Subscribe(subject, relay.handleRemote)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	relay.sub = sub

	return relay, nil
}

// Publish fans out locally, then mirrors the event to the other instances.
// A NATS hiccup is logged and swallowed: the local mutation already
// happened and its local broadcast already went out.
func (r *NATSRelay) Publish(event models.Event) {
	r.hub.Publish(event)

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		log.Printf("Warning: could not marshal %s event for relay: %v", event.Name, err)
		return
	}

	data, err := json.Marshal(wireEvent{
		Origin:  r.instance,
		Name:    event.Name,
		Payload: payload,
	})
	if err != nil {
		log.Printf("Warning: could not marshal %s relay envelope: %v", event.Name, err)
		return
	}

	if err := r.nc.Publish(r.subject, data); err != nil {
		log.Printf("Warning: could not relay %s event: %v", event.Name, err)
	}
}

func (r *NATSRelay) handleRemote(msg *nats.Msg) {
	var wire wireEvent
	if err := json.Unmarshal(msg.Data, &wire); err != nil {
		log.Printf("Warning: dropping malformed relay event: %v", err)
		return
	}

	if wire.Origin == r.instance {
		return
	}

	r.hub.Publish(models.Event{Name: wire.Name, Payload: wire.Payload})
}

// Close stops listening for remote events. The hub itself stays usable.
func (r *NATSRelay) Close() {
	if r.sub != nil {
		if err := r.sub.Unsubscribe(); err != nil {
			log.Printf("Warning: could not unsubscribe relay: %v", err)
		}
	}
}

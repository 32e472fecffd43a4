package services

import (
	"encoding/json"
	"log"
)

// EventPublisher is the narrow surface services need from the message broker.
// *rabbitmq.Client satisfies it; tests pass mocks or nil.
type EventPublisher interface {
	Publish(kind string, body []byte) error
}

// publishEvent marshals and publishes a marketplace event. Publishing is best
// effort: a broker failure is logged and never fails the request that caused
// the event.
func publishEvent(events EventPublisher, kind string, payload map[string]interface{}) {
	if events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", kind, err)
		return
	}
	if err := events.Publish(kind, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", kind, err)
	}
}

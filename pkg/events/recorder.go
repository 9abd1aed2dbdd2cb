package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

type Recorded struct {
	Topic string
	Key   string
	Event any
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Types returns the Type of every recorded Event on topic, in publish order.
func (r *Recorder) Types(topic string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rec := range r.Events {
		if rec.Topic != topic {
			continue
		}
		if ev, ok := rec.Event.(Event); ok {
			out = append(out, ev.Type)
		}
	}
	return out
}

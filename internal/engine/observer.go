package engine

import "time"

// EventType represents different lifecycle phases of an estimation run
type EventType string

const (
	EventParseStart    EventType = "parse_start"
	EventParseEnd      EventType = "parse_end"
	EventStatsStart    EventType = "stats_start"
	EventStatsEnd      EventType = "stats_end"
	EventEstimateStart EventType = "estimate_start"
	EventEstimateEnd   EventType = "estimate_end"
)

// Event represents a lifecycle event in an estimation run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., SQL, predicate, estimate)
}

// Observer interface for event subscribers
// Observers receive events at major estimation phases
type Observer interface {
	OnEvent(event Event)
}

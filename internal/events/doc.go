// Package events publishes changes to users' calendars.
//
// The schedule service emits a ScheduleEvent after each committed change.
// Handlers registered with an InMemoryEventEmitter receive every event in
// registration order; LogHandler writes them to a structured audit log.
package events

// Package domain contains the calendar entities of the scheduler: Days, their
// three fixed Slots, the Assignments that bind tasks to slots, and the
// weekday/weekend placement rule. It has no knowledge of storage or transport.
package domain

// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the scheduling logic, allowing business rules to remain independent of
// the SQL dialect the calendar lives in.
package store

// Package schedule places tasks into the three daily slots of a user's
// calendar.
//
// A Day is materialized ahead of time by the skeleton generator up to a fixed
// horizon. Tasks are placed either into the first compliant free slot at or
// after a date, or into a specific slot, in which case the occupant and every
// later assignment shift one slot later and whatever falls past the evening
// slot is carried to the next day. Work tasks belong on weekdays and personal
// tasks on weekends; a fixed task may break that rule, and a specific placement
// that does so also needs a manual source.
// Automatic placement never uses the manual-only evening slot.
//
// Each operation reads and writes its Days inside one transaction, and every
// Day write is a version check-and-set, so concurrent calls for the same user
// cannot lose updates.
package schedule

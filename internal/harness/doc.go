// Package harness runs planner scenarios described in YAML.
//
// A scenario pins the wall clock, seeds the collection, drives it through a
// flow of add, edit and delete steps using the same form validation the
// shell uses, and then asserts on the resulting collection and the filtered
// views of it.
//
// # Scenario Format
//
//	name: lunch
//	description: "Creating an event from today's defaults"
//	now: "2025-06-01 10:00"
//	timezone: Europe/Berlin        # optional, defaults to UTC
//	seed:                          # stored directly, no form validation
//	  - { title: Standup, date: "2025-01-10", time: "09:00",
//	      location: Room A, category: work }
//	flow:
//	  - action: add
//	    fields: { title: Lunch, time: "12:30", location: Cafe }
//	    expect: { outcome: ok, id: evt-2 }
//	  - action: edit
//	    id: evt-1
//	    fields: { date: "2030-01-01" }
//	    expect: { outcome: invalid, rejected: [date] }
//	assertions:
//	  - type: view
//	    when: upcoming
//	    category: all
//	    ids: [evt-2]
//	  - type: event
//	    id: evt-2
//	    expect: { title: Lunch, description: "" }
//	  - type: count
//	    count: 2
//	  - type: writes
//	    count: 1
//
// Identifiers are assigned in order as evt-1, evt-2, ... across seed and
// flow. Each scenario runs against a fresh in-memory backend.
//
// # Assertion Types
//
//   - view: Filters the final collection and compares the ordered ids
//   - event: Compares a subset of one event's fields in their text form
//   - count: Checks the final number of events
//   - writes: Checks the number of durable writes made by the flow
package harness

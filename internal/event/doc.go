// Package event defines the planner's record types.
//
// This package contains type definitions and their wire encodings only.
// All other internal packages import event; event imports nothing internal.
//
// Key design constraints:
//   - Category is closed: only Work, Personal and Entertainment exist
//   - Dates and times carry no timezone; callers choose the location
//   - An Event's ID is assigned once by the list and never changes
//   - All JSON tags use snake_case
package event

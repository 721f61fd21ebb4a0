package event

import "time"

// MaxTitleLength is the maximum title length in characters.
const MaxTitleLength = 100

// Event is a single planned occurrence.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        Date      `json:"date"`
	Time        TimeOfDay `json:"time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
}

// Draft is an Event without its identifier, as emitted by a form.
type Draft struct {
	Title       string    `json:"title"`
	Date        Date      `json:"date"`
	Time        TimeOfDay `json:"time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
}

// WithID builds the Event that stores d under id.
func (d Draft) WithID(id string) Event {
	return Event{
		ID:          id,
		Title:       d.Title,
		Date:        d.Date,
		Time:        d.Time,
		Location:    d.Location,
		Description: d.Description,
		Category:    d.Category,
	}
}

// Draft returns every field of e except the identifier.
func (e Event) Draft() Draft {
	return Draft{
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		Category:    e.Category,
	}
}

// Instant combines the event's date and time-of-day in loc.
func (e Event) Instant(loc *time.Location) time.Time {
	return Combine(e.Date, e.Time, loc)
}

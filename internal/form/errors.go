package form

import "strings"

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldCategory    = "category"
)

var fieldOrder = []string{FieldTitle, FieldDate, FieldTime, FieldLocation, FieldDescription, FieldCategory}

const categoryMessage = "category must be work, personal or entertainment"

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every rejected field of one submission.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "invalid event: " + strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (es ValidationErrors) Has(field string) bool {
	for _, e := range es {
		if e.Field == field {
			return true
		}
	}
	return false
}

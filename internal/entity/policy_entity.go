package entity

import (
	"github.com/google/uuid"
)

// Policy is one textual risk rule injected verbatim into every
// chunk-analysis prompt.
type Policy struct {
	Id       uuid.UUID
	Name     string
	Category string
	Content  string
	Position int
	Active   bool
}

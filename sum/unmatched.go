package sum

import (
	"fmt"
)

// UnmatchedError panic value of generated switches when no arm matched the scrutinee.
// It means the arms of the switch are not exhaustive over the values it gets.
type UnmatchedError struct {
	Site  string
	Value interface{}
}

func (e *UnmatchedError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: no arm matched", e.Site)
	}
	return fmt.Sprintf("%s: no arm matched %#v", e.Site, e.Value)
}

// Unmatched builds the panic value for the catch-all of a switch generated for site
func Unmatched(site string, value interface{}) error {
	return &UnmatchedError{
		Site:  site,
		Value: value,
	}
}

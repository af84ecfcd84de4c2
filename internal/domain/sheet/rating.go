package sheet

import (
	"encoding/json"
	"strconv"
)

// Rating is a skill rating. The zero value is "never rated", which is distinct
// from an explicit rating of 0.
type Rating struct {
	value int
	set   bool
}

// Unrated returns the "never rated" rating
func Unrated() Rating {
	return Rating{}
}

// RatingOf returns an explicit rating
func RatingOf(v int) Rating {
	return Rating{value: v, set: true}
}

// Get returns the rating and whether it is set
func (r Rating) Get() (int, bool) {
	return r.value, r.set
}

// IsSet reports whether the rating holds an explicit value
func (r Rating) IsSet() bool {
	return r.set
}

// OrZero returns the rating, treating "never rated" as 0
func (r Rating) OrZero() int {
	if !r.set {
		return 0
	}
	return r.value
}

func (r Rating) String() string {
	if !r.set {
		return "-"
	}
	return strconv.Itoa(r.value)
}

// MarshalJSON encodes an unset rating as null
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as unset
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Unrated()
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RatingOf(v)
	return nil
}

package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// MarshalJSON encodes the timestamp as an RFC3339 string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(ts).MarshalJSON()
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var t time.Time
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}

// String formats the timestamp as RFC3339
func (ts Timestamp) String() string {
	return time.Time(ts).Format(time.RFC3339)
}

// IsZero reports whether the timestamp is unset
func (ts Timestamp) IsZero() bool {
	return time.Time(ts).IsZero()
}

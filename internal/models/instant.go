package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/timezone"
)

// Instant is a point in time as exchanged with the reservations API.
// The backend sometimes emits naive timestamps; those are read in the
// default timezone.
type Instant struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	timezone.FormInputLayout,
}

// ParseInstant accepts RFC 3339 values and naive local timestamps.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, timezone.Default()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q", s)
}

// FormatISO renders an instant the way the backend expects it
// (UTC, millisecond precision).
func FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func NewInstant(t time.Time) Instant {
	return Instant{Time: t}
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.UTC().Format(time.RFC3339))
}

func (i *Instant) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		i.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		i.Time = time.Time{}
		return nil
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	i.Time = t
	return nil
}

// FlexID accepts identifiers encoded either as JSON strings or numbers.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = FlexID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexID(n.String())
	return nil
}

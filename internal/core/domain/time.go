package domain

import (
	"fmt"
	"strings"
	"time"
)

// localTimeLayouts are the accepted wire forms, most specific first. The
// booking services speak zone-less ISO-8601 local date-times; the reservation
// form produces the minute-precision variant.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LocalTime is a zone-less wall-clock timestamp as used on the wire by the
// catalog and booking services.
type LocalTime struct {
	time.Time
}

// ParseLocalTime parses a wire-format local date-time string.
func ParseLocalTime(s string) (LocalTime, error) {
	for _, layout := range localTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return LocalTime{t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid date-time %q", s)
}

func (t LocalTime) String() string {
	return t.Format("2006-01-02T15:04:05")
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

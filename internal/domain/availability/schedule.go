package availability

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/campus-booking/internal/httperr"
)

// Schedule maps a weekday to its slot labels in display order. Labels are
// opaque and compared only for equality.
type Schedule map[Weekday][]string

// ParseSchedule decodes the stored JSON text. The whole blob must be an object
// whose values are arrays of strings; keys outside the canonical weekday set
// are ignored. Empty input is an empty schedule.
func ParseSchedule(raw []byte) (Schedule, error) {
	out := Schedule{}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return out, nil
	}

	var decoded map[string][]string
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}

	return ScheduleFromMap(decoded), nil
}

// ScheduleFromMap keeps the canonical weekday keys of m and drops the rest.
// Labels are copied as they are.
func ScheduleFromMap(m map[string][]string) Schedule {
	out := Schedule{}
	for key, slots := range m {
		day, ok := ParseWeekday(key)
		if !ok {
			continue
		}
		labels := make([]string, len(slots))
		copy(labels, slots)
		out[day] = labels
	}
	return out
}

// SlotsFor returns the labels offered on the weekday of date. The result is a
// copy and never nil.
func (s Schedule) SlotsFor(date time.Time) []string {
	slots := s[WeekdayOf(date)]
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

func (s Schedule) Offers(date time.Time, label string) bool {
	for _, slot := range s[WeekdayOf(date)] {
		if slot == label {
			return true
		}
	}
	return false
}

// JSON encodes the schedule back to its stored text form.
func (s Schedule) JSON() string {
	if len(s) == 0 {
		return "{}"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// NormalizeSchedule validates a schedule submitted by a teacher: every key must
// be a canonical weekday and every label non-empty once trimmed.
func NormalizeSchedule(in map[string][]string) (Schedule, error) {
	out := Schedule{}
	for key, slots := range in {
		day, ok := ParseWeekday(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			return nil, httperr.ErrBusiness("invalid_weekday")
		}

		labels := make([]string, 0, len(slots))
		for _, slot := range slots {
			slot = strings.TrimSpace(slot)
			if slot == "" {
				return nil, httperr.ErrBusiness("empty_slot_label")
			}
			labels = append(labels, slot)
		}
		out[day] = labels
	}
	return out, nil
}

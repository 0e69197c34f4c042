package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultFrequency is stored when a habit is created without a frequency.
var DefaultFrequency = json.RawMessage(`{"type":"daily"}`)

var (
	ErrFrequencyNotObject = errors.New("frequency must be a JSON object")
	ErrInvalidReminder    = errors.New("reminder_time must be HH:MM or HH:MM:SS")
)

type Habit struct {
	ID           int64
	UserID       UserID
	CategoryID   *int64
	Name         string
	Description  string
	Frequency    json.RawMessage // opaque to the server, e.g. {"type":"weekly","days":[1,3]}
	ReminderTime *string         // HH:MM:SS
	IsArchived   bool
	CreatedAt    time.Time
}

// HabitWithCategory is a habit row joined with its (optional) category.
type HabitWithCategory struct {
	Habit

	CategoryName  *string
	CategoryColor *string
}

// NormalizeFrequency returns DefaultFrequency for an absent or null value and
// otherwise insists on a JSON object. The result is compacted so both drivers
// store identical text.
func NormalizeFrequency(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DefaultFrequency, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, ErrFrequencyNotObject
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, ErrFrequencyNotObject
	}
	return json.RawMessage(buf.Bytes()), nil
}

// NormalizeReminderTime maps "" (or nil) to no reminder and canonicalises
// HH:MM to HH:MM:SS.
func NormalizeReminderTime(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			out := t.Format("15:04:05")
			return &out, nil
		}
	}
	return nil, ErrInvalidReminder
}

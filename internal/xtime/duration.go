package xtime

import (
	"errors"
	"time"
)

var ErrNegativeDuration = errors.New("duration must not be negative")

// Duration is a time.Duration read from config text like "500ms" or "12h".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return d.Std().String()
}

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if duration < 0 {
		return ErrNegativeDuration
	}
	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses durations like "30m", "1h30m", or "2d". Days are
// accepted as a leading Nd segment on top of the standard duration units.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var days int64
	if i := strings.IndexByte(s, 'd'); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day segment in %q", s)
		}

		days = n
		s = s[i+1:]
	}

	var rest time.Duration
	if s != "" {
		var err error
		rest, err = time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
	}

	d := time.Duration(days)*24*time.Hour + rest
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}

	return d, nil
}

package mapper

import (
	"bytes"
	"encoding/json"
	"time"
)

// Vietnam has no daylight saving time, so a fixed zone avoids depending on
// the host's tz database.
var vietnam = time.FixedZone("ICT", 7*60*60)

// DateLabelLayout renders timestamps the way vi-VN locale formatting does.
const DateLabelLayout = "15:04:05 2/1/2006"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateLabel formats t in Vietnam local time.
func DateLabel(t time.Time) string {
	return t.In(vietnam).Format(DateLabelLayout)
}

// parseTimestamp accepts the timestamp encodings the backend has used: an
// ISO-8601 string with or without zone, or a Jackson LocalDateTime array
// [year, month, day, hour, minute, second, nanos]. Zoneless values are read
// as Vietnam local time.
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	if raw[0] == '[' {
		var parts []int
		if err := json.Unmarshal(raw, &parts); err != nil || len(parts) < 3 {
			return time.Time{}, false
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], vietnam), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, vietnam); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package logging

import "time"

// consoleTimeLayout keeps console lines short; the JSON log file carries full
// RFC 3339 timestamps.
const consoleTimeLayout = "15:04:05.000"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Local().Format(consoleTimeLayout)
}

package we

import "time"

// Timestamp is a UTC time with millisecond precision, the resolution of a revision.
type Timestamp string

const timestampLayout = "2006-01-02T15:04:05.000Z"

func TimestampOf(at time.Time) Timestamp {
	return Timestamp(at.UTC().Truncate(time.Millisecond).Format(timestampLayout))
}

func (ts Timestamp) String() string {
	return string(ts)
}

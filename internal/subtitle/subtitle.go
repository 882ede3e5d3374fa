package subtitle

import (
	"time"
)

// Segment is a transcribed span of audio as produced by the recognition
// engine. Segments arrive ordered by start time and are not re-sorted.
type Segment struct {
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Entry is a single rendered subtitle block.
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Subtitle is a complete subtitle track.
type Subtitle struct {
	Entries  []Entry
	Language string
}

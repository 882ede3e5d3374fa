package pipeline

import "errors"

// Error kinds, one per pipeline step. Step failures wrap both the kind
// and the underlying cause so callers can match either.
var (
	ErrInput         = errors.New("input error")
	ErrExtraction    = errors.New("audio extraction error")
	ErrTranscription = errors.New("transcription error")
	ErrSubtitleWrite = errors.New("subtitle write error")
	ErrCompose       = errors.New("compose error")
)

package db

import "time"

// Render statuses.
const (
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Render represents a row in the renders table.
type Render struct {
	ID          string
	Source      string
	Transcript  string
	Destination string
	Workspace   string
	Segments    int
	Duration    float64
	Mode        string
	Status      string
	StartedAt   time.Time
	FinishedAt  *time.Time
	ErrorAt     *time.Time
	Filesize    int64
	Log         string
}

package session

import (
	"context"
	"time"
)

// Prompter collects one answer per call. AskChoice returns one of allowed,
// upper-cased, re-prompting on anything else. Both return io.EOF once input
// is exhausted.
type Prompter interface {
	AskChoice(ctx context.Context, question string, allowed []string) (string, error)
	AskFreeText(ctx context.Context, question string) (string, error)
}

// Clock supplies the current time for records and elapsed-time recording.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

const (
	answerYes    = "YES"
	answerNo     = "NO"
	answerSchema = "SCHEMA"
	answerData   = "DATA"

	commandHelp  = "HELP"
	commandPrint = "PRINT"
	commandUndo  = "UNDO"
)

var yesNo = []string{answerYes, answerNo}

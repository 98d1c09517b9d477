// Package notice is the portal's toast boundary. Façades emit exactly
// one notice per operation outcome; how a notice is drawn is up to the
// presentation layer.
package notice

import "github.com/rs/zerolog"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-visible notices.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notices to the structured log. It is the default
// sink when no presentation layer is attached.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info().Str("level", string(LevelSuccess)).Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Warn().Str("level", string(LevelError)).Msg(message)
}

// Recorder captures notices in order. Used by tests and by screens that
// want to replay the toasts for a request.
type Recorder struct {
	notices []Notice
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) {
	r.notices = append(r.notices, Notice{Level: LevelSuccess, Message: message})
}

func (r *Recorder) Error(message string) {
	r.notices = append(r.notices, Notice{Level: LevelError, Message: message})
}

// Notices returns the captured notices, oldest first.
func (r *Recorder) Notices() []Notice {
	return r.notices
}

// Reset drops all captured notices.
func (r *Recorder) Reset() {
	r.notices = nil
}

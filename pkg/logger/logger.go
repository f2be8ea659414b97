package logger

import "log"

// Levels in increasing order of severity. SILENCE drops every record.
const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// Logger is the leveled printf-style logger carried in the request context.
type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type stdLogger struct {
	level int
}

// NewLogger returns a logger printing through the standard log package,
// dropping records below the given level.
func NewLogger(level int) *stdLogger {
	return &stdLogger{level: level}
}

func (l *stdLogger) logf(level int, msg string, a ...any) {
	if l.level <= level {
		log.Printf(msg+"\n", a...)
	}
}

func (l *stdLogger) Debugf(msg string, a ...any) { l.logf(DEBUG, msg, a...) }
func (l *stdLogger) Infof(msg string, a ...any)  { l.logf(INFO, msg, a...) }
func (l *stdLogger) Warnf(msg string, a ...any)  { l.logf(WARNING, msg, a...) }
func (l *stdLogger) Errorf(msg string, a ...any) { l.logf(ERROR, msg, a...) }

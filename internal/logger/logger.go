// Package logger contains a logger implementation.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

func (l Level) label() string {
	switch l {
	case Debug:
		return "DEB"
	case Warn:
		return "WAR"
	case Error:
		return "ERR"
	default:
		return "INF"
	}
}

// Destination is a log destination.
type Destination int

const (
	// DestinationStdout writes logs to the standard output.
	DestinationStdout Destination = iota

	// DestinationFile writes logs to a file.
	DestinationFile
)

type destination interface {
	log(t time.Time, level Level, msg string)
	close()
}

// Logger is a log handler.
type Logger struct {
	Level        Level
	Destinations []Destination
	File         string
	Structured   bool

	timeNow      func() time.Time
	stdout       io.Writer
	destinations []destination

	mutex sync.Mutex
}

// Initialize initializes a Logger.
func (lh *Logger) Initialize() error {
	if lh.Level == 0 {
		lh.Level = Info
	}
	if lh.timeNow == nil {
		lh.timeNow = time.Now
	}
	if lh.stdout == nil {
		lh.stdout = os.Stdout
	}

	for _, dest := range lh.Destinations {
		switch dest {
		case DestinationStdout:
			lh.destinations = append(lh.destinations, newDestinationStdout(lh))

		case DestinationFile:
			d, err := newDestinationFile(lh)
			if err != nil {
				lh.Close()
				return err
			}
			lh.destinations = append(lh.destinations, d)
		}
	}

	return nil
}

// Close closes a Logger.
func (lh *Logger) Close() {
	for _, dest := range lh.destinations {
		dest.close()
	}
	lh.destinations = nil
}

// Log writes a log entry.
func (lh *Logger) Log(level Level, format string, args ...interface{}) {
	if level < lh.Level {
		return
	}

	lh.mutex.Lock()
	defer lh.mutex.Unlock()

	t := lh.timeNow()
	msg := fmt.Sprintf(format, args...)

	for _, dest := range lh.destinations {
		dest.log(t, level, msg)
	}
}

package logger

import (
	"bytes"
	"time"

	"github.com/gookit/color"
)

type destinationStdout struct {
	parent *Logger

	buf bytes.Buffer
}

func newDestinationStdout(parent *Logger) destination {
	return &destinationStdout{
		parent: parent,
	}
}

func (d *destinationStdout) log(t time.Time, level Level, msg string) {
	d.buf.Reset()

	if d.parent.Structured {
		writeStructured(&d.buf, t, level, msg)
	} else {
		// colors are stripped automatically when stdout is not a terminal.
		d.buf.WriteString(color.RenderString(color.Gray.Code(), t.Format("2006/01/02 15:04:05")))
		d.buf.WriteByte(' ')
		d.buf.WriteString(color.RenderString(levelColor(level), level.label()))
		d.buf.WriteByte(' ')
		d.buf.WriteString(msg)
		d.buf.WriteByte('\n')
	}

	d.parent.stdout.Write(d.buf.Bytes())
}

func (d *destinationStdout) close() {
}

func levelColor(level Level) string {
	switch level {
	case Debug:
		return color.Debug.Code()
	case Warn:
		return color.Warn.Code()
	case Error:
		return color.Error.Code()
	default:
		return color.Green.Code()
	}
}

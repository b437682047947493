package logger

import (
	"bytes"
	"encoding/json"
	"time"
)

type structuredEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

func writePlain(buf *bytes.Buffer, t time.Time, level Level, msg string) {
	buf.WriteString(t.Format("2006/01/02 15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(level.label())
	buf.WriteByte(' ')
	buf.WriteString(msg)
	buf.WriteByte('\n')
}

func writeStructured(buf *bytes.Buffer, t time.Time, level Level, msg string) {
	enc, _ := json.Marshal(structuredEntry{
		Timestamp: t.Format(time.RFC3339Nano),
		Level:     level.label(),
		Message:   msg,
	})
	buf.Write(enc)
	buf.WriteByte('\n')
}

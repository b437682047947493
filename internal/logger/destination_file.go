package logger

import (
	"bytes"
	"os"
	"time"
)

type destinationFile struct {
	parent *Logger

	file *os.File
	buf  bytes.Buffer
}

func newDestinationFile(parent *Logger) (destination, error) {
	file, err := os.OpenFile(parent.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &destinationFile{
		parent: parent,
		file:   file,
	}, nil
}

func (d *destinationFile) log(t time.Time, level Level, msg string) {
	d.buf.Reset()

	if d.parent.Structured {
		writeStructured(&d.buf, t, level, msg)
	} else {
		writePlain(&d.buf, t, level, msg)
	}

	d.file.Write(d.buf.Bytes())
}

func (d *destinationFile) close() {
	d.file.Close()
}

package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/qbexport/internal/question"
)

// ErrUnknownFormat is returned by ForFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// Writer serializes question records into one output file.
type Writer interface {
	Write(w io.Writer, records []question.Record) error
	ContentType() string
	Extension() string
}

// DefaultFormat is used when a request does not name one.
const DefaultFormat = "xlsx"

// ForFormat returns the writer for a format name.
func ForFormat(name string) (Writer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "xlsx":
		return &XLSXWriter{}, nil
	case "csv":
		return &CSVWriter{}, nil
	case "docx":
		return &DOCXWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// ForFilename returns the writer matching a file extension, defaulting
// to xlsx when there is none.
func ForFilename(filename string) (Writer, error) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ForFormat(DefaultFormat)
	}
	return ForFormat(filename[i+1:])
}

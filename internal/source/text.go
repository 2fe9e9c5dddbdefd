package source

import (
	"io"
	"strings"
)

// TextReader handles .tex and .txt files. Line endings are normalized to
// \n and a leading UTF-8 byte order mark is dropped. There is no line
// length limit; callers bound the total size.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}

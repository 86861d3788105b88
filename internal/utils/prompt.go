package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader reads trimmed answers from a line-oriented input.
type LineReader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	if br, ok := in.(*bufio.Reader); ok {
		return &LineReader{in: br, out: out}
	}
	return &LineReader{in: bufio.NewReader(in), out: out}
}

// Prompt prints message and returns the next line. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
func (r *LineReader) Prompt(message string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", BrightWhite(message))
	return r.readLine()
}

func (r *LineReader) readLine() (string, error) {
	text, err := r.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && text != "" {
			return strings.TrimSpace(text), nil
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// ErrMalformedLine is returned for a line that is not a JSON operation
var ErrMalformedLine = errors.New("malformed script line")

// Op is one line of an edit script
type Op struct {
	Line int `json:"-"`

	Op  string `json:"op"`
	Ref string `json:"ref,omitempty"`

	// Track and Element take a ref bound earlier in the script or a raw id
	Track   string `json:"track,omitempty"`
	Element string `json:"element,omitempty"`

	Kind     model.TrackKind    `json:"kind,omitempty"`
	Fields   model.ElementPatch `json:"fields,omitempty"`
	Additive bool               `json:"additive,omitempty"`

	URL      string   `json:"url,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Time     *float64 `json:"time,omitempty"`
	Delta    *float64 `json:"delta,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

// LineError ties a script error to its 1-based line number
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseFile reads and parses the script at path
func ParseFile(path string) ([]Op, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	ops, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	util.LogDebugf("Parsed %d operations from %s", len(ops), path)
	return ops, nil
}

// Parse reads one operation per line. Blank lines and lines starting with
// # or // are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' || bytes.HasPrefix(line, []byte("//")) {
			continue
		}

		var op Op
		if err := sonic.Unmarshal(line, &op); err != nil {
			return nil, &LineError{Line: lineNo, Err: fmt.Errorf("%w: %v", ErrMalformedLine, err)}
		}
		if op.Op == "" {
			return nil, &LineError{Line: lineNo, Err: fmt.Errorf("%w: missing op", ErrMalformedLine)}
		}
		op.Line = lineNo
		ops = append(ops, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ops, nil
}

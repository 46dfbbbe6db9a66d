package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := strings.Join([]string{
		`# build a title card`,
		``,
		`{"op":"initialize","url":"https://cdn.example.com/intro.mp4","duration":10}`,
		`// add captions`,
		`{"op":"addTrack","kind":"text","ref":"captions"}`,
		`{"op":"addElement","track":"captions","fields":{"content":"Hello","startTime":1.5}}`,
	}, "\n")

	ops, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, "initialize", ops[0].Op)
	assert.Equal(t, 3, ops[0].Line)
	require.NotNil(t, ops[0].Duration)
	assert.Equal(t, 10.0, *ops[0].Duration)

	assert.Equal(t, "captions", ops[1].Ref)
	assert.Equal(t, 5, ops[1].Line)

	require.NotNil(t, ops[2].Fields.Content)
	assert.Equal(t, "Hello", *ops[2].Fields.Content)
	require.NotNil(t, ops[2].Fields.StartTime)
	assert.Equal(t, 1.5, *ops[2].Fields.StartTime)
	assert.Nil(t, ops[2].Fields.Duration)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"not_json", "{\"op\":\"play\"}\n\n{oops", 3},
		{"missing_op", `{"time":3}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedLine)

			var lineErr *LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.wantLine, lineErr.Line)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"op":"zoomIn"}`+"\n"), 0o644))

	ops, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, ops, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

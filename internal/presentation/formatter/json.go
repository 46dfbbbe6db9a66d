package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// snapshot adds derived values next to the raw state
type snapshot struct {
	model.EditorState
	TotalDuration float64 `json:"totalDuration"`
}

func (f *JSONFormatter) Format(w io.Writer, st model.EditorState) error {
	data, err := sonic.MarshalIndent(snapshot{EditorState: st, TotalDuration: st.TotalDuration()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

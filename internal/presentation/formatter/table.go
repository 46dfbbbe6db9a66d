package formatter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// TableFormatter lists every element with its timing
type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Track", "Element", "Name", "Start", "End", "Length", "Source In", "Source Out", "Sel"},
	}
}

func (f *TableFormatter) Format(w io.Writer, st model.EditorState) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(f.headers))
	for i, h := range f.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	count := 0
	for _, track := range st.Tracks {
		for _, el := range track.Elements {
			sel := ""
			if st.IsSelected(el.ID) {
				sel = "*"
			}
			tw.AppendRow(table.Row{
				track.Name,
				util.ShortID(el.ID),
				displayName(el),
				util.FormatTimecode(el.StartTime),
				util.FormatTimecode(el.EndTime()),
				util.FormatSeconds(el.EffectiveLength()),
				util.FormatSeconds(el.SourceIn()),
				util.FormatSeconds(el.SourceOut()),
				sel,
			})
			count++
		}
		if len(track.Elements) == 0 {
			tw.AppendRow(table.Row{track.Name, "", "(empty)", "", "", "", "", "", ""})
		}
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d tracks", len(st.Tracks)),
		fmt.Sprintf("%d elements", count),
		"", "", util.FormatTimecode(st.TotalDuration()), "", "", "", "",
	})

	configs := make([]table.ColumnConfig, 0, len(f.headers))
	for i := range f.headers {
		align := text.AlignLeft
		if i >= 3 && i <= 7 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func displayName(el model.Element) string {
	if el.Kind == model.TrackText && el.Content != "" {
		return fmt.Sprintf("%q", el.Content)
	}
	return el.Name
}

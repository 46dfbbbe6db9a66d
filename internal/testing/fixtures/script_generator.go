package fixtures

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/script"
)

// ScriptGenerator writes edit scripts for tests
type ScriptGenerator struct {
	baseDir string
}

// NewScriptGenerator creates a generator that writes into baseDir
func NewScriptGenerator(baseDir string) *ScriptGenerator {
	return &ScriptGenerator{
		baseDir: baseDir,
	}
}

// Write encodes ops one per line into baseDir/name and returns the path
func (g *ScriptGenerator) Write(name string, ops ...script.Op) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, op := range ops {
		line, err := sonic.Marshal(op)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", op.Op, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	path := filepath.Join(g.baseDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Initialize is the op that seeds a session from url
func Initialize(url string, duration float64) script.Op {
	return script.Op{Op: "initialize", URL: url, Duration: model.Float(duration)}
}

// GenerateCaptionScript writes a script that seeds a session and lays out
// count evenly spaced captions on one text track
func (g *ScriptGenerator) GenerateCaptionScript(name, url string, duration float64, count int) (string, error) {
	ops := []script.Op{
		Initialize(url, duration),
		{Op: "addTrack", Kind: model.TrackText, Ref: "captions"},
	}
	if count > 0 {
		step := duration / float64(count)
		for i := 0; i < count; i++ {
			ops = append(ops, script.Op{
				Op:    "addElement",
				Track: "captions",
				Ref:   fmt.Sprintf("caption%d", i+1),
				Fields: model.ElementPatch{
					Content:   model.String(fmt.Sprintf("Caption %d", i+1)),
					StartTime: model.Float(float64(i) * step),
					Duration:  model.Float(step),
				},
			})
		}
	}
	return g.Write(name, ops...)
}

// GenerateRoughCut writes a script that cuts the seeded clip at every time
// in cuts and drops every second piece. Pieces are named cut1, cut2, ...
// from left to right after the first, which keeps the ref "clip".
func (g *ScriptGenerator) GenerateRoughCut(name, url string, duration float64, cuts []float64) (string, error) {
	sorted := append([]float64(nil), cuts...)
	sort.Float64s(sorted)

	ops := []script.Op{Initialize(url, duration)}
	// Cut from the right so "clip" always covers the next cut point
	for i := len(sorted) - 1; i >= 0; i-- {
		ops = append(ops, script.Op{
			Op:      "split",
			Element: script.RefVideoClip,
			Time:    model.Float(sorted[i]),
			Ref:     fmt.Sprintf("cut%d", i+1),
		})
	}
	for i := 1; i <= len(sorted); i += 2 {
		ops = append(ops, script.Op{
			Op:      "removeElement",
			Element: fmt.Sprintf("cut%d", i),
		})
	}
	return g.Write(name, ops...)
}

// GenerateMalformed writes a script whose second line is not valid JSON
func (g *ScriptGenerator) GenerateMalformed(name string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}
	content := `{"op":"initialize","url":"a.mp4","duration":5}` + "\n" + `{"op":"split",` + "\n"
	return path, os.WriteFile(path, []byte(content), 0644)
}

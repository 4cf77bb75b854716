package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"empty piped", "", false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit text piped", ModeText, false, ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "TEXT": ModeText, "md": ModeMarkdown, "json": ModeJSON} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("yaml")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestRenderer_Markdown(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeMarkdown)

	r.Header(1, "Sections")
	r.Table([]string{"Section", "Words"}, [][]string{{"Introduction", "8"}, {"Methods", "5"}})
	r.Success("done")

	got := out.String()
	assert.Contains(t, got, "# Sections")
	assert.Contains(t, got, "| Section | Words |")
	assert.Contains(t, got, "| Introduction | 8 |")
	assert.Contains(t, got, "✓ done")
	assert.NotContains(t, got, "\x1b[")
}

func TestRenderer_TextWithoutTTYHasNoANSI(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeText)

	r.Header(1, "Title")
	r.Warning("careful")
	r.StatusLine("Journal A", "success", "fits")

	got := out.String()
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "! careful")
	assert.Contains(t, got, "Journal A")
	assert.NotContains(t, got, "\x1b[")
}

func TestRenderer_ErrorGoesToErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModeMarkdown)
	r.Error("boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "✗ boom\n", errOut.String())
}

func TestRenderer_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"total_words": 16}))
	assert.Equal(t, "{\n  \"total_words\": 16\n}\n", out.String())
}

func TestASCIIBar(t *testing.T) {
	assert.Equal(t, "[##########----------]", ASCIIBar(0.5, 20))
	assert.Equal(t, "[----]", ASCIIBar(-1, 4))
	assert.Equal(t, "[####]", ASCIIBar(2, 4))

	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, ModeText)
	assert.Equal(t, "[#####]", r.ProgressBar(100, 5))
	assert.Equal(t, 22, len(r.ProgressBar(30, 0)))
}

func TestProgressBar_TTY(t *testing.T) {
	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, true, ModeText)
	bar := r.ProgressBar(50, 10)
	assert.NotEmpty(t, bar)
	assert.False(t, strings.HasPrefix(bar, "["))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, " 62.50%", Percent(62.5))
}

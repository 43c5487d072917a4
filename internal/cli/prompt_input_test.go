package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptYesNo_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase", "YES\n", true},
		{"n", "n\n", false},
		{"no", "no\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := new(bytes.Buffer)
			got := promptYesNoIO(strings.NewReader(tt.input), out, "Proceed? ")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed?")
		})
	}
}

func TestPromptYesNo_EOFMeansNo(t *testing.T) {
	got := promptYesNoIO(strings.NewReader(""), io.Discard, "Proceed? ")
	assert.False(t, got)
}

func TestReadPromptLine_StopsAtLF(t *testing.T) {
	line, err := readPromptLine(strings.NewReader("abc\ndef"))
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestReadPromptLine_StopsAtCR(t *testing.T) {
	// Raw terminal mode sends CR for Enter.
	line, err := readPromptLine(strings.NewReader("abc\rdef"))
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestReadPromptLine_EOFWithPartialLine(t *testing.T) {
	line, err := readPromptLine(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestReadPromptLine_NilReader(t *testing.T) {
	_, err := readPromptLine(nil)
	assert.Error(t, err)
}

func TestParseMilestoneSpec(t *testing.T) {
	m, err := parseMilestoneSpec("25:First tools")
	require.NoError(t, err)
	assert.Equal(t, "First tools", m.Title)
	assert.Equal(t, 25.0, m.TargetPct)

	m, err = parseMilestoneSpec(" 50.5 : Halfway there ")
	require.NoError(t, err)
	assert.Equal(t, "Halfway there", m.Title)
	assert.Equal(t, 50.5, m.TargetPct)

	_, err = parseMilestoneSpec("banana")
	assert.Error(t, err)

	_, err = parseMilestoneSpec("x:Title")
	assert.Error(t, err)

	_, err = parseMilestoneSpec("30:")
	assert.Error(t, err)
}

package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	_, err := GetSimpleText(rdr(""), "Name?", io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
		prompt  string
	}{
		{name: "keep current", input: "\n", current: "Amina", want: "Amina", prompt: "Full name [Amina]\n> "},
		{name: "replace", input: "Omar\n", current: "Amina", want: "Omar", prompt: "Full name [Amina]\n> "},
		{name: "clear", input: "-\n", current: "Amina", want: "", prompt: "Full name [Amina]\n> "},
		{name: "no current", input: "Omar\n", want: "Omar", prompt: "Full name\n> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetWithDefault(rdr(tt.input), "Full name", tt.current, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.prompt, out.String())
		})
	}
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(rdr(in), "Sure?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestPromptWriter(t *testing.T) {
	old := isTerminal
	t.Cleanup(func() { isTerminal = old })

	var out bytes.Buffer

	isTerminal = func(int) bool { return true }
	assert.Same(t, &out, promptWriter(&out))

	isTerminal = func(int) bool { return false }
	assert.Equal(t, io.Discard, promptWriter(&out))
}

package chatbot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScript(t *testing.T) {
	s, err := DefaultScript()
	require.NoError(t, err)

	assert.Len(t, s.Topics, 4)
	assert.Equal(t, "real estate", s.InterestFallback)
	assert.Equal(t, "Please fill in your name and email", s.Notices.Validation)
}

func TestLoadScript_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
greeting: "Hello"
topics:
  - label: Renting
    step: renting
    prompt: "Which area?"
    options: ["Westside"]
lead_prompt: "Your contacts?"
free_text_prompt: "Your contacts, please"
thank_you: "Thanks {name}"
`), 0o600))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "Renting", s.Topics[0].Label)
	assert.Equal(t, "Thanks Al", s.thankYou("Al", ""))
}

func TestParseScript_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed":      "greeting: [",
		"no topics":      `{greeting: hi, lead_prompt: a, free_text_prompt: b, thank_you: c}`,
		"reserved step":  `{greeting: hi, lead_prompt: a, free_text_prompt: b, thank_you: c, topics: [{label: X, step: lead-capture, options: [a]}]}`,
		"no options":     `{greeting: hi, lead_prompt: a, free_text_prompt: b, thank_you: c, topics: [{label: X, step: x}]}`,
		"duplicate step": `{greeting: hi, lead_prompt: a, free_text_prompt: b, thank_you: c, topics: [{label: X, step: x, options: [a]}, {label: Y, step: x, options: [b]}]}`,
		"empty greeting": `{lead_prompt: a, free_text_prompt: b, thank_you: c, topics: [{label: X, step: x, options: [a]}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScript([]byte(body))
			assert.True(t, errors.Is(err, ErrInvalidScript))
		})
	}
}

func TestLoadScript_MissingFile(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, ErrInvalidScript))
}

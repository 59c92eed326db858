package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmUpload(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes", input: "y\n", expected: true},
		{name: "yes full word", input: "yes\n", expected: true},
		{name: "uppercase yes", input: "Y\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty defaults to no", input: "\n", expected: false},
		{name: "anything else defaults to no", input: "maybe\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConfirmUpload(strings.NewReader(tt.input)))
		})
	}
}

func TestConfirmUploadReadFailure(t *testing.T) {
	// Missing trailing newline surfaces as a read error, which declines
	assert.False(t, ConfirmUpload(strings.NewReader("y")))
}

func TestPromptAuthorEmail(t *testing.T) {
	email, err := PromptAuthorEmail(strings.NewReader("dev@example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", email)
}

func TestPromptAuthorEmailTrimsWhitespace(t *testing.T) {
	email, err := PromptAuthorEmail(strings.NewReader("  dev@example.com  \n"))
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", email)
}

func TestPromptAuthorEmailEmpty(t *testing.T) {
	_, err := PromptAuthorEmail(strings.NewReader("\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

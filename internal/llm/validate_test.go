package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		max     int
		wantErr bool
	}{
		{"plain", "how to start a startup", 100, false},
		{"empty", "", 100, true},
		{"whitespace", " \n\t", 100, true},
		{"at limit", "abcde", 5, false},
		{"over limit", "abcdef", 5, true},
		{"multibyte counts runes", "ééééé", 5, false},
		{"no limit", "anything goes", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.text, tt.max)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmbedding)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInputsEmpty(t *testing.T) {
	assert.ErrorIs(t, validateInputs(nil, 10), ErrEmbedding)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

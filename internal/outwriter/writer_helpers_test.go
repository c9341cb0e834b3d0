package outwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zarmaks/gitfolio/internal/contract"
)

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name untouched", "repo", 20, "repo"},
		{"exact fit untouched", "twelve-chars", 12, "twelve-chars"},
		{"long name truncated", "a-very-long-repository-name", 15, "a-very-long-..."},
		{"tiny width untouched", "repo-name", 3, "repo-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestEmojiPrefix(t *testing.T) {
	withEmojis := &contract.Config{UseEmojis: true}
	withoutEmojis := &contract.Config{UseEmojis: false}

	assert.Equal(t, "📊 ", emojiPrefix(withEmojis, "📊"))
	assert.Equal(t, "", emojiPrefix(withoutEmojis, "📊"))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"narrow terminal clamps to minimum", 40, 12},
		{"standard terminal", 100, 45},
		{"wide terminal clamps to maximum", 200, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableNameWidth(cfg))
		})
	}
}

package sentences

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnits(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		sentence string
		expected []string
	}{
		{
			name:     "general folds case and drops stopwords",
			variant:  General,
			sentence: "The Cat sat on the MAT.",
			expected: []string{"cat", "sat", "mat"},
		},
		{
			name:     "general keeps digits",
			variant:  General,
			sentence: "Revenue grew 12 percent in 2025.",
			expected: []string{"revenue", "grew", "12", "percent", "2025"},
		},
		{
			name:     "korean strips particles",
			variant:  Korean,
			sentence: "학생이 학교에서 책을 읽었다.",
			expected: []string{"학생", "학교", "책", "읽었다"},
		},
		{
			name:     "korean keeps single syllable words",
			variant:  Korean,
			sentence: "이 책",
			expected: []string{"이", "책"},
		},
		{
			name:     "cjk bigrams",
			variant:  CJK,
			sentence: "東京大学",
			expected: []string{"東京", "京大", "大学"},
		},
		{
			name:     "cjk mixed with latin",
			variant:  CJK,
			sentence: "Go言語",
			expected: []string{"go", "言語"},
		},
		{
			name:     "empty",
			variant:  General,
			sentence: "...",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Units(tt.variant, tt.sentence))
		})
	}
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "general", General.String())
	assert.Equal(t, "korean", Korean.String())
	assert.Equal(t, "cjk", CJK.String())
	assert.Equal(t, "general", Variant(42).String())
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategoryNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil input", nil, []string{}},
		{"duplicates collapse", []string{"rpg", "rpg"}, []string{"rpg"}},
		{"order kept", []string{"strategy", "rpg", "strategy"}, []string{"strategy", "rpg"}},
		{"whitespace trimmed", []string{"  rpg ", "rpg"}, []string{"rpg"}},
		{"empty dropped", []string{"", "   ", "indie"}, []string{"indie"}},
		{"case sensitive", []string{"RPG", "rpg"}, []string{"RPG", "rpg"}},
		// "é" precomposed vs "e" + combining acute.
		{"unicode composed", []string{"caf\u00e9", "cafe\u0301"}, []string{"caf\u00e9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategoryNames(tt.in)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

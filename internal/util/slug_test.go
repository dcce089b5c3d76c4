package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "golang", "golang"},
		{"uppercase", "GOLANG", "golang"},
		{"spaces", "Slow Reads", "slow-reads"},
		{"underscores", "slow_reads", "slow-reads"},
		{"slashes", "ml/ai", "ml-ai"},
		{"surrounding whitespace", "  golang  ", "golang"},
		{"run of separators", "  multi   word ", "multi-word"},
		{"mixed separators", "a_b c/d", "a-b-c-d"},
		{"dash runs collapse", "a--b---c", "a-b-c"},
		{"dangling dashes", "-edge-", "edge"},
		{"non-ascii kept", "Übung Grün", "übung-grün"},
		{"empty", "", ""},
		{"only separators", " _/ ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTagName(tt.input))
		})
	}
}

func TestNormalizeTagName_Idempotent(t *testing.T) {
	inputs := []string{"Slow Reads", "a_b c/d", "übung"}
	for _, in := range inputs {
		once := NormalizeTagName(in)
		assert.Equal(t, once, NormalizeTagName(once))
	}
}

package format

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownTable(t *testing.T) {
	tb := NewTable(Markdown)
	tb.Header("Regimen", "Mean")
	tb.Row("Capomulin", Float(40.6757, 2))
	tb.Row("Ramicane", Float(40.2167, 2))
	tb.AlignRight(2)

	out := tb.String()
	assert.Equal(t, 2, tb.Len())
	assert.True(t, strings.HasPrefix(out, "|"))
	assert.Contains(t, out, "Regimen")
	assert.Contains(t, out, "Capomulin")
	assert.Contains(t, out, "40.68")
	assert.Equal(t, 4, len(strings.Split(strings.TrimSpace(out), "\n")))
}

func TestASCIITable(t *testing.T) {
	tb := NewTable(ASCII)
	tb.Header("A")
	tb.Row(1)
	out := tb.String()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "─")
}

func TestFloat(t *testing.T) {
	assert.Equal(t, "NaN", Float(math.NaN(), 3))
	assert.Equal(t, "1.500", Float(1.5, 3))
}

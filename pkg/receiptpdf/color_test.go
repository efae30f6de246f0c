package receiptpdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#4f8cff")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 79, G: 140, B: 255}, c)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, RGB{}, c)
}

func TestParseHexColorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#fff", "#4f8cf", "#zzzzzz", "#4f8cff00"} {
		_, err := ParseHexColor(in)
		assert.Error(t, err, in)
	}
}

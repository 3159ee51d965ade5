package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextStripsTags(t *testing.T) {
	p := NewParser()

	got, err := p.PlainText("<p>Fornitura <b>pannelli</b></p><ul><li>posa</li><li>collaudo</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "Fornitura pannelli posa collaudo", strings.Join(strings.Fields(got), " "))
}

func TestPlainTextDecodesEntitiesAndDropsScripts(t *testing.T) {
	p := NewParser()

	got, err := p.PlainText("Viti &amp; bulloni<script>alert(1)</script><br>M6")
	require.NoError(t, err)
	assert.Equal(t, "Viti & bulloni M6", strings.Join(strings.Fields(got), " "))
}

func TestIsRichText(t *testing.T) {
	p := NewParser()

	for _, in := range []string{
		"a <b>c</b>",
		"<p class=\"x\">Posa</p><br/>",
		"<span style=\"color:red\">rosso</span>",
	} {
		assert.True(t, p.IsRichText(in), in)
	}
	for _, in := range []string{
		"plain text",
		"a &amp; b",
		"Tubo a<b e c>d",
		"Ricambi R&D cod. <A12>",
		"Viti M6 <filettatura metrica> zincate",
		"Prezzo < 5 e > 3",
		"<a href=\"x\">link</a>",
	} {
		assert.False(t, p.IsRichText(in), in)
	}
}

package record

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldResolveFirstNonEmptyKeyWins(t *testing.T) {
	r := Record{"qty": "", "quantita": json.Number("3"), "quantity": "9"}
	assert.Equal(t, "3", Quantity.Resolve(r))
}

func TestFieldResolveMissingIsEmpty(t *testing.T) {
	assert.Equal(t, "", Code.Resolve(Record{}))
	assert.Equal(t, "PREVENTIVO", Title.Resolve(Record{}))
	assert.Equal(t, "", Code.Resolve(nil))
}

func TestTextRendersScalars(t *testing.T) {
	assert.Equal(t, "2.5", Text(2.5))
	assert.Equal(t, "10", Text(float64(10)))
	assert.Equal(t, "7", Text(7))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "a, b", Text([]any{"a", "", "b"}))
	assert.Equal(t, "", Text(map[string]any{"x": "y"}))
	assert.Equal(t, "x", Text("  x  "))
}

func TestDecodeSplitsRowsAndMeta(t *testing.T) {
	body := `{"doc_title":"Offerta","cliente":{"nome":"Bianchi Spa","piva":"IT123"},
		"righe":[{"cod":"X1","qty":2},"garbage",{"cod":"X2","quantita":1.50}]}`

	p, err := Decode(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "X1", Code.Resolve(p.Rows[0]))
	assert.Equal(t, "2", Quantity.Resolve(p.Rows[0]))
	assert.Equal(t, "1.50", Quantity.Resolve(p.Rows[1]))
	assert.Equal(t, "Offerta", Title.Resolve(p.Meta))
	_, hasRows := p.Meta["righe"]
	assert.False(t, hasRows)

	party := ResolveParty(Client, p.Meta)
	assert.Equal(t, "Bianchi Spa", party.Name)
	assert.Equal(t, []string{"Bianchi Spa", "P.IVA IT123"}, party.Lines("P.IVA"))
}

func TestDecodeBytesEmptyAndInvalid(t *testing.T) {
	p, err := DecodeBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Rows)

	_, err = DecodeBytes([]byte("{not json"))
	assert.Error(t, err)
}

func TestResolvePartyFromText(t *testing.T) {
	party := ResolveParty(Client, Record{"client": "Rossi Srl"})
	assert.Equal(t, "Rossi Srl", party.String())
	assert.Equal(t, Party{}, ResolveParty(Client, Record{}))
}

func TestResolveTotalsGroupAndFlat(t *testing.T) {
	grouped := Record{"totali": map[string]any{"imponibile": "100", "iva": "22", "totale": "122"}}
	assert.Equal(t, TotalsInfo{Subtotal: "100", Tax: "22", Total: "122"}, ResolveTotals(grouped))

	flat := Record{"subtotal": "10", "total": "12"}
	assert.Equal(t, TotalsInfo{Subtotal: "10", Total: "12"}, ResolveTotals(flat))
	assert.True(t, ResolveTotals(Record{}).Empty())
}

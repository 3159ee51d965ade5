package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Payload is the full input of one build: metadata plus ordered rows.
type Payload struct {
	Meta Record
	Rows []Record
}

// Decode reads a JSON object payload. Numbers are kept as json.Number so
// quantities and prices render exactly as sent.
func Decode(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return Payload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return FromMap(m), nil
}

// DecodeBytes decodes a payload from raw bytes. Empty input is an empty payload.
func DecodeBytes(data []byte) (Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Payload{Meta: Record{}}, nil
	}
	return Decode(bytes.NewReader(data))
}

// FromMap splits a decoded object into metadata and rows. Row entries that are
// not objects are skipped.
func FromMap(m map[string]any) Payload {
	p := Payload{Meta: Record{}}
	rowsKey := ""
	for _, k := range rowsKeys {
		if _, ok := m[k].([]any); ok {
			rowsKey = k
			break
		}
	}
	for k, v := range m {
		if k == rowsKey {
			continue
		}
		p.Meta[k] = v
	}
	if rowsKey == "" {
		return p
	}
	for _, item := range m[rowsKey].([]any) {
		if row, ok := item.(map[string]any); ok {
			p.Rows = append(p.Rows, Record(row))
		}
	}
	return p
}

// Party is an address-like group (the client) resolved from text or a nested mapping.
type Party struct {
	Name    string
	Address string
	City    string
	VAT     string
	Email   string
}

// ResolveParty reads f from r. A plain text value becomes the party name.
func ResolveParty(f Field, r Record) Party {
	if g := f.Group(r); g != nil {
		return Party{
			Name:    PartyName.Resolve(g),
			Address: PartyAddress.Resolve(g),
			City:    PartyCity.Resolve(g),
			VAT:     PartyVAT.Resolve(g),
			Email:   PartyEmail.Resolve(g),
		}
	}
	return Party{Name: f.Resolve(r)}
}

// Lines returns the non-empty lines of the party, VAT prefixed by vatLabel.
func (p Party) Lines(vatLabel string) []string {
	var lines []string
	for _, s := range []string{p.Name, p.Address, p.City} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	if p.VAT != "" {
		lines = append(lines, strings.TrimSpace(vatLabel+" "+p.VAT))
	}
	if p.Email != "" {
		lines = append(lines, p.Email)
	}
	return lines
}

// String is the one-line form used in compact headers.
func (p Party) String() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.Join(p.Lines(""), ", ")
}

// TotalsInfo holds the document totals as opaque text.
type TotalsInfo struct {
	Subtotal string
	Tax      string
	Total    string
}

// Empty reports whether no total is set.
func (t TotalsInfo) Empty() bool {
	return t.Subtotal == "" && t.Tax == "" && t.Total == ""
}

// ResolveTotals reads the totals group, falling back to flat metadata keys.
func ResolveTotals(meta Record) TotalsInfo {
	src := meta
	if g := Totals.Group(meta); g != nil {
		src = g
	}
	return TotalsInfo{
		Subtotal: Subtotal.Resolve(src),
		Tax:      Tax.Resolve(src),
		Total:    GrandTotal.Resolve(src),
	}
}

package record

import "encoding/json"

// Sample returns the payload rendered by a plain GET, handy for checking a
// deployment from a browser.
func Sample() Payload {
	return Payload{
		Meta: Record{
			"doc_title": "TEST PREVENTIVO",
			"cliente":   "Rossi Srl",
			"data":      "19/12/2025",
		},
		Rows: []Record{
			{"cod": "A001", "descr": "Prodotto 1", "qty": json.Number("1"), "price": "€ 100,00", "total": "€ 100,00"},
			{"cod": "A002", "descr": "Prodotto 2 descrizione lunga", "qty": json.Number("2"), "price": "€ 50,00", "total": "€ 100,00"},
		},
	}
}

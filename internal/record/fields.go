package record

// Row fields.
var (
	Code        = Field{Name: "code", Keys: []string{"cod", "code", "codice", "sku"}}
	Description = Field{Name: "description", Keys: []string{"descr", "description", "descrizione", "desc"}}
	Quantity    = Field{Name: "quantity", Keys: []string{"qty", "quantita", "quantità", "quantity", "qta"}}
	Unit        = Field{Name: "unit", Keys: []string{"um", "unit", "unita"}}
	Price       = Field{Name: "price", Keys: []string{"price", "prezzo", "unit_price"}}
	Discount    = Field{Name: "discount", Keys: []string{"sconto", "discount"}}
	Total       = Field{Name: "total", Keys: []string{"total", "totale", "importo", "amount"}}
)

// Metadata fields.
var (
	Title       = Field{Name: "title", Keys: []string{"doc_title", "title", "titolo"}, Default: "PREVENTIVO"}
	Client      = Field{Name: "client", Keys: []string{"cliente", "client", "customer", "destinatario"}}
	Date        = Field{Name: "date", Keys: []string{"data", "date"}}
	Number      = Field{Name: "number", Keys: []string{"numero", "number", "doc_number"}}
	Reference   = Field{Name: "reference", Keys: []string{"riferimento", "reference", "rif"}}
	Notes       = Field{Name: "notes", Keys: []string{"note", "notes"}}
	FooterLeft  = Field{Name: "footer_left", Keys: []string{"footer_left"}}
	FooterRight = Field{Name: "footer_right", Keys: []string{"footer_right"}}
	FooterText  = Field{Name: "footer", Keys: []string{"footer"}}
	Totals      = Field{Name: "totals", Keys: []string{"totali", "totals"}}
	Subtotal    = Field{Name: "subtotal", Keys: []string{"imponibile", "subtotal"}}
	Tax         = Field{Name: "tax", Keys: []string{"iva", "vat", "tax"}}
	GrandTotal  = Field{Name: "grand_total", Keys: []string{"totale", "total"}}
	Logo        = Field{Name: "logo", Keys: []string{"logo", "logo_base64", "logo_b64"}}
	PaymentQR   = Field{Name: "payment_qr", Keys: []string{"qr", "payment_url", "pagamento_url"}}
)

// Sub-fields of an address-like group such as the client.
var (
	PartyName    = Field{Name: "name", Keys: []string{"name", "nome", "ragione_sociale"}}
	PartyAddress = Field{Name: "address", Keys: []string{"address", "indirizzo"}}
	PartyCity    = Field{Name: "city", Keys: []string{"city", "citta", "città"}}
	PartyVAT     = Field{Name: "vat", Keys: []string{"vat", "piva", "partita_iva"}}
	PartyEmail   = Field{Name: "email", Keys: []string{"email", "mail"}}
)

// rowsKeys lists the payload keys that may carry the line items.
var rowsKeys = []string{"rows", "righe", "items", "lines"}

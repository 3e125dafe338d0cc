package ledger

// Filter narrows the entries used by the summary and the export.
// Dates compare as "2006-01-02" strings and are inclusive.
type Filter struct {
	Party string `form:"party"`
	From  string `form:"from"`
	To    string `form:"to"`
}

// Summary totals a set of entries.
type Summary struct {
	Count            int     `json:"count"`
	Credit           float64 `json:"credit"`
	Debit            float64 `json:"debit"`
	Balance          float64 `json:"balance"`
	CreditFormatted  string  `json:"credit_formatted"`
	DebitFormatted   string  `json:"debit_formatted"`
	BalanceFormatted string  `json:"balance_formatted"`
}

// Invoice is the printable view of one entry.
type Invoice struct {
	ID              string  `json:"id"`
	InvoiceNumber   string  `json:"invoice_number"`
	PartyName       string  `json:"party_name"`
	EntryDate       string  `json:"entry_date"`
	EntryType       string  `json:"entry_type"`
	PaymentMode     string  `json:"payment_mode"`
	Reference       string  `json:"reference"`
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amount_formatted"`
	Itinerary       string  `json:"itinerary,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

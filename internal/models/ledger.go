package models

// Ledger entry types.
const (
	EntryCredit = "credit"
	EntryDebit  = "debit"
)

// LedgerModel is one money movement in the agency's books.
type LedgerModel struct {
	Base
	PartyName     string  `json:"party_name"     gorm:"not null;index"`
	EntryType     string  `json:"entry_type"     gorm:"not null"`
	Amount        float64 `json:"amount"`
	EntryDate     string  `json:"entry_date"     gorm:"index"`
	InvoiceNumber string  `json:"invoice_number" gorm:"index"`
	PaymentMode   string  `json:"payment_mode"`
	Reference     string  `json:"reference"`
	ItineraryID   string  `json:"itinerary_id"   gorm:"type:char(36);index"`
	Notes         string  `json:"notes"          gorm:"type:text"`
}

func (LedgerModel) TableName() string { return "ledgers" }

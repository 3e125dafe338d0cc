// Package ledger keeps the agency's credit and debit entries and produces
// their summary, spreadsheet export and invoice view.
package ledger

import (
	"fmt"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
)

var entryTypes = []form.Option{
	{Label: "Credit (received)", Value: models.EntryCredit},
	{Label: "Debit (paid)", Value: models.EntryDebit},
}

var paymentModes = []form.Option{
	{Label: "Cash", Value: "cash"},
	{Label: "UPI", Value: "upi"},
	{Label: "Bank transfer", Value: "bank_transfer"},
	{Label: "Card", Value: "card"},
	{Label: "Cheque", Value: "cheque"},
}

// Schema describes the ledger entry form.
func Schema() resource.Schema[models.LedgerModel] {
	return resource.Schema[models.LedgerModel]{
		Name:  "ledgers",
		Title: "Ledger entry",
		Fields: []form.FieldDescriptor{
			{Name: "party_name", Label: "Party", Type: form.TypeText, Required: true},
			{Name: "entry_date", Label: "Date", Type: form.TypeDate, Required: true},
			{Name: "entry_type", Label: "Type", Type: form.TypeRadio, Options: entryTypes, Required: true},
			{Name: "amount", Label: "Amount", Type: form.TypeNumber, Required: true},
			{Name: "payment_mode", Label: "Payment mode", Type: form.TypeSelect, Options: paymentModes},
			{Name: "invoice_number", Label: "Invoice number", Type: form.TypeText},
			{Name: "reference", Label: "Reference", Type: form.TypeText, Placeholder: "UTR, cheque number"},
			{Name: "itinerary_id", Label: "Itinerary", Type: form.TypeText},
			{Name: "notes", Label: "Notes", Type: form.TypeTextarea},
		},
		Values: func(m *models.LedgerModel) form.Values {
			return form.Values{
				"party_name":     m.PartyName,
				"entry_date":     m.EntryDate,
				"entry_type":     m.EntryType,
				"amount":         m.Amount,
				"payment_mode":   m.PaymentMode,
				"invoice_number": m.InvoiceNumber,
				"reference":      m.Reference,
				"itinerary_id":   m.ItineraryID,
				"notes":          m.Notes,
			}
		},
		Apply: func(m *models.LedgerModel, v form.Values) error {
			entryType := resource.Str(v, "entry_type")
			if entryType != models.EntryCredit && entryType != models.EntryDebit {
				return fmt.Errorf("entry_type: %w: %q", models.ErrInvalidValue, entryType)
			}
			amount := resource.Num(v, "amount")
			if amount < 0 {
				return fmt.Errorf("amount: %w", models.ErrNegativeAmount)
			}
			m.PartyName = resource.Str(v, "party_name")
			m.EntryDate = resource.Str(v, "entry_date")
			m.EntryType = entryType
			m.Amount = amount
			m.PaymentMode = resource.Str(v, "payment_mode")
			m.InvoiceNumber = resource.Str(v, "invoice_number")
			m.Reference = resource.Str(v, "reference")
			m.ItineraryID = resource.Str(v, "itinerary_id")
			m.Notes = resource.Str(v, "notes")
			return nil
		},
	}
}

package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/priceformat"
	"github.com/tripdesk/crm-admin/internal/store"
)

type Service struct {
	*resource.Service[models.LedgerModel]
	itineraries store.Repository[models.ItineraryModel]
}

// NewService builds the ledger service. itineraries may be nil, in which
// case invoices do not name the trip.
func NewService(repo store.Repository[models.LedgerModel], itineraries store.Repository[models.ItineraryModel], deps resource.Deps) *Service {
	return &Service{
		Service:     resource.NewService(repo, Schema(), deps),
		itineraries: itineraries,
	}
}

// Entries returns the entries matching f, oldest first.
func (s *Service) Entries(ctx context.Context, f Filter) ([]models.LedgerModel, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	party := strings.ToLower(strings.TrimSpace(f.Party))
	out := make([]models.LedgerModel, 0, len(all))
	for _, e := range all {
		if party != "" && !strings.Contains(strings.ToLower(e.PartyName), party) {
			continue
		}
		day := dateOnly(e.EntryDate)
		if f.From != "" && day < f.From {
			continue
		}
		if f.To != "" && day > f.To {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntryDate < out[j].EntryDate
	})
	return out, nil
}

// Summarize totals entries. Balance is credit minus debit.
func Summarize(entries []models.LedgerModel) Summary {
	var sum Summary
	for _, e := range entries {
		switch e.EntryType {
		case models.EntryCredit:
			sum.Credit += e.Amount
		case models.EntryDebit:
			sum.Debit += e.Amount
		}
	}
	sum.Count = len(entries)
	sum.Balance = sum.Credit - sum.Debit
	sum.CreditFormatted = Rupees(sum.Credit)
	sum.DebitFormatted = Rupees(sum.Debit)
	sum.BalanceFormatted = Rupees(sum.Balance)
	return sum
}

// Invoice builds the invoice view of an entry, or (nil, nil) when missing.
func (s *Service) Invoice(ctx context.Context, id string) (*Invoice, error) {
	e, err := s.Get(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	inv := &Invoice{
		ID:              e.ID,
		InvoiceNumber:   e.InvoiceNumber,
		PartyName:       e.PartyName,
		EntryDate:       e.EntryDate,
		EntryType:       e.EntryType,
		PaymentMode:     e.PaymentMode,
		Reference:       e.Reference,
		Amount:          e.Amount,
		AmountFormatted: Rupees(e.Amount),
		Notes:           e.Notes,
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = invoiceNumber(e)
	}
	if e.ItineraryID != "" && s.itineraries != nil {
		it, err := s.itineraries.Get(ctx, e.ItineraryID)
		if err != nil {
			return nil, err
		}
		if it != nil {
			inv.Itinerary = it.Title
		}
	}
	return inv, nil
}

// Rupees formats an amount with the rupee sign and Indian digit grouping.
func Rupees(v float64) string {
	if v < 0 {
		return "-₹" + priceformat.Format(-v)
	}
	return "₹" + priceformat.Format(v)
}

func invoiceNumber(e *models.LedgerModel) string {
	day := strings.ReplaceAll(dateOnly(e.EntryDate), "-", "")
	suffix := strings.ToUpper(strings.ReplaceAll(e.ID, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("INV-%s-%s", day, suffix)
}

func dateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

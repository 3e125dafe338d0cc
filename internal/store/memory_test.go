package store

import (
	"context"
	"testing"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory[models.LedgerModel]()

	entry := &models.LedgerModel{PartyName: "Sharma Travels", EntryType: models.EntryCredit, Amount: 1200}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("Create did not assign an id")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("Create did not stamp created time")
	}

	got, err := repo.Get(ctx, entry.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: %v %v", got, err)
	}
	got.Amount = 1500
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, _ := repo.Get(ctx, entry.ID)
	if again.Amount != 1500 {
		t.Errorf("Amount = %v, want 1500", again.Amount)
	}

	ok, err := repo.Delete(ctx, entry.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	missing, err := repo.Get(ctx, entry.ID)
	if err != nil || missing != nil {
		t.Fatalf("Get after delete = %v, %v; want nil, nil", missing, err)
	}
	if ok, _ := repo.Delete(ctx, entry.ID); ok {
		t.Error("second Delete reported success")
	}
}

func TestMemoryListPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory[models.LedgerModel]()
	for _, name := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, &models.LedgerModel{PartyName: name}); err != nil {
			t.Fatal(err)
		}
	}

	items, pag, err := repo.List(ctx, pagination.Query{Page: 1, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].PartyName != "c" || items[1].PartyName != "b" {
		t.Fatalf("page 1 = %+v", items)
	}
	if pag.Total != 3 || pag.TotalPage != 2 || !pag.HasNextPage {
		t.Errorf("pagination = %+v", pag)
	}

	items, pag, _ = repo.List(ctx, pagination.Query{Page: 2, Size: 2})
	if len(items) != 1 || items[0].PartyName != "a" || pag.HasNextPage {
		t.Errorf("page 2 = %+v %+v", items, pag)
	}

	items, _, _ = repo.List(ctx, pagination.Query{Page: 5, Size: 2})
	if len(items) != 0 {
		t.Errorf("page past the end = %+v", items)
	}
}

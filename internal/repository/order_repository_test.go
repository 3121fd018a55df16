package repository

import (
    "context"
    "database/sql"
    "testing"

    "github.com/iliyamo/customer-order-api/internal/model"
    "github.com/iliyamo/customer-order-api/internal/testutil"
)

func seedOrderFixtures(t *testing.T, db *sql.DB) uint64 {
    t.Helper()
    uid := testutil.SeedUser(t, db, "orders@example.com", "pass", "CUSTOMER")
    return testutil.SeedCustomer(t, db, uid, "Olive", "oli-250823-0badf00d", "+200")
}

func TestOrderRepoCreateDefaults(t *testing.T) {
    db := testutil.OpenTestDB(t, "order_repo_create")
    repo := NewOrderRepo(db)
    ctx := context.Background()
    custID := seedOrderFixtures(t, db)

    o := &model.Order{CustomerID: custID, Item: "keyboard", Amount: 49.50, Quantity: 1}
    if err := repo.Create(ctx, o); err != nil {
        t.Fatalf("create order: %v", err)
    }
    if o.ID == 0 {
        t.Fatal("expected non-zero id")
    }
    if o.Status != model.OrderActive {
        t.Errorf("status = %q, want %q", o.Status, model.OrderActive)
    }
    if o.CreatedAt.IsZero() {
        t.Error("created_at should be populated")
    }

    got, err := repo.GetByID(ctx, o.ID)
    if err != nil {
        t.Fatalf("get by id: %v", err)
    }
    if got.Item != "keyboard" || got.Amount != 49.50 || got.Quantity != 1 {
        t.Errorf("unexpected order: %+v", got)
    }
}

func TestOrderRepoGetMissing(t *testing.T) {
    db := testutil.OpenTestDB(t, "order_repo_missing")
    repo := NewOrderRepo(db)

    if _, err := repo.GetByID(context.Background(), 999); err != ErrOrderNotFound {
        t.Errorf("expected ErrOrderNotFound, got %v", err)
    }
}

func TestOrderRepoListByCustomer(t *testing.T) {
    db := testutil.OpenTestDB(t, "order_repo_list")
    repo := NewOrderRepo(db)
    ctx := context.Background()
    custID := seedOrderFixtures(t, db)

    otherUID := testutil.SeedUser(t, db, "other@example.com", "pass", "CUSTOMER")
    otherCust := testutil.SeedCustomer(t, db, otherUID, "Oscar", "osc-250823-d15ea5ed", "+201")

    for i := 0; i < 3; i++ {
        if err := repo.Create(ctx, &model.Order{CustomerID: custID, Item: "item", Amount: 1, Quantity: 1}); err != nil {
            t.Fatalf("create order: %v", err)
        }
    }
    if err := repo.Create(ctx, &model.Order{CustomerID: otherCust, Item: "noise", Amount: 1, Quantity: 1}); err != nil {
        t.Fatalf("create order: %v", err)
    }

    mine, err := repo.ListByCustomer(ctx, custID, 0, 10)
    if err != nil {
        t.Fatalf("list by customer: %v", err)
    }
    if len(mine) != 3 {
        t.Errorf("len = %d, want 3", len(mine))
    }
    for _, o := range mine {
        if o.CustomerID != custID {
            t.Errorf("order %d belongs to customer %d, want %d", o.ID, o.CustomerID, custID)
        }
    }

    page, err := repo.ListByCustomer(ctx, custID, 2, 10)
    if err != nil {
        t.Fatalf("list page: %v", err)
    }
    if len(page) != 1 {
        t.Errorf("page len = %d, want 1", len(page))
    }

    all, err := repo.List(ctx, 0, 10)
    if err != nil {
        t.Fatalf("list all: %v", err)
    }
    if len(all) != 4 {
        t.Errorf("total = %d, want 4", len(all))
    }
}

func TestOrderRepoUpdateStatus(t *testing.T) {
    db := testutil.OpenTestDB(t, "order_repo_status")
    repo := NewOrderRepo(db)
    ctx := context.Background()
    custID := seedOrderFixtures(t, db)

    o := &model.Order{CustomerID: custID, Item: "mug", Amount: 5, Quantity: 1}
    if err := repo.Create(ctx, o); err != nil {
        t.Fatalf("create order: %v", err)
    }

    if err := repo.UpdateStatus(ctx, o.ID, model.OrderDelivered); err != nil {
        t.Fatalf("active -> delivered: %v", err)
    }
    got, err := repo.GetByID(ctx, o.ID)
    if err != nil {
        t.Fatalf("get after update: %v", err)
    }
    if got.Status != model.OrderDelivered {
        t.Errorf("status = %q, want %q", got.Status, model.OrderDelivered)
    }

    // Delivered is terminal.
    if err := repo.UpdateStatus(ctx, o.ID, model.OrderCancelled); err != ErrConflict {
        t.Errorf("expected ErrConflict for terminal order, got %v", err)
    }
    if err := repo.UpdateStatus(ctx, 999, model.OrderCancelled); err != ErrOrderNotFound {
        t.Errorf("expected ErrOrderNotFound, got %v", err)
    }
}

func TestOrderRepoDelete(t *testing.T) {
    db := testutil.OpenTestDB(t, "order_repo_delete")
    repo := NewOrderRepo(db)
    ctx := context.Background()
    custID := seedOrderFixtures(t, db)

    o := &model.Order{CustomerID: custID, Item: "cable", Amount: 3, Quantity: 1}
    if err := repo.Create(ctx, o); err != nil {
        t.Fatalf("create order: %v", err)
    }
    if err := repo.Delete(ctx, o.ID); err != nil {
        t.Fatalf("delete: %v", err)
    }
    if _, err := repo.GetByID(ctx, o.ID); err != ErrOrderNotFound {
        t.Errorf("order should be gone, got %v", err)
    }
    if err := repo.Delete(ctx, o.ID); err != sql.ErrNoRows {
        t.Errorf("expected sql.ErrNoRows on second delete, got %v", err)
    }
}

package repository

import (
    "context"
    "database/sql"
    "testing"

    "github.com/iliyamo/customer-order-api/internal/model"
    "github.com/iliyamo/customer-order-api/internal/testutil"
)

func TestCustomerRepoCreateAndGet(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_create")
    repo := NewCustomerRepo(db)
    ctx := context.Background()
    uid := testutil.SeedUser(t, db, "a@example.com", "pass", "CUSTOMER")

    c := &model.Customer{UserID: uid, Name: "Alice", Code: "ali-250823-deadbeef", Phone: "+15551234567"}
    if err := repo.Create(ctx, c); err != nil {
        t.Fatalf("create customer: %v", err)
    }
    if c.ID == 0 {
        t.Fatal("expected non-zero id")
    }
    if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
        t.Error("timestamps should be populated after create")
    }

    got, err := repo.GetByID(ctx, c.ID)
    if err != nil {
        t.Fatalf("get by id: %v", err)
    }
    if got.Name != "Alice" || got.Phone != "+15551234567" || got.UserID != uid {
        t.Errorf("unexpected customer: %+v", got)
    }

    byUser, err := repo.GetByUserID(ctx, uid)
    if err != nil {
        t.Fatalf("get by user id: %v", err)
    }
    if byUser.ID != c.ID {
        t.Errorf("GetByUserID id = %d, want %d", byUser.ID, c.ID)
    }
}

func TestCustomerRepoDuplicateUser(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_dup")
    repo := NewCustomerRepo(db)
    ctx := context.Background()
    uid := testutil.SeedUser(t, db, "b@example.com", "pass", "CUSTOMER")

    first := &model.Customer{UserID: uid, Name: "Bob", Code: "bob-250823-00000001", Phone: "+100"}
    if err := repo.Create(ctx, first); err != nil {
        t.Fatalf("first create: %v", err)
    }
    second := &model.Customer{UserID: uid, Name: "Bob Again", Code: "bob-250823-00000002", Phone: "+100"}
    if err := repo.Create(ctx, second); err != ErrCustomerExists {
        t.Errorf("expected ErrCustomerExists, got %v", err)
    }
}

func TestCustomerRepoGetMissing(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_missing")
    repo := NewCustomerRepo(db)

    if _, err := repo.GetByID(context.Background(), 999); err != ErrCustomerNotFound {
        t.Errorf("expected ErrCustomerNotFound, got %v", err)
    }
    if _, err := repo.GetByUserID(context.Background(), 999); err != ErrCustomerNotFound {
        t.Errorf("expected ErrCustomerNotFound, got %v", err)
    }
}

func TestCustomerRepoListPagination(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_list")
    repo := NewCustomerRepo(db)
    ctx := context.Background()

    emails := []string{"u1@x.com", "u2@x.com", "u3@x.com", "u4@x.com", "u5@x.com"}
    for _, e := range emails {
        uid := testutil.SeedUser(t, db, e, "pass", "CUSTOMER")
        testutil.SeedCustomer(t, db, uid, "C", "code-"+e, "+1")
    }

    page, err := repo.List(ctx, 1, 2)
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    if len(page) != 2 {
        t.Fatalf("page size = %d, want 2", len(page))
    }
    if page[0].ID >= page[1].ID {
        t.Error("list should be ordered by id ascending")
    }

    tail, err := repo.List(ctx, 4, 10)
    if err != nil {
        t.Fatalf("list tail: %v", err)
    }
    if len(tail) != 1 {
        t.Errorf("tail size = %d, want 1", len(tail))
    }
}

func TestCustomerRepoUpdateProfile(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_update")
    repo := NewCustomerRepo(db)
    ctx := context.Background()
    uid := testutil.SeedUser(t, db, "c@example.com", "pass", "CUSTOMER")
    id := testutil.SeedCustomer(t, db, uid, "Carol", "car-250823-cafebabe", "+101")

    name := "Caroline"
    if err := repo.UpdateProfile(ctx, id, &name, nil); err != nil {
        t.Fatalf("update name: %v", err)
    }
    got, err := repo.GetByID(ctx, id)
    if err != nil {
        t.Fatalf("get after update: %v", err)
    }
    if got.Name != "Caroline" {
        t.Errorf("name = %q, want Caroline", got.Name)
    }
    if got.Phone != "+101" {
        t.Errorf("phone should be untouched, got %q", got.Phone)
    }

    phone := "+102"
    if err := repo.UpdateProfile(ctx, id, nil, &phone); err != nil {
        t.Fatalf("update phone: %v", err)
    }
    got, _ = repo.GetByID(ctx, id)
    if got.Phone != "+102" {
        t.Errorf("phone = %q, want +102", got.Phone)
    }

    // No fields is a no-op, not an error.
    if err := repo.UpdateProfile(ctx, id, nil, nil); err != nil {
        t.Errorf("empty update should be a no-op, got %v", err)
    }

    if err := repo.UpdateProfile(ctx, 999, &name, nil); err != sql.ErrNoRows {
        t.Errorf("expected sql.ErrNoRows for missing customer, got %v", err)
    }
}

func TestCustomerRepoDeleteCascades(t *testing.T) {
    db := testutil.OpenTestDB(t, "cust_repo_delete")
    repo := NewCustomerRepo(db)
    orders := NewOrderRepo(db)
    ctx := context.Background()
    uid := testutil.SeedUser(t, db, "d@example.com", "pass", "CUSTOMER")
    id := testutil.SeedCustomer(t, db, uid, "Dave", "dav-250823-feedface", "+103")

    o := &model.Order{CustomerID: id, Item: "widget", Amount: 9.99, Quantity: 2}
    if err := orders.Create(ctx, o); err != nil {
        t.Fatalf("create order: %v", err)
    }

    if err := repo.DeleteByID(ctx, id); err != nil {
        t.Fatalf("delete customer: %v", err)
    }
    if _, err := repo.GetByID(ctx, id); err != ErrCustomerNotFound {
        t.Errorf("customer should be gone, got %v", err)
    }
    if _, err := orders.GetByID(ctx, o.ID); err != ErrOrderNotFound {
        t.Errorf("orders should be gone with the customer, got %v", err)
    }

    if err := repo.DeleteByID(ctx, id); err != sql.ErrNoRows {
        t.Errorf("expected sql.ErrNoRows on second delete, got %v", err)
    }
}

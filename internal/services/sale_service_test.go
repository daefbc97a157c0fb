package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
)

func newTestSaleService(sales *fakeSaleStore, items *fakeItemStore) *SaleService {
	return NewSaleService(sales, items, &fakeEmployeeStore{}, &fakeStockLogStore{})
}

func creditSale(id, customer string, amount float64) *models.Sale {
	return &models.Sale{ID: id, PaymentMethod: models.PaymentCredit, CreditCustomerName: customer, TotalAmount: amount}
}

func TestRecordSaleValidation(t *testing.T) {
	svc := newTestSaleService(&fakeSaleStore{}, &fakeItemStore{})

	_, err := svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		PaymentMethod: models.PaymentCash,
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("empty cart: expected ValidationError, got %v", err)
	}

	_, err = svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		Lines:         []models.CartLine{{ItemID: "tea", Qty: 1}},
		PaymentMethod: models.PaymentCredit,
		// no customer name
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("credit without customer: expected ValidationError, got %v", err)
	}

	_, err = svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		Lines:              []models.CartLine{{ItemID: "tea", Qty: 1}},
		PaymentMethod:      models.PaymentCredit,
		CreditCustomerName: "   ",
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("blank customer name: expected ValidationError, got %v", err)
	}
}

func TestRecordSaleItemLoadErrors(t *testing.T) {
	// A missing item is the caller's mistake; a storage failure is not.
	svc := newTestSaleService(&fakeSaleStore{}, &fakeItemStore{})
	_, err := svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		Lines:         []models.CartLine{{ItemID: "ghost", Qty: 1}},
		PaymentMethod: models.PaymentCash,
	})
	if !apperrors.IsNotFound(err) {
		t.Errorf("unknown item: expected NotFoundError, got %v", err)
	}

	svc = newTestSaleService(&fakeSaleStore{}, &fakeItemStore{getErr: errors.New("connection refused")})
	_, err = svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		Lines:         []models.CartLine{{ItemID: "tea", Qty: 1}},
		PaymentMethod: models.PaymentCash,
	})
	if !apperrors.IsStorage(err) {
		t.Errorf("store failure: expected StorageError, got %v", err)
	}
}

func TestRecordSaleTokensUniqueUnderConcurrentCheckout(t *testing.T) {
	const checkouts = 25

	store := &fakeSaleStore{}
	items := &fakeItemStore{items: []*models.Item{
		{ID: "tea", Name: "Tea", Price: 10, CostPerUnit: 4, StockType: models.StockUnlimited},
	}}
	svc := newTestSaleService(store, items)

	var wg sync.WaitGroup
	errs := make([]error, checkouts)
	sales := make([]*models.Sale, checkouts)
	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sales[i], errs[i] = svc.RecordSale(context.Background(), &models.CreateSaleRequest{
				Lines:         []models.CartLine{{ItemID: "tea", Qty: 1}},
				PaymentMethod: models.PaymentCash,
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, checkouts)
	for i := 0; i < checkouts; i++ {
		if errs[i] != nil {
			t.Fatalf("checkout %d failed: %v", i, errs[i])
		}
		token := sales[i].TokenNumber
		if seen[token] {
			t.Errorf("token %d assigned twice", token)
		}
		seen[token] = true
	}
	// With every checkout on the same day the tokens must be exactly 1..N.
	for token := 1; token <= checkouts; token++ {
		if !seen[token] {
			t.Errorf("token %d missing from the day's sequence", token)
		}
	}
}

func TestRecordSaleSnapshotsAndAutoConfirm(t *testing.T) {
	store := &fakeSaleStore{}
	items := &fakeItemStore{items: []*models.Item{
		{ID: "tea", Name: "Tea", Price: 10, CostPerUnit: 4, StockType: models.StockUnlimited, AssignedEmployeeID: "auto-emp"},
		{ID: "snack", Name: "Samosa", Price: 15, CostPerUnit: 6, StockType: models.StockUnlimited, AssignedEmployeeID: "manual-emp"},
	}}
	svc := NewSaleService(store, items, &fakeEmployeeStore{employees: []*models.Employee{
		{ID: "auto-emp", ConfirmationMode: models.ConfirmationAuto},
		{ID: "manual-emp", ConfirmationMode: models.ConfirmationManual},
	}}, &fakeStockLogStore{})

	sale, err := svc.RecordSale(context.Background(), &models.CreateSaleRequest{
		Lines:         []models.CartLine{{ItemID: "tea", Qty: 2}, {ItemID: "snack", Qty: 3}},
		PaymentMethod: models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	if sale.TotalAmount != 65 || sale.TotalCost != 26 {
		t.Errorf("totals = %v/%v, want 65/26", sale.TotalAmount, sale.TotalCost)
	}
	if sale.Items[0].Status != models.OrderItemDone {
		t.Errorf("auto-confirm line should start done, got %s", sale.Items[0].Status)
	}
	if sale.Items[1].Status != models.OrderItemPending {
		t.Errorf("manual line should start pending, got %s", sale.Items[1].Status)
	}
}

func TestGroupCreditOutstanding(t *testing.T) {
	sales := []*models.Sale{
		creditSale("s1", "Ravi", 50),
		creditSale("s2", "Meena", 120),
		creditSale("s3", "Ravi", 30),
		{ID: "s4", PaymentMethod: models.PaymentCash, TotalAmount: 500},
		{ID: "s5", PaymentMethod: models.PaymentCredit, TotalAmount: 40}, // no name, skipped
	}

	got := GroupCreditOutstanding(sales)

	if len(got) != 2 {
		t.Fatalf("groups = %d, want 2", len(got))
	}
	if got[0].CustomerName != "Meena" || got[0].Amount != 120 {
		t.Errorf("first group = %+v, want Meena 120", got[0])
	}
	if got[1].CustomerName != "Ravi" || got[1].Amount != 80 {
		t.Errorf("second group = %+v, want Ravi 80", got[1])
	}
	if len(got[1].SaleIDs) != 2 || got[1].SaleIDs[0] != "s1" || got[1].SaleIDs[1] != "s3" {
		t.Errorf("Ravi sale ids = %v, want [s1 s3]", got[1].SaleIDs)
	}
}

func TestGroupCreditOutstandingEmpty(t *testing.T) {
	if got := GroupCreditOutstanding(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

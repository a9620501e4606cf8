package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
	"chuipos/pkg/logger"
)

func newSeeded(t *testing.T) *Store {
	t.Helper()
	s := New(DefaultConfig(), logger.Nop())
	s.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, Seed(context.Background(), s))
	return s
}

func TestSeed_WalkInIsFirst(t *testing.T) {
	s := newSeeded(t)

	customers := s.Customers(context.Background())
	require.NotEmpty(t, customers)
	assert.Equal(t, int64(1), customers[0].ID)
	assert.Equal(t, "Walk-in Customer", customers[0].Name)
}

func TestAuthenticate(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	user, err := s.Authenticate(ctx, "cashier01", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Front Counter", user.FullName)
	assert.Contains(t, user.Permissions, PermSaleCreate)

	_, err = s.Authenticate(ctx, "cashier01", "0000")
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
	assert.Equal(t, MsgInvalidCredentials, apperror.UserMessage(err))

	_, err = s.Authenticate(ctx, "nobody", "1234")
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
}

func TestAuthenticate_LocksAfterRepeatedFailures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLoginAttempts = 2
	s := New(cfg, nil)
	ctx := context.Background()
	require.NoError(t, s.AddUser(ctx, "cashier02", "Night Shift", "5678", nil))

	for i := 0; i < 2; i++ {
		_, err := s.Authenticate(ctx, "cashier02", "0000")
		require.Error(t, err)
	}

	_, err := s.Authenticate(ctx, "cashier02", "5678")
	assert.True(t, apperror.HasCode(err, apperror.CodeForbidden))
}

func TestProducts_Filter(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	fuel := int64(2)
	products := s.Products(ctx, ProductFilter{CategoryID: &fuel})
	require.Len(t, products, 2)
	assert.Equal(t, "Petrol", products[0].Name)
	assert.Equal(t, "Fuel", products[0].Category.Name)

	products = s.Products(ctx, ProductFilter{Query: "wat"})
	require.Len(t, products, 1)
	assert.Equal(t, "WATER-1L", products[0].Code)

	assert.Len(t, s.Products(ctx, ProductFilter{}), 6)
	assert.Len(t, s.Categories(ctx), 3)
}

func TestCreateCustomer(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	phone := " 0700111222 "
	c, err := s.CreateCustomer(ctx, customerRequest("  Ali  ", phone))
	require.NoError(t, err)
	assert.Equal(t, "Ali", c.Name)
	require.NotNil(t, c.PhoneNumber)
	assert.Equal(t, "0700111222", *c.PhoneNumber)

	_, err = s.CreateCustomer(ctx, customerRequest("Ali Two", "0700111222"))
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))

	_, err = s.CreateCustomer(ctx, customerRequest(" ", ""))
	assert.True(t, apperror.IsValidation(err))
}

type line struct {
	productID int64
	qty       string
}

func holdRequest(customerID int64, lines ...line) heldorder.Request {
	req := heldorder.Request{CustomerID: customerID}
	for _, l := range lines {
		req.Items = append(req.Items, heldorder.ItemRequest{ProductID: l.productID, Quantity: types.MustMoney(l.qty)})
	}
	return req
}

func TestHeldOrders_Lifecycle(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	first, err := s.CreateHeldOrder(ctx, holdRequest(2, line{1, "2"}, line{3, "1.5"}))
	require.NoError(t, err)
	assert.Equal(t, "HO-2026-00001", first.Ref)
	assert.Equal(t, "Jane Wanjiku", first.CustomerName)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "Petrol", first.Items[1].ProductName)
	assert.True(t, first.Items[1].IsVariablePriced)
	assert.Equal(t, "180.50", types.Display(first.Items[1].Price))

	second, err := s.CreateHeldOrder(ctx, holdRequest(1, line{2, "1"}))
	require.NoError(t, err)
	assert.Equal(t, "HO-2026-00002", second.Ref)

	updated, err := s.UpdateHeldOrder(ctx, first.ID, holdRequest(1, line{2, "4"}))
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, first.Ref, updated.Ref)
	assert.Equal(t, "Walk-in Customer", updated.CustomerName)
	require.Len(t, updated.Items, 1)

	list := s.HeldOrders(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, s.DeleteHeldOrder(ctx, first.ID))
	assert.True(t, apperror.IsNotFound(s.DeleteHeldOrder(ctx, first.ID)))
	assert.Len(t, s.HeldOrders(ctx), 1)
}

func TestHeldOrders_RejectsUnknownReferences(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	_, err := s.CreateHeldOrder(ctx, holdRequest(99, line{1, "1"}))
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.CreateHeldOrder(ctx, holdRequest(1, line{99, "1"}))
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.UpdateHeldOrder(ctx, 42, holdRequest(1, line{1, "1"}))
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.CreateHeldOrder(ctx, holdRequest(1))
	assert.True(t, apperror.IsValidation(err))
}

func saleRequest(customerID int64, method sale.PaymentMethod, amount string) sale.Request {
	return sale.Request{
		CustomerID: customerID,
		Items: []sale.Item{
			{ProductID: 1, Quantity: types.MustMoney("2"), Price: types.MustMoney("60")},
		},
		Payments: []sale.Payment{{Amount: types.MustMoney(amount), Method: method}},
	}
}

func TestCreateSale(t *testing.T) {
	s := newSeeded(t)
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{Username: "cashier01"})

	rec, err := s.CreateSale(ctx, saleRequest(1, sale.MethodCash, "120"))
	require.NoError(t, err)
	assert.Equal(t, "SL-2026-00001", rec.Ref)
	assert.Equal(t, "cashier01", rec.Cashier)
	assert.Equal(t, "120.00", types.Display(rec.Total))
	assert.False(t, rec.IsCreditSale)

	rec, err = s.CreateSale(ctx, saleRequest(2, sale.MethodCredit, "120"))
	require.NoError(t, err)
	assert.True(t, rec.IsCreditSale)

	assert.Len(t, s.Sales(ctx), 2)
}

func TestCreateSale_Rejections(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	_, err := s.CreateSale(ctx, saleRequest(1, sale.MethodCash, "100"))
	assert.True(t, apperror.IsValidation(err), "unbalanced payments")

	_, err = s.CreateSale(ctx, saleRequest(1, sale.MethodCredit, "120"))
	assert.True(t, apperror.HasCode(err, CodeCreditWalkIn))

	_, err = s.CreateSale(ctx, saleRequest(77, sale.MethodCash, "120"))
	assert.True(t, apperror.IsNotFound(err))

	assert.Empty(t, s.Sales(ctx))
}

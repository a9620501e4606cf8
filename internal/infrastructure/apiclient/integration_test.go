package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
	"chuipos/internal/core/security"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/cart"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/sale"
	v1 "chuipos/internal/infrastructure/http/v1"
	"chuipos/internal/infrastructure/session"
	"chuipos/internal/infrastructure/storage/memory"
	"chuipos/pkg/logger"
)

type terminal struct {
	client       *Client
	sessions     *session.Store
	auth         *auth.Service
	engine       *cart.Engine
	store        *memory.Store
	authFailures atomic.Int32
}

// newTerminal wires a full client stack against the in-memory backend.
func newTerminal(t *testing.T) *terminal {
	t.Helper()

	store := memory.New(memory.DefaultConfig(), logger.Nop())
	require.NoError(t, memory.Seed(context.Background(), store))

	jwtService, err := security.NewJWTService(security.DefaultJWTConfig("integration"))
	require.NoError(t, err)

	srv := httptest.NewServer(v1.NewHandler(v1.RouterConfig{
		Store:        store,
		Logger:       logger.Nop(),
		JWTValidator: jwtService,
		TokenIssuer:  jwtService,
	}))
	t.Cleanup(srv.Close)

	sessions, err := session.Open("")
	require.NoError(t, err)

	term := &terminal{sessions: sessions, store: store}
	term.client, err = New(Config{
		BaseURL: srv.URL + v1.BasePath,
		Timeout: 5 * time.Second,
		Tokens:  sessions,
		OnAuthFailure: func(int) {
			term.authFailures.Add(1)
			_ = sessions.Clear()
		},
		Logger: logger.Nop(),
	})
	require.NoError(t, err)

	term.auth = auth.NewService(term.client, sessions)
	term.engine = cart.NewEngine(cart.Config{
		Catalog:    catalog.NewService(term.client),
		Customers:  customer.NewDirectory(term.client, 1),
		Sales:      sale.NewService(term.client),
		HeldOrders: term.client,
		Logger:     logger.Nop(),
	})
	return term
}

func (term *terminal) login(t *testing.T) {
	t.Helper()
	_, err := term.auth.Login(context.Background(), auth.Credentials{Username: "cashier01", PIN: "1234"})
	require.NoError(t, err)
	require.NoError(t, term.engine.Load(context.Background()))
}

func findProduct(t *testing.T, products []catalog.Product, code string) catalog.Product {
	t.Helper()
	for _, p := range products {
		if p.Code == code {
			return p
		}
	}
	t.Fatalf("product %s not loaded", code)
	return catalog.Product{}
}

func userWith(perms []string) appctx.UserContext {
	return appctx.UserContext{Username: "cashier01", Permissions: perms}
}

func TestIntegration_LoginAndLoad(t *testing.T) {
	term := newTerminal(t)
	term.login(t)

	current, ok := term.sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "Front Counter", current.FullName)
	assert.True(t, term.sessions.IsLoggedIn())
	assert.True(t, term.sessions.HasPermission(memory.PermSaleCreate))

	exp, ok := session.ExpiresAt(current.Token)
	require.True(t, ok)
	assert.True(t, exp.After(time.Now()))

	snap := term.engine.Snapshot()
	require.NotNil(t, snap.Customer)
	assert.Equal(t, "Walk-in Customer", snap.Customer.Name)
	assert.Len(t, term.engine.Products(), 6)
	assert.Len(t, term.engine.Categories(), 3)
	assert.NoError(t, term.client.CheckHealth(context.Background()))
}

func TestIntegration_WrongPIN(t *testing.T) {
	term := newTerminal(t)

	_, err := term.auth.Login(context.Background(), auth.Credentials{Username: "cashier01", PIN: "0000"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeServer))
	assert.Equal(t, memory.MsgInvalidCredentials, apperror.UserMessage(err))
	assert.Zero(t, term.authFailures.Load())
	assert.False(t, term.sessions.IsLoggedIn())
}

func TestIntegration_MixedTenderSale(t *testing.T) {
	term := newTerminal(t)
	term.login(t)
	ctx := context.Background()

	soda := findProduct(t, term.engine.Products(), "SODA-500")
	petrol := findProduct(t, term.engine.Products(), "PETROL")

	term.engine.AddProduct(soda)
	term.engine.AddProduct(soda)
	require.True(t, term.engine.AddProduct(petrol))
	require.NoError(t, term.engine.ConfirmVariableAmount(types.MustMoney("361")))

	snap := term.engine.Snapshot()
	assert.Equal(t, "481.00", types.Display(snap.Total))

	require.NoError(t, term.engine.AddPayment(ctx, sale.Payment{Amount: types.MustMoney("400"), Method: sale.MethodCash}))
	require.NoError(t, term.engine.AddPayment(ctx, sale.Payment{Amount: types.MustMoney("81"), Method: sale.MethodMobileMoney}))
	require.NoError(t, term.engine.SubmitSale(ctx))

	assert.Equal(t, cart.SubmissionSuccess, term.engine.Submission().Status)
	assert.Empty(t, term.engine.Snapshot().Lines)

	sales := term.store.Sales(ctx)
	require.Len(t, sales, 1)
	assert.Equal(t, "481.00", types.Display(sales[0].Total))
	assert.Equal(t, sale.MethodMobileMoney, sales[0].Payments[1].Method)
	assert.Equal(t, "cashier01", sales[0].Cashier)
}

func TestIntegration_HoldResumeAndUpdate(t *testing.T) {
	term := newTerminal(t)
	term.login(t)
	ctx := context.Background()

	water := findProduct(t, term.engine.Products(), "WATER-1L")
	term.engine.AddProduct(water)

	held, err := term.engine.HoldOrder(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^HO-\d{4}-00001$`, held.Ref)
	assert.Empty(t, term.engine.Snapshot().Lines)

	orders, err := term.engine.RefreshHeldOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].CreatedAt)

	require.NoError(t, term.engine.ResumeOrder(ctx, orders[0]))
	snap := term.engine.Snapshot()
	require.Len(t, snap.Lines, 1)
	require.NotNil(t, snap.ActiveHeldOrderID)
	assert.Equal(t, held.ID, *snap.ActiveHeldOrderID)

	term.engine.IncrementQuantity(water.ID)
	_, err = term.engine.HoldOrder(ctx)
	require.NoError(t, err)

	stored := term.store.HeldOrders(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, held.Ref, stored[0].Ref)
	assert.Equal(t, "2", stored[0].Items[0].Quantity.String())

	require.NoError(t, term.engine.DeleteHeldOrder(ctx, held.ID))
	assert.Empty(t, term.store.HeldOrders(ctx))
}

func TestIntegration_SessionExpiry(t *testing.T) {
	term := newTerminal(t)
	term.login(t)

	require.NoError(t, term.sessions.Save(auth.Session{Token: "forged", Username: "cashier01"}))

	_, err := term.client.ListHeldOrders(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsSessionExpired(err))
	assert.Equal(t, int32(1), term.authFailures.Load())
	assert.False(t, term.sessions.IsLoggedIn())
}

func TestIntegration_CompressedResponses(t *testing.T) {
	store := memory.New(memory.DefaultConfig(), logger.Nop())
	require.NoError(t, memory.Seed(context.Background(), store))
	jwtService, err := security.NewJWTService(security.DefaultJWTConfig("gzip"))
	require.NoError(t, err)
	handler := v1.NewHandler(v1.RouterConfig{Store: store, JWTValidator: jwtService, TokenIssuer: jwtService})

	token, _, err := jwtService.GenerateAccessToken(userWith(memory.CashierPermissions))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, v1.BasePath+"/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

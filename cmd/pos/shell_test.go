package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/security"
	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/cart"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/sale"
	"chuipos/internal/domain/status"
	"chuipos/internal/infrastructure/apiclient"
	v1 "chuipos/internal/infrastructure/http/v1"
	"chuipos/internal/infrastructure/session"
	"chuipos/internal/infrastructure/storage/memory"
	"chuipos/pkg/logger"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *memory.Store) {
	t.Helper()

	store := memory.New(memory.DefaultConfig(), logger.Nop())
	require.NoError(t, memory.Seed(context.Background(), store))
	jwtService, err := security.NewJWTService(security.DefaultJWTConfig("shell"))
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

	client, err := apiclient.New(apiclient.Config{
		BaseURL: srv.URL + v1.BasePath,
		Timeout: 5 * time.Second,
		Tokens:  sessions,
		Logger:  logger.Nop(),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	catalogSvc := catalog.NewService(client)
	sh := &shell{
		out: newConsole(&buf),
		engine: cart.NewEngine(cart.Config{
			Catalog:    catalogSvc,
			Customers:  customer.NewDirectory(client, 1),
			Sales:      sale.NewService(client),
			HeldOrders: client,
			Logger:     logger.Nop(),
		}),
		auth:     auth.NewService(client, sessions),
		sessions: sessions,
		monitor:  status.NewMonitor(client, time.Minute, nil, logger.Nop()),
		log:      logger.Nop(),
	}
	sh.searcher = catalog.NewSearcher(catalogSvc, 0, sh.onSearchResult)
	t.Cleanup(sh.searcher.Wait)
	return sh, &buf, store
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestShell_RequiresLogin(t *testing.T) {
	sh, out, _ := newTestShell(t)

	sh.run(context.Background(), script("list", "bogus"), false)
	assert.Contains(t, out.String(), "Please login first.")
	assert.Contains(t, out.String(), `Unknown command "bogus"`)
}

func TestShell_SaleFlow(t *testing.T) {
	sh, out, store := newTestShell(t)

	sh.run(context.Background(), script(
		"login cashier01 1234",
		"add 1",
		"add 3",
		"var 361",
		"pay 400",
		"pay 21 mpesa till 42",
		"submit",
		"quit",
		"add 2",
	), false)

	text := out.String()
	assert.Contains(t, text, "Logged in as Front Counter")
	assert.Contains(t, text, "Enter amount for Petrol")
	assert.Contains(t, text, "Total: 421.00")
	assert.Contains(t, text, "Sale completed")

	sales := store.Sales(context.Background())
	require.Len(t, sales, 1)
	assert.Equal(t, "421.00", sales[0].Total.StringFixed(2))
	require.Len(t, sales[0].Payments, 2)
	assert.Equal(t, sale.MethodMobileMoney, sales[0].Payments[1].Method)
}

func TestShell_HoldAndResume(t *testing.T) {
	sh, out, store := newTestShell(t)

	sh.run(context.Background(), script(
		"login cashier01 1234",
		"customer select 2",
		"add 2",
		"inc 2",
		"hold",
		"held",
		"resume 1",
	), false)

	text := out.String()
	assert.Regexp(t, `Held as HO-\d{4}-00001`, text)
	assert.Contains(t, text, "Jane Wanjiku")
	assert.Contains(t, text, "held order #1")

	orders := store.HeldOrders(context.Background())
	require.Len(t, orders, 1)
	assert.Equal(t, int64(2), orders[0].CustomerID)
}

func TestShell_InputErrors(t *testing.T) {
	sh, out, _ := newTestShell(t)

	sh.run(context.Background(), script(
		"login cashier01 1234",
		"add x",
		"add 999",
		"var 10",
		"pay 5 bitcoin",
		"submit",
	), false)

	text := out.String()
	assert.Contains(t, text, `invalid id "x"`)
	assert.Contains(t, text, "Product not found")
	assert.Contains(t, text, "no product is awaiting an amount")
	assert.Contains(t, text, `unknown payment method "BITCOIN"`)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0712345678"))
	assert.False(t, isDigits("07a"))
	assert.False(t, isDigits(""))
}

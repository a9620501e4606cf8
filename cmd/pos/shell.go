package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/cart"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
	"chuipos/internal/domain/status"
	"chuipos/internal/infrastructure/session"
	"chuipos/pkg/logger"
)

// console serializes writes from the prompt loop and background callbacks.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, a...)
}

func (c *console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, a...)
}

type command struct {
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

type shell struct {
	out      *console
	engine   *cart.Engine
	auth     *auth.Service
	sessions *session.Store
	searcher *catalog.Searcher
	monitor  *status.Monitor
	log      *logger.Logger

	mu      sync.Mutex
	results []catalog.Product
}

func (sh *shell) commands() map[string]command {
	return map[string]command{
		"help":     {usage: "help", run: sh.help},
		"login":    {usage: "login <username> <pin>", run: sh.login},
		"logout":   {usage: "logout", run: sh.logout},
		"status":   {usage: "status", run: sh.status},
		"list":     {usage: "list [categoryId|all]", auth: true, run: sh.list},
		"cats":     {usage: "cats", auth: true, run: sh.cats},
		"search":   {usage: "search <text>", auth: true, run: sh.search},
		"add":      {usage: "add <productId>", auth: true, run: sh.add},
		"var":      {usage: "var <amount>|cancel", auth: true, run: sh.variable},
		"inc":      {usage: "inc <productId>", auth: true, run: sh.inc},
		"dec":      {usage: "dec <productId>", auth: true, run: sh.dec},
		"rm":       {usage: "rm <productId>", auth: true, run: sh.rm},
		"cart":     {usage: "cart", auth: true, run: sh.showCart},
		"pay":      {usage: "pay [amount] [method] [notes]", auth: true, run: sh.pay},
		"unpay":    {usage: "unpay <n>", auth: true, run: sh.unpay},
		"customer": {usage: "customer [query] | customer select <id> | customer new <name> [phone]", auth: true, run: sh.customer},
		"hold":     {usage: "hold", auth: true, run: sh.hold},
		"held":     {usage: "held", auth: true, run: sh.held},
		"resume":   {usage: "resume <heldOrderId>", auth: true, run: sh.resume},
		"delheld":  {usage: "delheld <heldOrderId>", auth: true, run: sh.delheld},
		"submit":   {usage: "submit", auth: true, run: sh.submit},
		"clear":    {usage: "clear [keep]", auth: true, run: sh.clear},
	}
}

func (sh *shell) run(ctx context.Context, in io.Reader, interactive bool) {
	cmds := sh.commands()
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			sh.out.Printf("> ")
		}
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name, args := strings.ToLower(fields[0]), fields[1:]
		if name == "quit" || name == "exit" {
			return
		}

		cmd, ok := cmds[name]
		if !ok {
			sh.out.Printf("Unknown command %q. Type help for a list.\n", name)
			continue
		}
		if cmd.auth && !sh.sessions.IsLoggedIn() {
			sh.out.Println("Please login first.")
			continue
		}

		err := cmd.run(ctx, args)
		sh.report(err)
	}
}

// report prints the engine message, falling back to the error text.
func (sh *shell) report(err error) {
	if msg := sh.engine.Message(); msg != "" {
		sh.out.Println(msg)
		sh.engine.ClearMessage()
		return
	}
	if err != nil {
		sh.out.Println("Error:", apperror.UserMessage(err))
	}
}

func (sh *shell) afterLogin(ctx context.Context) {
	current, _ := sh.sessions.Current()
	sh.out.Printf("Logged in as %s (%s)\n", current.FullName, current.Username)
	if err := sh.engine.Load(ctx); err != nil {
		sh.report(err)
		return
	}
	sh.report(nil)
	sh.out.Printf("%d products, %d categories loaded.\n",
		len(sh.engine.Products()), len(sh.engine.Categories()))
}

// --- Session ---

func (sh *shell) help(_ context.Context, _ []string) error {
	cmds := sh.commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sh.out.Println("  " + cmds[name].usage)
	}
	sh.out.Println("  quit")
	return nil
}

func (sh *shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("login <username> <pin>")
	}
	if _, err := sh.auth.Login(ctx, auth.Credentials{Username: args[0], PIN: args[1]}); err != nil {
		return err
	}
	sh.afterLogin(ctx)
	return nil
}

func (sh *shell) logout(ctx context.Context, _ []string) error {
	sh.searcher.Cancel()
	sh.engine.ClearCart(false)
	if err := sh.auth.Logout(ctx); err != nil {
		return err
	}
	sh.out.Println("Logged out.")
	return nil
}

func (sh *shell) status(_ context.Context, _ []string) error {
	state := "offline"
	if sh.monitor.Online() {
		state = "online"
	}
	sh.out.Println("Server:", state)
	if current, ok := sh.sessions.Current(); ok {
		line := "Cashier: " + current.Username
		if exp, ok := session.ExpiresAt(current.Token); ok {
			line += " (session expires " + exp.Local().Format("15:04") + ")"
		}
		sh.out.Println(line)
	} else {
		sh.out.Println("Cashier: not logged in")
	}
	return nil
}

// --- Catalog ---

func (sh *shell) list(ctx context.Context, args []string) error {
	var categoryID *int64
	if len(args) > 0 && args[0] != "all" {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		categoryID = &id
	}
	if err := sh.engine.SelectCategory(ctx, categoryID); err != nil {
		return err
	}
	renderProducts(sh.out, sh.engine.Products())
	return nil
}

func (sh *shell) cats(_ context.Context, _ []string) error {
	for _, c := range sh.engine.Categories() {
		sh.out.Printf("  %3d  %s\n", c.ID, c.Name)
	}
	return nil
}

func (sh *shell) search(ctx context.Context, args []string) error {
	sh.searcher.Search(ctx, strings.Join(args, " "))
	return nil
}

func (sh *shell) onSearchResult(query string, products []catalog.Product, err error) {
	if err != nil {
		sh.out.Printf("Search %q failed: %s\n", query, apperror.UserMessage(err))
		return
	}
	sh.mu.Lock()
	sh.results = products
	sh.mu.Unlock()

	sh.out.Printf("Results for %q:\n", query)
	renderProducts(sh.out, products)
}

// findProduct looks in the visible list first, then in the last search.
func (sh *shell) findProduct(id int64) (catalog.Product, bool) {
	for _, p := range sh.engine.Products() {
		if p.ID == id {
			return p, true
		}
	}
	sh.mu.Lock()
	defer sh.mu.Unlock()
	for _, p := range sh.results {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// --- Cart ---

func (sh *shell) add(_ context.Context, args []string) error {
	id, err := singleID(args, "add <productId>")
	if err != nil {
		return err
	}
	p, ok := sh.findProduct(id)
	if !ok {
		return apperror.NewNotFound("Product", id)
	}
	if sh.engine.AddProduct(p) {
		sh.out.Printf("Enter amount for %s (price %s/%s): var <amount>\n",
			p.Name, types.Display(p.Price), p.SaleUnitName())
		return nil
	}
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) variable(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("var <amount>|cancel")
	}
	if args[0] == "cancel" {
		sh.engine.CancelVariableAmount()
		return nil
	}
	amount, err := parseMoney(args[0])
	if err != nil {
		return err
	}
	if err := sh.engine.ConfirmVariableAmount(amount); err != nil {
		return err
	}
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) inc(_ context.Context, args []string) error {
	return sh.lineOp(args, "inc <productId>", sh.engine.IncrementQuantity)
}

func (sh *shell) dec(_ context.Context, args []string) error {
	return sh.lineOp(args, "dec <productId>", sh.engine.DecrementQuantity)
}

func (sh *shell) rm(_ context.Context, args []string) error {
	return sh.lineOp(args, "rm <productId>", sh.engine.RemoveItem)
}

func (sh *shell) lineOp(args []string, usage string, op func(int64) bool) error {
	id, err := singleID(args, usage)
	if err != nil {
		return err
	}
	if !op(id) {
		sh.out.Println("Nothing changed.")
		return nil
	}
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) showCart(_ context.Context, _ []string) error {
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) clear(_ context.Context, args []string) error {
	sh.engine.ClearCart(len(args) > 0 && args[0] == "keep")
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

// --- Payments ---

func (sh *shell) pay(ctx context.Context, args []string) error {
	form := sh.engine.NewPaymentForm()
	var changes sale.PaymentFormChanges

	if len(args) > 0 {
		amount, err := parseMoney(args[0])
		if err != nil {
			return err
		}
		changes.Amount = &amount
	}
	if len(args) > 1 {
		method, err := sale.ParseMethod(strings.ToUpper(args[1]))
		if err != nil {
			return err
		}
		changes.Method = &method
	}
	if len(args) > 2 {
		notes := strings.Join(args[2:], " ")
		changes.Notes = &notes
	}

	payment, err := form.WithChanges(changes).Payment(ctx)
	if err != nil {
		return err
	}
	if err := sh.engine.AddPayment(ctx, payment); err != nil {
		return err
	}
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) unpay(_ context.Context, args []string) error {
	n, err := singleID(args, "unpay <n>")
	if err != nil {
		return err
	}
	payments := sh.engine.Snapshot().Payments
	if n < 1 || int(n) > len(payments) {
		return apperror.NewNotFound("Payment", n)
	}
	sh.engine.RemovePayment(payments[n-1])
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

// --- Customers ---

func (sh *shell) customer(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "select":
			return sh.selectCustomer(args[1:])
		case "new":
			return sh.newCustomer(ctx, args[1:])
		}
	}
	for _, c := range sh.engine.FilterCustomers(strings.Join(args, " ")) {
		sh.out.Println("  " + customerLine(c))
	}
	return nil
}

func (sh *shell) selectCustomer(args []string) error {
	id, err := singleID(args, "customer select <id>")
	if err != nil {
		return err
	}
	for _, c := range sh.engine.FilterCustomers("") {
		if c.ID == id {
			sh.engine.SelectCustomer(c)
			sh.out.Println("Customer:", c.Name)
			return nil
		}
	}
	return apperror.NewNotFound("Customer", id)
}

// newCustomer treats a trailing all-digit argument as the phone number.
func (sh *shell) newCustomer(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("customer new <name> [phone]")
	}
	var form customer.Form
	if last := args[len(args)-1]; len(args) > 1 && isDigits(last) {
		form.Phone = last
		args = args[:len(args)-1]
	}
	form.Name = strings.Join(args, " ")

	created, err := sh.engine.CreateCustomer(ctx, form)
	if err != nil {
		return err
	}
	sh.out.Println("Customer:", customerLine(*created))
	return nil
}

// --- Held orders ---

func (sh *shell) hold(ctx context.Context, _ []string) error {
	held, err := sh.engine.HoldOrder(ctx)
	if err != nil {
		return err
	}
	sh.out.Printf("Held as %s.\n", held.Ref)
	return nil
}

func (sh *shell) held(ctx context.Context, _ []string) error {
	orders, err := sh.engine.RefreshHeldOrders(ctx)
	if err != nil {
		return err
	}
	renderHeldOrders(sh.out, orders)
	return nil
}

func (sh *shell) resume(ctx context.Context, args []string) error {
	id, err := singleID(args, "resume <heldOrderId>")
	if err != nil {
		return err
	}
	order, ok := findHeld(sh.engine.HeldOrders(), id)
	if !ok {
		orders, err := sh.engine.RefreshHeldOrders(ctx)
		if err != nil {
			return err
		}
		if order, ok = findHeld(orders, id); !ok {
			return apperror.NewNotFound("Held order", id)
		}
	}
	if err := sh.engine.ResumeOrder(ctx, order); err != nil {
		return err
	}
	sh.report(nil)
	renderCart(sh.out, sh.engine.Snapshot())
	return nil
}

func (sh *shell) delheld(ctx context.Context, args []string) error {
	id, err := singleID(args, "delheld <heldOrderId>")
	if err != nil {
		return err
	}
	return sh.engine.DeleteHeldOrder(ctx, id)
}

// --- Checkout ---

func (sh *shell) submit(ctx context.Context, _ []string) error {
	err := sh.engine.SubmitSale(ctx)
	sh.engine.ResetSubmission()
	return err
}

// --- Parsing ---

func usageError(usage string) error {
	return apperror.NewValidation("usage: " + usage)
}

func singleID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError(usage)
	}
	return parseID(args[0])
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperror.NewValidation(fmt.Sprintf("invalid id %q", s))
	}
	return id, nil
}

func parseMoney(s string) (types.Money, error) {
	m, err := types.NewMoneyFromString(s)
	if err != nil {
		return types.Zero(), apperror.NewValidation(fmt.Sprintf("invalid amount %q", s))
	}
	return m, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func findHeld(orders []heldorder.HeldOrder, id int64) (heldorder.HeldOrder, bool) {
	for _, h := range orders {
		if h.ID == id {
			return h, true
		}
	}
	return heldorder.HeldOrder{}, false
}

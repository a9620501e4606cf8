package main

import (
	"strconv"
	"strings"

	"chuipos/internal/core/types"
	"chuipos/internal/domain/cart"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
)

func renderProducts(out *console, products []catalog.Product) {
	if len(products) == 0 {
		out.Println("  (no products)")
		return
	}
	for _, p := range products {
		kind := ""
		if p.IsVariablePriced {
			kind = " *"
		}
		out.Printf("  %4d  %-24s %10s/%s%s\n", p.ID, p.Name, types.Display(p.Price), p.SaleUnitName(), kind)
	}
}

func renderCart(out *console, s cart.Snapshot) {
	if len(s.Lines) == 0 {
		out.Println("  Cart is empty.")
	}
	for _, l := range s.Lines {
		out.Printf("  %4d  %-24s %8s %-4s x %10s = %10s\n",
			l.ProductID, l.Name, l.Quantity.StringFixed(3), l.UnitName,
			types.Display(l.UnitPrice), types.Display(l.Total()))
	}

	out.Printf("  Total: %s  Paid: %s  Remaining: %s\n",
		types.Display(s.Total), types.Display(s.Paid), types.Display(s.Remaining))

	for i, p := range s.Payments {
		line := "    " + strconv.Itoa(i+1) + ". " + string(p.Method) + " " + types.Display(p.Amount)
		if p.Notes != nil {
			line += " (" + *p.Notes + ")"
		}
		out.Println(line)
	}

	var tags []string
	if s.Customer != nil {
		tags = append(tags, "customer "+s.Customer.Name)
	} else {
		tags = append(tags, "no customer")
	}
	if s.ActiveHeldOrderID != nil {
		tags = append(tags, "held order #"+strconv.FormatInt(*s.ActiveHeldOrderID, 10))
	}
	if s.PendingVariable != nil {
		tags = append(tags, "awaiting amount for "+s.PendingVariable.Name)
	}
	if s.CanSubmit {
		tags = append(tags, "ready to submit")
	}
	out.Println("  [" + strings.Join(tags, ", ") + "]")
}

func renderHeldOrders(out *console, orders []heldorder.HeldOrder) {
	if len(orders) == 0 {
		out.Println("  (no held orders)")
		return
	}
	for _, h := range orders {
		created := ""
		if h.CreatedAt != nil {
			created = h.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		out.Printf("  %4d  %-14s %-20s %3d items %10s  %s\n",
			h.ID, h.Ref, h.CustomerName, len(h.Items), types.Display(h.Total()), created)
	}
}

func customerLine(c customer.Customer) string {
	line := strconv.FormatInt(c.ID, 10) + "  " + c.Name
	if c.PhoneNumber != nil {
		line += "  " + *c.PhoneNumber
	}
	return line
}

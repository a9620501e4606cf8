package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/heldorder"
	"chuipos/internal/domain/sale"
)

var walkIn = &customer.Customer{ID: 1, Name: customer.WalkInName}

func standard(id int64, price string) catalog.Product {
	return catalog.Product{ID: id, Name: "P", Price: types.MustMoney(price)}
}

func variable(id int64, price string) catalog.Product {
	p := standard(id, price)
	p.IsVariablePriced = true
	return p
}

func sumLines(c *Cart) types.Money {
	total := types.Zero()
	for _, l := range c.Lines() {
		total = total.Add(l.Total())
	}
	return total
}

func TestCart_TotalTracksLines(t *testing.T) {
	c := NewCart(walkIn)

	steps := []func(){
		func() { c.addStandard(standard(1, "10")) },
		func() { c.addStandard(standard(2, "3.5")) },
		func() { c.increment(1) },
		func() { require.NoError(t, c.addVariable(variable(3, "50"), types.MustMoney("125"))) },
		func() { c.decrement(2) },
		func() { c.increment(3) },
		func() { c.remove(1) },
		func() { c.addStandard(standard(1, "10")) },
	}
	for _, step := range steps {
		step()
		assert.True(t, c.Total().Equal(sumLines(c)), "total %s lines %s", c.Total(), sumLines(c))
		for _, l := range c.Lines() {
			assert.True(t, l.Quantity.IsPositive())
		}
	}
	assert.Equal(t, "135.00", types.Display(c.Total()))
}

func TestCart_VariableLineIgnoresUnitSteps(t *testing.T) {
	c := NewCart(walkIn)
	require.NoError(t, c.addVariable(variable(3, "50"), types.MustMoney("125")))

	assert.False(t, c.increment(3))
	assert.False(t, c.decrement(3))
	assert.False(t, c.addStandard(standard(3, "50")))

	l, ok := c.Line(3)
	require.True(t, ok)
	assert.Equal(t, "2.5", l.Quantity.String())
}

func TestCart_VariableTopUp(t *testing.T) {
	c := NewCart(walkIn)
	p := variable(3, "40")
	require.NoError(t, c.addVariable(p, types.MustMoney("20")))
	require.NoError(t, c.addVariable(p, types.MustMoney("60")))

	assert.Len(t, c.Lines(), 1)
	l, _ := c.Line(3)
	assert.Equal(t, "2", l.Quantity.String())
	assert.Equal(t, "80.00", types.Display(c.Total()))
}

func TestCart_AddVariableRejects(t *testing.T) {
	c := NewCart(walkIn)

	err := c.addVariable(variable(4, "0"), types.MustMoney("10"))
	assert.True(t, apperror.HasCode(err, apperror.CodeZeroPrice))

	err = c.addVariable(variable(4, "10"), types.MustMoney("-1"))
	assert.True(t, apperror.IsValidation(err))

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_DecrementRemovesAtZero(t *testing.T) {
	c := NewCart(walkIn)
	c.addStandard(standard(1, "10"))

	assert.True(t, c.decrement(1))
	assert.True(t, c.IsEmpty())
	assert.False(t, c.decrement(1))
}

func TestCart_Payments(t *testing.T) {
	c := NewCart(walkIn)
	c.addStandard(standard(1, "30"))

	require.NoError(t, c.addPayment(sale.Payment{Amount: types.MustMoney("10"), Method: sale.MethodCash}))
	require.NoError(t, c.addPayment(sale.Payment{Amount: types.MustMoney("20"), Method: sale.MethodCard}))
	assert.True(t, c.Remaining().IsZero())
	assert.NoError(t, c.CanSubmit())

	err := c.addPayment(sale.Payment{Amount: types.MustMoney("1"), Method: sale.MethodCash})
	assert.True(t, apperror.HasCode(err, apperror.CodeBusinessRule))

	assert.True(t, c.removePayment(sale.Payment{Amount: types.MustMoney("10"), Method: sale.MethodCash}))
	assert.Equal(t, "10", c.Remaining().String())
	assert.Error(t, c.CanSubmit())
}

func TestCart_CanSubmit(t *testing.T) {
	c := NewCart(nil)
	assert.True(t, apperror.IsValidation(c.CanSubmit()))

	c.addStandard(standard(1, "10"))
	err := c.CanSubmit()
	require.Error(t, err)
	assert.Equal(t, "Please select a customer before submitting a sale.", apperror.UserMessage(err))

	c.setCustomer(walkIn)
	require.NoError(t, c.addPayment(sale.Payment{Amount: types.MustMoney("9.995"), Method: sale.MethodCash}))
	assert.NoError(t, c.CanSubmit())
}

func TestCart_ClearKeepsHeldContextOnRequest(t *testing.T) {
	c := NewCart(walkIn)
	c.hydrate(heldorder.HeldOrder{ID: 7, Items: []heldorder.Item{
		{ProductID: 1, Quantity: types.MustMoney("2"), Price: types.MustMoney("10")},
	}})

	c.clear(true, walkIn)
	id, ok := c.ActiveHeldOrderID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.True(t, c.IsEmpty())

	c.clear(false, walkIn)
	_, ok = c.ActiveHeldOrderID()
	assert.False(t, ok)
}

func TestCart_HydrateSkipsEmptyAndMergesRepeats(t *testing.T) {
	c := NewCart(walkIn)
	dropped := c.hydrate(heldorder.HeldOrder{ID: 3, Items: []heldorder.Item{
		{ProductID: 1, Quantity: types.MustMoney("1"), Price: types.MustMoney("10")},
		{ProductID: 2, Quantity: types.Zero(), Price: types.MustMoney("5")},
		{ProductID: 1, Quantity: types.MustMoney("2"), Price: types.MustMoney("10")},
	}})

	assert.Equal(t, 1, dropped)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "3", c.Lines()[0].Quantity.String())
	assert.Equal(t, "30", c.Total().String())
}

func TestCart_Requests(t *testing.T) {
	c := NewCart(&customer.Customer{ID: 5, Name: "Jane"})
	c.addStandard(standard(1, "10"))
	c.increment(1)
	require.NoError(t, c.addPayment(sale.Payment{Amount: types.MustMoney("20"), Method: sale.MethodCash}))

	sr := c.saleRequest()
	assert.Equal(t, int64(5), sr.CustomerID)
	require.Len(t, sr.Items, 1)
	assert.Equal(t, "2", sr.Items[0].Quantity.String())
	assert.True(t, sr.Items[0].Discount.IsZero())
	assert.Len(t, sr.Payments, 1)

	hr := c.holdRequest()
	assert.Equal(t, int64(5), hr.CustomerID)
	require.Len(t, hr.Items, 1)
	assert.Equal(t, int64(1), hr.Items[0].ProductID)
	assert.Equal(t, "2", hr.Items[0].Quantity.String())
}

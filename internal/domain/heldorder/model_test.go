package heldorder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"chuipos/internal/core/apperror"
	"chuipos/internal/core/types"
)

func TestRequest_Validate(t *testing.T) {
	ok := Request{Items: []ItemRequest{{ProductID: 1, Quantity: types.One()}}, CustomerID: 5}
	assert.NoError(t, ok.Validate(context.Background()))

	empty := Request{CustomerID: 5}
	assert.True(t, apperror.IsValidation(empty.Validate(context.Background())))

	noCustomer := Request{Items: ok.Items}
	assert.True(t, apperror.IsValidation(noCustomer.Validate(context.Background())))
}

func TestHeldOrder_Total(t *testing.T) {
	h := HeldOrder{Items: []Item{
		{Price: types.MustMoney("10"), Quantity: types.MustMoney("2")},
		{Price: types.MustMoney("50"), Quantity: types.MustMoney("2.5"), IsVariablePriced: true},
	}}

	assert.True(t, h.Total().Equal(types.MustMoney("145")))
}

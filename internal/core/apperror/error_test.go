package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("hold order: %w", NewSessionExpired(http.StatusUnauthorized))

	assert.True(t, IsSessionExpired(err))
	assert.False(t, IsTransport(err))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(err))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, MsgCannotConnect, UserMessage(NewTransport(errors.New("dial tcp: refused"))))
	assert.Equal(t, "Product is out of stock", UserMessage(NewServer(422, "Product is out of stock")))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}

func TestNewUnexpectedStatus_Message(t *testing.T) {
	err := NewUnexpectedStatus(502)

	assert.Equal(t, CodeServer, err.Code)
	assert.Equal(t, "An unexpected error occurred (Status: 502). Please try again.", err.Message)
}

func TestCauseIsUnwrapped(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewDecode(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by: unexpected EOF")
}

func TestNewZeroPrice_Details(t *testing.T) {
	err := NewZeroPrice(7)

	assert.Equal(t, CodeZeroPrice, err.Code)
	assert.Equal(t, MsgZeroPrice, err.Message)
	assert.Equal(t, int64(7), err.Details["product_id"])
}

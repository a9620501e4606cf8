// Package dto provides Data Transfer Objects for API requests/responses.
// Money travels as plain JSON numbers in both directions.
package dto

import (
	"time"

	"chuipos/internal/core/types"
)

// IDResponse for create operations that return nothing else.
type IDResponse struct {
	ID int64 `json:"id"`
}

// StatusResponse for health checks.
type StatusResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func money(m types.Money) float64 {
	return types.Float64(m)
}

func fromFloat(f float64) types.Money {
	return types.NewMoney(f)
}

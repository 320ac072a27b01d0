package models

import "time"

// DailyOrderReport aggregates the orders placed in a reporting window.
type DailyOrderReport struct {
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	TotalOrders  int       `json:"total_orders"`
	TotalAmount  float64   `json:"total_amount"`
	TotalUnits   int       `json:"total_units"`
	UniqueBuyers int       `json:"unique_buyers"`
}

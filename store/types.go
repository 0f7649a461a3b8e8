// Package store holds the sample order model used by the examples and the
// static analysis tests.
package store

import (
	"time"
)

// Product represents an individual item available for sale.
// Prices are kept in cents to avoid floating-point errors.
type Product struct {
	ID          int64     `tsv:"Product ID"`
	SKU         string    `tsv:"SKU"`
	Name        string    `tsv:"Name"`
	Description string    // not exported
	PriceCents  int64     `tsv:"Price (cents)"`
	Tags        []string  `tsv:"Tags" tsvdelim:"|"`
	CreatedAt   time.Time `tsv:"Created"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64   `tsv:"Customer ID"`
	Email    string  `tsv:"Email"`
	FullName string  `tsv:"Customer"`
	Address  *string // In a complex app, this might be its own struct
	IsActive bool
}

// Order represents a transaction made by a customer.
// Customer fields and item fields are inlined into the order row.
type Order struct {
	ID         int64       `tsv:"Order ID"`
	Customer   Customer    `tsv:",inline"`
	Status     OrderStatus `tsv:"Status"`
	TotalCents int64       `tsv:"Total (cents)"`
	Items      []OrderItem `tsv:",inline" tsvdelim:";"`
	Notes      []string    `tsv:"Notes"`
	OrderedAt  time.Time
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	ProductID int64  `tsv:"Product ID"`
	Name      string `tsv:"Item"`
	Quantity  int    `tsv:"Qty"`
	UnitPrice int64
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

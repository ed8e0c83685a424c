package hintmodel

import (
	"time"

	"github.com/seitarof/gen-hints/testdata/hintmodel/audit"
)

var _ audit.Trail

// Retained is a meta marker.
// +hint:Audited
type Retained struct{}

// Audited marks audited entities.
// +hint:Retained
type Audited struct{}

// Entity marks persistent types.
type Entity struct{}

// Proxy marks interfaces that need a runtime proxy.
type Proxy struct{}

type ID string

type IDs []ID

// Base carries identity.
type Base struct {
	ID ID
}

// Order is an aggregate root.
// +hint:Audited,Entity
type Order struct {
	Base
	Items []*LineItem `hint:"Entity"`
	// +hint:Audited
	Total   Money
	Placed  time.Time
	_hidden string
	Tags    map[string]Tag // +hint:audit.Trail
}

// NewOrder creates an order.
func NewOrder(items ...*LineItem) *Order {
	return &Order{Items: items}
}

// Sum computes the total.
// +hint:Audited
func (o *Order) Sum(rate Rate) Money {
	return o.Total
}

type LineItem struct {
	Order *Order
	Qty   int
}

// NewLineItem is a constructor of LineItem only.
func NewLineItem(qty int) *LineItem {
	return &LineItem{Qty: qty}
}

type Money struct {
	Amount   int64
	Currency Currency
}

type Currency string

type Tag string

type Rate float64

// Repository loads orders.
// +hint:Proxy
type Repository interface {
	// +hint:Audited
	Find(id ID) (*Order, error)
}

type Page[T any] struct {
	Items []T
}

type Orders struct {
	Page[Order]
}

type Alias = Order

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package order - orders, their payment attempts and the store contract
package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// Payment - one attempt to collect payment for an order
//
// Invoice is nil for an attempt that failed to issue
type Payment struct {
	ID        uuid.UUID        `json:"id"`
	Processor processor.ID     `json:"processor,omitempty"`
	Invoice   *invoice.Invoice `json:"invoice,omitempty"`
	Status    Status           `json:"status"`
	Received  satoshi.Optional `json:"received"`
	Currency  string           `json:"currency,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewPayment - a created attempt for an issued invoice
func NewPayment(inv *invoice.Invoice, now time.Time) *Payment {
	return &Payment{
		ID:        uuid.New(),
		Processor: inv.Processor,
		Invoice:   inv,
		Status:    Created,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FailedPayment - record that no processor could issue
func FailedPayment(now time.Time) *Payment {
	return &Payment{
		ID:        uuid.New(),
		Status:    Failed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InvoiceID - the processor's invoice id, empty if none was issued
func (p *Payment) InvoiceID() string {
	if nil == p.Invoice {
		return ""
	}
	return p.Invoice.ID
}

// Order - an order and its payment attempts, oldest first
type Order struct {
	ID        uuid.UUID  `json:"id"`
	Number    uint64     `json:"number"`
	Payments  []*Payment `json:"payments"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Fulfilled - any attempt has been confirmed
func (o *Order) Fulfilled() bool {
	for _, p := range o.Payments {
		if Confirmed == p.Status {
			return true
		}
	}
	return false
}

// Current - the most recent attempt, nil if none
func (o *Order) Current() *Payment {
	if 0 == len(o.Payments) {
		return nil
	}
	return o.Payments[len(o.Payments)-1]
}

// PaymentByID - find an attempt
func (o *Order) PaymentByID(id uuid.UUID) *Payment {
	for _, p := range o.Payments {
		if id == p.ID {
			return p
		}
	}
	return nil
}

// PaymentByInvoiceID - the most recent attempt for an invoice
func (o *Order) PaymentByInvoiceID(invoiceID string) *Payment {
	if "" == invoiceID {
		return nil
	}
	for i := len(o.Payments) - 1; i >= 0; i -= 1 {
		if invoiceID == o.Payments[i].InvoiceID() {
			return o.Payments[i]
		}
	}
	return nil
}

// ActivePayment - the non-terminal attempt on a processor, nil if none
func (o *Order) ActivePayment(id processor.ID) *Payment {
	for i := len(o.Payments) - 1; i >= 0; i -= 1 {
		p := o.Payments[i]
		if id == p.Processor && !p.Status.IsTerminal() {
			return p
		}
	}
	return nil
}

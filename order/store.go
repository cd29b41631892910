// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/bitmark-inc/lnpayd/satoshi"
)

// Store - persistence for orders
//
// every status change is a compare-and-set against the current status
type Store interface {
	// create a new order with no payments
	Create(ctx context.Context, number uint64) (*Order, error)

	// fetch an order, fault.ErrOrderNotFound if absent
	Get(ctx context.Context, id uuid.UUID) (*Order, error)

	// append an attempt, expiring any earlier non-terminal attempt on
	// the same processor in the same write
	AddPayment(ctx context.Context, orderID uuid.UUID, payment *Payment) (*Order, error)

	// the order holding a created or pending attempt for the invoice,
	// fault.ErrOrderNotFound if none
	FindPendingOrderByInvoiceID(ctx context.Context, invoiceID string) (*Order, *Payment, error)

	// mark an attempt confirmed if it is still created or pending,
	// fault.ErrPaymentNotPending otherwise
	ApplyConfirmedPayment(ctx context.Context, orderID uuid.UUID, paymentID uuid.UUID, amount satoshi.Amount, currency string) error

	// move an attempt to a new status if its current status is in from,
	// fault.ErrPaymentNotPending otherwise
	TransitionPayment(ctx context.Context, orderID uuid.UUID, paymentID uuid.UUID, from []Status, to Status) error
}

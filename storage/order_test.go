// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

var testTime = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

func ctx() context.Context {
	return context.Background()
}

func newInvoice(id string, processorID processor.ID, amount satoshi.Amount) *invoice.Invoice {
	return &invoice.Invoice{
		Processor:      processorID,
		Amount:         satoshi.Some(amount),
		Label:          "Shop",
		CreatedAt:      testTime,
		ExpiresAt:      testTime.Add(time.Hour),
		ID:             id,
		PaymentRequest: "lnbc1" + id,
	}
}

func TestCreateGet(t *testing.T) {
	s := newStore(t)

	o, err := s.Create(ctx(), 1234)
	assert.Nil(t, err, "wrong Create")
	assert.Equal(t, uint64(1234), o.Number, "wrong number")
	assert.Equal(t, 0, len(o.Payments), "new order has payments")

	actual, err := s.Get(ctx(), o.ID)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, o.ID, actual.ID, "wrong id")

	_, err = s.Get(ctx(), uuid.New())
	assert.Equal(t, fault.ErrOrderNotFound, err, "unknown order found")
}

func TestAddPaymentSupersedes(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	first := order.NewPayment(newInvoice("X", "B", 1000), testTime)
	other := order.NewPayment(newInvoice("W", "A", 1000), testTime)
	second := order.NewPayment(newInvoice("Y", "B", 1000), testTime)

	_, err := s.AddPayment(ctx(), o.ID, first)
	assert.Nil(t, err, "wrong AddPayment first")
	_, err = s.AddPayment(ctx(), o.ID, other)
	assert.Nil(t, err, "wrong AddPayment other")
	updated, err := s.AddPayment(ctx(), o.ID, second)
	assert.Nil(t, err, "wrong AddPayment second")

	assert.Equal(t, 3, len(updated.Payments), "wrong payment count")
	assert.Equal(t, order.Expired, updated.PaymentByID(first.ID).Status, "first not superseded")
	assert.Equal(t, order.Created, updated.PaymentByID(other.ID).Status, "other processor superseded")
	assert.Equal(t, order.Created, updated.Current().Status, "wrong current status")
	assert.Equal(t, second.ID, updated.Current().ID, "wrong current")

	_, _, err = s.FindPendingOrderByInvoiceID(ctx(), "X")
	assert.Equal(t, fault.ErrOrderNotFound, err, "superseded invoice still pending")
}

func TestAddPaymentDuplicateInvoice(t *testing.T) {
	s := newStore(t)

	o1, _ := s.Create(ctx(), 1)
	o2, _ := s.Create(ctx(), 2)

	_, err := s.AddPayment(ctx(), o1.ID, order.NewPayment(newInvoice("X", "B", 1000), testTime))
	assert.Nil(t, err, "wrong AddPayment")

	_, err = s.AddPayment(ctx(), o2.ID, order.NewPayment(newInvoice("X", "B", 1000), testTime))
	assert.True(t, errors.Is(err, fault.ErrDuplicateInvoice), "duplicate invoice indexed")

	_, err = s.AddPayment(ctx(), uuid.New(), order.NewPayment(newInvoice("Z", "B", 1000), testTime))
	assert.Equal(t, fault.ErrOrderNotFound, err, "payment added to unknown order")
}

func TestAddFailedPayment(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	updated, err := s.AddPayment(ctx(), o.ID, order.FailedPayment(testTime))
	assert.Nil(t, err, "wrong AddPayment")
	assert.Equal(t, order.Failed, updated.Current().Status, "wrong status")
	assert.Nil(t, updated.Current().Invoice, "failed payment has invoice")
}

func TestFindPendingOrder(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	p := order.NewPayment(newInvoice("X", "B", 1000), testTime)
	_, _ = s.AddPayment(ctx(), o.ID, p)

	found, payment, err := s.FindPendingOrderByInvoiceID(ctx(), "X")
	assert.Nil(t, err, "wrong FindPendingOrderByInvoiceID")
	assert.Equal(t, o.ID, found.ID, "wrong order")
	assert.Equal(t, p.ID, payment.ID, "wrong payment")

	_, _, err = s.FindPendingOrderByInvoiceID(ctx(), "unknown")
	assert.Equal(t, fault.ErrOrderNotFound, err, "unknown invoice found")

	_, _, err = s.FindPendingOrderByInvoiceID(ctx(), "")
	assert.Equal(t, fault.ErrOrderNotFound, err, "empty invoice found")
}

func TestApplyConfirmedPaymentOnce(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	p := order.NewPayment(newInvoice("X", "B", 1000), testTime)
	_, _ = s.AddPayment(ctx(), o.ID, p)

	err := s.TransitionPayment(ctx(), o.ID, p.ID, []order.Status{order.Created}, order.Pending)
	assert.Nil(t, err, "wrong TransitionPayment")

	err = s.ApplyConfirmedPayment(ctx(), o.ID, p.ID, 1000, "SAT")
	assert.Nil(t, err, "wrong ApplyConfirmedPayment")

	err = s.ApplyConfirmedPayment(ctx(), o.ID, p.ID, 1000, "SAT")
	assert.Equal(t, fault.ErrPaymentNotPending, err, "applied twice")

	actual, _ := s.Get(ctx(), o.ID)
	assert.True(t, actual.Fulfilled(), "not fulfilled")
	assert.Equal(t, satoshi.Some(1000), actual.Current().Received, "wrong received")
	assert.Equal(t, "SAT", actual.Current().Currency, "wrong currency")

	err = s.TransitionPayment(ctx(), o.ID, p.ID, order.Reconcilable, order.Expired)
	assert.Equal(t, fault.ErrPaymentNotPending, err, "confirmed payment expired")

	err = s.ApplyConfirmedPayment(ctx(), o.ID, uuid.New(), 1000, "SAT")
	assert.Equal(t, fault.ErrPaymentNotFound, err, "unknown payment confirmed")
}

func TestApplyConfirmedPaymentConcurrent(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	p := order.NewPayment(newInvoice("X", "B", 1000), testTime)
	_, _ = s.AddPayment(ctx(), o.ID, p)

	const passes = 10
	var wg sync.WaitGroup
	results := make([]error, passes)
	for i := 0; i < passes; i += 1 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.ApplyConfirmedPayment(ctx(), o.ID, p.ID, 1000, "SAT")
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, err := range results {
		if nil == err {
			applied += 1
		} else {
			assert.Equal(t, fault.ErrPaymentNotPending, err, "wrong concurrent error")
		}
	}
	assert.Equal(t, 1, applied, "confirmation not applied exactly once")
}

func TestTransitionInvalid(t *testing.T) {
	s := newStore(t)

	o, _ := s.Create(ctx(), 1)
	p := order.NewPayment(newInvoice("X", "B", 1000), testTime)
	_, _ = s.AddPayment(ctx(), o.ID, p)

	err := s.TransitionPayment(ctx(), o.ID, p.ID, []order.Status{order.Created}, order.Created)
	assert.True(t, errors.Is(err, fault.ErrInvalidStatusTransition), "created to created allowed")
}

func TestCancelledContext(t *testing.T) {
	s := newStore(t)

	cctx, cancel := context.WithCancel(ctx())
	cancel()

	_, err := s.Create(cctx, 1)
	assert.Equal(t, context.Canceled, err, "cancelled create")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reconcile - apply externally reported payments to local
// orders exactly once
package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/pending"
)

// Currency - recorded against confirmed payments
const Currency = "SAT"

// Matcher - maps events to payment attempts
type Matcher struct {
	log   *logger.L
	store order.Store
	now   func() time.Time
}

// NewMatcher - create a matcher on a store
func NewMatcher(log *logger.L, store order.Store, now func() time.Time) *Matcher {
	if nil == now {
		now = time.Now
	}
	return &Matcher{
		log:   log,
		store: store,
		now:   now,
	}
}

// Reconcile - apply events in order, each one completely before the next
//
// no error stops the pass, after cancellation the remaining events are
// reported as Failed without being applied
func (m *Matcher) Reconcile(ctx context.Context, events []pending.Payment) []Outcome {
	outcomes := make([]Outcome, 0, len(events))
	for _, event := range events {
		if err := ctx.Err(); nil != err {
			outcomes = append(outcomes, Outcome{Kind: Failed, Event: event, Err: err})
			continue
		}
		outcomes = append(outcomes, m.apply(ctx, event))
	}
	return outcomes
}

func (m *Matcher) apply(ctx context.Context, event pending.Payment) Outcome {
	outcome := Outcome{Event: event}

	o, p, err := m.store.FindPendingOrderByInvoiceID(ctx, event.ExternalID)
	if errors.Is(err, fault.ErrOrderNotFound) {
		m.log.Infof("processor: %s  invoice: %s  unmatched", event.Processor, event.ExternalID)
		outcome.Kind = Unmatched
		return outcome
	}
	if nil != err {
		m.log.Errorf("processor: %s  invoice: %s  lookup error: %s", event.Processor, event.ExternalID, err)
		outcome.Kind = Failed
		outcome.Err = err
		return outcome
	}

	outcome.OrderID = o.ID
	outcome.PaymentID = p.ID

	if p.Processor != event.Processor || nil == p.Invoice {
		m.log.Warnf("invoice: %s  reported by: %s  issued by: %s", event.ExternalID, event.Processor, p.Processor)
		outcome.Kind = Unmatched
		return outcome
	}

	if !p.Invoice.Matches(event.Amount) {
		m.log.Warnf("order: %s  invoice: %s  amount: %d  expected: %s", o.ID, event.ExternalID, event.Amount, p.Invoice.Amount)
		outcome.Kind = AmountMismatch
		return outcome
	}

	// a confirmation is honoured even if it arrives after the invoice expired
	if event.Confirmed {
		err := m.store.ApplyConfirmedPayment(ctx, o.ID, p.ID, event.Amount, Currency)
		return m.result(outcome, Confirmed, err)
	}

	if p.Invoice.Expired(m.now()) {
		err := m.store.TransitionPayment(ctx, o.ID, p.ID, order.Reconcilable, order.Expired)
		return m.result(outcome, Expired, err)
	}

	if order.Created == p.Status {
		err := m.store.TransitionPayment(ctx, o.ID, p.ID, []order.Status{order.Created}, order.Pending)
		return m.result(outcome, Pending, err)
	}

	outcome.Kind = Pending
	return outcome
}

func (m *Matcher) result(outcome Outcome, kind Kind, err error) Outcome {
	switch {
	case nil == err:
		m.log.Infof("order: %s  payment: %s  invoice: %s  %s", outcome.OrderID, outcome.PaymentID, outcome.Event.ExternalID, kind)
		outcome.Kind = kind
	case errors.Is(err, fault.ErrPaymentNotPending):
		m.log.Debugf("order: %s  payment: %s  already applied", outcome.OrderID, outcome.PaymentID)
		outcome.Kind = AlreadyApplied
	default:
		m.log.Errorf("order: %s  payment: %s  store error: %s", outcome.OrderID, outcome.PaymentID, err)
		outcome.Kind = Failed
		outcome.Err = err
	}
	return outcome
}

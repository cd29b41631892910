// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/reconcile"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// CreateOrder - store a new order
func (s *Service) CreateOrder(ctx context.Context, number uint64) (*order.Order, error) {
	return s.store.Create(ctx, number)
}

// Order - read an order
func (s *Service) Order(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.store.Get(ctx, id)
}

// IssuePayment - issue an invoice for an order and record the attempt
//
// when no processor can issue, a failed attempt is recorded and
// fault.ErrNoProcessorAvailable returned
func (s *Service) IssuePayment(ctx context.Context, orderID uuid.UUID, amount satoshi.Optional, ttl time.Duration) (*order.Order, *order.Payment, error) {
	o, err := s.store.Get(ctx, orderID)
	if nil != err {
		return nil, nil, err
	}
	if o.Fulfilled() {
		return nil, nil, fault.ErrOrderAlreadyPaid
	}

	if ttl <= 0 {
		ttl = s.settings.InvoiceTTL
	}

	label := invoice.Label(s.settings.Brand, o.Number, s.settings.LabelMode)

	inv, err := s.issuer.Issue(ctx, s.Registry(), invoice.Request{
		Amount:     amount,
		Label:      invoice.Description(label, o.Number),
		TTL:        ttl,
		Preference: s.settings.Preference,
	})
	if errors.Is(err, fault.ErrNoProcessorAvailable) {
		s.counters.issueFailed.Increment()
		if _, e := s.store.AddPayment(ctx, o.ID, order.FailedPayment(s.settings.Clock())); nil != e {
			s.log.Errorf("order: %s  record failed attempt error: %s", o.ID, e)
		}
		return nil, nil, err
	}
	if nil != err {
		return nil, nil, err
	}

	payment := order.NewPayment(inv, s.settings.Clock())
	o, err = s.store.AddPayment(ctx, o.ID, payment)
	if nil != err {
		s.log.Errorf("order: %s  invoice: %s  store error: %s", orderID, inv.ID, err)
		return nil, nil, err
	}

	s.counters.issued.Increment()
	return o, payment, nil
}

// Report - summary of one reconciliation pass
type Report struct {
	Processor processor.ID        `json:"processor"`
	Started   time.Time           `json:"started"`
	Finished  time.Time           `json:"finished"`
	Events    int                 `json:"events"`
	Outcomes  []reconcile.Outcome `json:"outcomes"`
	Tally     map[string]int      `json:"tally"`
}

// RunReconciliationPass - scan one processor and apply what it reports
//
// the timer and the webhook both come through here
func (s *Service) RunReconciliationPass(ctx context.Context, id processor.ID) (*Report, error) {
	registry := s.Registry()
	started := s.settings.Clock()

	events, err := s.scanner.Scan(registry, id, s.settings.FreshnessWindow).Collect(ctx)
	if nil != err {
		return nil, err
	}

	outcomes := s.matcher.Reconcile(ctx, events)
	tally := reconcile.Count(outcomes)

	s.counters.passes.Increment()
	s.counters.confirmed.Add(uint64(tally[reconcile.Confirmed]))
	s.counters.unmatched.Add(uint64(tally[reconcile.Unmatched]))
	s.counters.mismatched.Add(uint64(tally[reconcile.AmountMismatch]))
	s.counters.failed.Add(uint64(tally[reconcile.Failed]))

	report := &Report{
		Processor: id,
		Started:   started,
		Finished:  s.settings.Clock(),
		Events:    len(events),
		Outcomes:  outcomes,
		Tally:     make(map[string]int, len(tally)),
	}
	for k, n := range tally {
		report.Tally[k.String()] = n
	}

	if len(events) > 0 {
		s.log.Infof("processor: %s  events: %d  confirmed: %d  mismatched: %d  failed: %d", id, len(events), tally[reconcile.Confirmed], tally[reconcile.AmountMismatch], tally[reconcile.Failed])
	}
	return report, nil
}

func (s *Service) configured(id processor.ID) (*processor.Processor, error) {
	p, ok := s.Registry().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", fault.ErrUnknownProcessor, id)
	}
	if !p.Configured() {
		return nil, fault.ErrProcessorNotConfigured
	}
	return p, nil
}

func (s *Service) walletKey(p *processor.Processor) string {
	network := p.Network()
	if "" == network {
		network = s.settings.Network
	}
	return fmt.Sprintf("%s_%s", p.ID(), network)
}

// WalletState - balance and recent transactions, oldest first
//
// served from the cache while fresh
func (s *Service) WalletState(ctx context.Context, id processor.ID) (*processor.WalletSnapshot, error) {
	p, err := s.configured(id)
	if nil != err {
		return nil, err
	}

	value, err := s.cache.Get(s.walletKey(p), s.settings.WalletCacheTTL, func() (interface{}, error) {
		// detached so one caller giving up does not fail the others
		callCtx, cancel := context.WithTimeout(context.Background(), s.settings.CallTimeout)
		defer cancel()

		backend, err := p.Backend(callCtx)
		if nil != err {
			return nil, err
		}
		snapshot, err := backend.WalletSnapshot(callCtx)
		if nil != err {
			return nil, err
		}
		return recent(snapshot), nil
	})
	if nil != err {
		return nil, err
	}

	snapshot := value.(*processor.WalletSnapshot)
	result := &processor.WalletSnapshot{
		Balance:      snapshot.Balance,
		Transactions: make([]processor.Transaction, len(snapshot.Transactions)),
	}
	copy(result.Transactions, snapshot.Transactions)
	return result, nil
}

// keep the most recent transactions, return them oldest first
func recent(snapshot *processor.WalletSnapshot) *processor.WalletSnapshot {
	transactions := make([]processor.Transaction, len(snapshot.Transactions))
	copy(transactions, snapshot.Transactions)

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
	if len(transactions) > walletTransactions {
		transactions = transactions[:walletTransactions]
	}
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}

	return &processor.WalletSnapshot{
		Balance:      snapshot.Balance,
		Transactions: transactions,
	}
}

// PayInvoice - send an outbound payment, the cached wallet state is dropped
func (s *Service) PayInvoice(ctx context.Context, id processor.ID, destination string) (*processor.PayOutcome, error) {
	if "" == destination {
		return nil, fault.ErrMissingParameters
	}
	p, err := s.configured(id)
	if nil != err {
		return nil, err
	}
	defer s.cache.Invalidate(s.walletKey(p))

	callCtx, cancel := context.WithTimeout(ctx, s.settings.CallTimeout)
	defer cancel()

	backend, err := p.Backend(callCtx)
	if nil != err {
		return nil, err
	}

	outcome, err := backend.PayInvoice(callCtx, destination)
	if nil != err {
		s.log.Warnf("processor: %s  pay error: %s", id, err)
		return nil, err
	}
	s.log.Infof("processor: %s  paid: %s  status: %s  fee: %d", id, outcome.PaymentID, outcome.Status, outcome.Fee)
	return outcome, nil
}

// Stats - service counters
type Stats struct {
	Issued      uint64 `json:"issued"`
	IssueFailed uint64 `json:"issueFailed"`
	Confirmed   uint64 `json:"confirmed"`
	Unmatched   uint64 `json:"unmatched"`
	Mismatched  uint64 `json:"mismatched"`
	Failed      uint64 `json:"failed"`
	Passes      uint64 `json:"passes"`
}

// Stats - current counter values
func (s *Service) Stats() Stats {
	return Stats{
		Issued:      s.counters.issued.Uint64(),
		IssueFailed: s.counters.issueFailed.Uint64(),
		Confirmed:   s.counters.confirmed.Uint64(),
		Unmatched:   s.counters.unmatched.Uint64(),
		Mismatched:  s.counters.mismatched.Uint64(),
		Failed:      s.counters.failed.Uint64(),
		Passes:      s.counters.passes.Uint64(),
	}
}

// ProcessorStatus - one registry entry for display
type ProcessorStatus struct {
	ID         processor.ID `json:"id"`
	Priority   int          `json:"priority"`
	Network    string       `json:"network"`
	Configured bool         `json:"configured"`
	Connected  bool         `json:"connected"`
}

// Processors - the registry in priority order
func (s *Service) Processors() []ProcessorStatus {
	list := s.Registry().List()
	status := make([]ProcessorStatus, 0, len(list))
	for _, p := range list {
		status = append(status, ProcessorStatus{
			ID:         p.ID(),
			Priority:   p.Priority(),
			Network:    p.Network(),
			Configured: p.Configured(),
			Connected:  p.Connected(),
		})
	}
	return status
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending - recent incoming payments reported by a processor
package pending

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

const (
	// DefaultWindow - how far back payments are considered
	DefaultWindow = time.Hour

	defaultCallTimeout = 10 * time.Second
)

// Payment - an incoming payment seen on a processor, never persisted
type Payment struct {
	Processor  processor.ID   `json:"processor"`
	ExternalID string         `json:"externalId"`
	Amount     satoshi.Amount `json:"amount"`
	Confirmed  bool           `json:"confirmed"`
	ObservedAt time.Time      `json:"observedAt"`
}

// Scanner - creates payment sequences
type Scanner struct {
	log         *logger.L
	callTimeout time.Duration
	now         func() time.Time
}

// NewScanner - create a scanner, a non-positive timeout gives the default
func NewScanner(log *logger.L, callTimeout time.Duration, now func() time.Time) *Scanner {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if nil == now {
		now = time.Now
	}
	return &Scanner{
		log:         log,
		callTimeout: callTimeout,
		now:         now,
	}
}

// Scan - the payments a processor observed within the window
//
// nothing is fetched until the sequence is iterated
func (s *Scanner) Scan(registry *processor.Registry, id processor.ID, window time.Duration) *Sequence {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Sequence{
		scanner:  s,
		registry: registry,
		id:       id,
		window:   window,
	}
}

// Sequence - a restartable, read-only view of recent payments
type Sequence struct {
	scanner  *Scanner
	registry *processor.Registry
	id       processor.ID
	window   time.Duration
}

// Iterate - start a fresh pass, each pass fetches again
func (seq *Sequence) Iterate(ctx context.Context) *Iterator {
	return &Iterator{
		ctx:      ctx,
		sequence: seq,
		index:    -1,
	}
}

// Collect - all payments of one pass
func (seq *Sequence) Collect(ctx context.Context) ([]Payment, error) {
	payments := []Payment{}
	iter := seq.Iterate(ctx)
	for iter.Next() {
		payments = append(payments, iter.Payment())
	}
	return payments, iter.Err()
}

func (seq *Sequence) fetch(ctx context.Context) ([]Payment, error) {
	if nil == seq.registry {
		return nil, fault.ErrNotInitialised
	}
	p, ok := seq.registry.Get(seq.id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", fault.ErrUnknownProcessor, seq.id)
	}
	if !p.Configured() {
		return nil, fault.ErrProcessorNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, seq.scanner.callTimeout)
	defer cancel()

	backend, err := p.Backend(callCtx)
	if nil != err {
		return nil, err
	}

	receives, err := backend.ListPendingReceives(callCtx, seq.window)
	if nil != err {
		return nil, err
	}

	now := seq.scanner.now()
	payments := make([]Payment, 0, len(receives))
	for _, r := range receives {
		if now.Sub(r.ObservedAt) >= seq.window {
			continue
		}
		payments = append(payments, Payment{
			Processor:  seq.id,
			ExternalID: r.ExternalID,
			Amount:     r.Amount,
			Confirmed:  r.Confirmed,
			ObservedAt: r.ObservedAt,
		})
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].ObservedAt.Before(payments[j].ObservedAt)
	})

	seq.scanner.log.Debugf("processor: %s  reported: %d  within window: %d", seq.id, len(receives), len(payments))

	return payments, nil
}

// Iterator - one pass over a sequence
type Iterator struct {
	ctx      context.Context
	sequence *Sequence
	fetched  bool
	payments []Payment
	index    int
	err      error
}

// Next - advance, false at the end or on error
func (it *Iterator) Next() bool {
	if !it.fetched {
		it.fetched = true
		it.payments, it.err = it.sequence.fetch(it.ctx)
	}
	if nil != it.err {
		return false
	}
	if it.index+1 >= len(it.payments) {
		return false
	}
	it.index += 1
	return true
}

// Payment - the current payment
func (it *Iterator) Payment() Payment {
	return it.payments[it.index]
}

// Err - the error that ended the pass, if any
func (it *Iterator) Err() error {
	return it.err
}

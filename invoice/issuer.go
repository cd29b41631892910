// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

const defaultCallTimeout = 10 * time.Second

// Request - what to issue
type Request struct {
	Amount     satoshi.Optional
	Label      string
	TTL        time.Duration
	Preference []processor.ID
}

// Issuer - tries candidate processors in order until one issues
type Issuer struct {
	log         *logger.L
	callTimeout time.Duration
	now         func() time.Time
}

// NewIssuer - create an issuer, a non-positive timeout gives the default
func NewIssuer(log *logger.L, callTimeout time.Duration, now func() time.Time) *Issuer {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if nil == now {
		now = time.Now
	}
	return &Issuer{
		log:         log,
		callTimeout: callTimeout,
		now:         now,
	}
}

// Issue - issue an invoice on the first candidate processor that succeeds
//
// candidates are tried one at a time, a later one is only contacted
// after the previous one has failed
func (iss *Issuer) Issue(ctx context.Context, registry *processor.Registry, request Request) (*Invoice, error) {
	if request.TTL <= 0 {
		return nil, fault.ErrInvalidExpiry
	}

	// zero means "any amount" to the processor
	sent := request.Amount
	if a, ok := sent.Get(); ok && 0 == a {
		sent = satoshi.None()
	}

	candidates := processor.Candidates(registry, request.Preference)
	if 0 == len(candidates) {
		iss.log.Warn("no configured processor")
		return nil, fault.ErrNoProcessorAvailable
	}

	for _, p := range candidates {
		if err := ctx.Err(); nil != err {
			return nil, fmt.Errorf("%w: %w", fault.ErrNoProcessorAvailable, err)
		}

		inv, err := iss.issueOn(ctx, p, sent, request)
		if nil != err {
			iss.log.Warnf("processor: %s  issue error: %s", p.ID(), err)
			continue
		}
		iss.log.Infof("processor: %s  issued invoice: %s  amount: %s", p.ID(), inv.ID, inv.Amount)
		return inv, nil
	}

	iss.log.Errorf("all %d processors failed", len(candidates))
	return nil, fault.ErrNoProcessorAvailable
}

func (iss *Issuer) issueOn(ctx context.Context, p *processor.Processor, sent satoshi.Optional, request Request) (*Invoice, error) {
	callCtx, cancel := context.WithTimeout(ctx, iss.callTimeout)
	defer cancel()

	backend, err := p.Backend(callCtx)
	if nil != err {
		return nil, err
	}

	createdAt := iss.now()
	issued, err := backend.IssueInvoice(callCtx, processor.InvoiceRequest{
		Amount: sent,
		Label:  request.Label,
		TTL:    request.TTL,
	})
	if nil != err {
		return nil, err
	}
	if nil == issued || "" == issued.InvoiceID || "" == issued.PaymentRequest {
		return nil, fmt.Errorf("%w: incomplete invoice", fault.ErrProcessorUnavailable)
	}

	expiresAt := issued.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = createdAt.Add(request.TTL)
	}
	if !expiresAt.After(createdAt) {
		return nil, fmt.Errorf("%w: invoice already expired at: %s", fault.ErrProcessorUnavailable, expiresAt)
	}

	return &Invoice{
		Processor:      p.ID(),
		Amount:         request.Amount,
		Label:          request.Label,
		CreatedAt:      createdAt,
		ExpiresAt:      expiresAt,
		ID:             issued.InvoiceID,
		PaymentRequest: issued.PaymentRequest,
	}, nil
}

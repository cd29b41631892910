// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - Lightning payment backends, their registry and
// the priority order used to choose between them
package processor

import (
	"context"
	"time"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// ID - processor identity, e.g. "breez" or "phoenixd"
type ID string

// String - convert to string
func (id ID) String() string {
	return string(id)
}

// InvoiceRequest - parameters passed to a backend to create an invoice
//
// an absent amount asks the backend for an "any amount" invoice
type InvoiceRequest struct {
	Amount satoshi.Optional
	Label  string
	TTL    time.Duration
}

// IssuedInvoice - a backend's reply to a successful invoice request
type IssuedInvoice struct {
	InvoiceID      string
	PaymentRequest string
	ExpiresAt      time.Time
}

// PendingReceive - an incoming payment as reported by a backend
type PendingReceive struct {
	ExternalID string
	Amount     satoshi.Amount
	Confirmed  bool
	ObservedAt time.Time
}

// Transaction - one wallet history entry
type Transaction struct {
	ID          string         `json:"id"`
	Amount      satoshi.Amount `json:"amount"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Confirmed   bool           `json:"confirmed"`
}

// WalletSnapshot - balance and transaction history
type WalletSnapshot struct {
	Balance      satoshi.Amount `json:"balance"`
	Transactions []Transaction  `json:"transactions"`
}

// PayOutcome - result of an outbound payment
type PayOutcome struct {
	PaymentID string         `json:"paymentId"`
	Status    string         `json:"status"`
	Fee       satoshi.Amount `json:"fee"`
}

// Backend - an established connection to a processor
//
// all failures are reported wrapping fault.ErrProcessorUnavailable
type Backend interface {
	IssueInvoice(context.Context, InvoiceRequest) (*IssuedInvoice, error)
	ListPendingReceives(ctx context.Context, window time.Duration) ([]PendingReceive, error)
	WalletSnapshot(context.Context) (*WalletSnapshot, error)
	PayInvoice(ctx context.Context, destination string) (*PayOutcome, error)
	Close() error
}

// Connector - bootstraps a Backend
type Connector interface {
	Connect(context.Context) (Backend, error)
}

// Processor - one registry entry
type Processor struct {
	id       ID
	priority int
	network  string
	conn     *connection
}

// New - create a processor entry
//
// a nil connector marks the processor as not configured, it stays
// visible in the registry but is never selected
func New(id ID, priority int, network string, connector Connector, connectTimeout time.Duration) *Processor {
	p := &Processor{
		id:       id,
		priority: priority,
		network:  network,
	}
	if nil != connector {
		p.conn = newConnection(connector, connectTimeout)
	}
	return p
}

// ID - processor identity
func (p *Processor) ID() ID {
	return p.id
}

// Priority - lower is preferred
func (p *Processor) Priority() int {
	return p.priority
}

// Network - the network name the processor was configured for
func (p *Processor) Network() string {
	return p.network
}

// Configured - true if the processor has usable credentials
func (p *Processor) Configured() bool {
	return nil != p.conn
}

// Connected - true once a connection has been established
func (p *Processor) Connected() bool {
	if nil == p.conn {
		return false
	}
	return p.conn.established()
}

// Backend - the shared connection, established on first use
func (p *Processor) Backend(ctx context.Context) (Backend, error) {
	if nil == p.conn {
		return nil, fault.ErrProcessorNotConfigured
	}
	return p.conn.get(ctx)
}

// Close - close the connection if one was established
func (p *Processor) Close() error {
	if nil == p.conn {
		return nil
	}
	return p.conn.close()
}

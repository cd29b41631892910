// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

const (
	paymentTypeReceive = "receive"
	paymentTypeAll     = "all"
	pendingLimit       = 100
	historyLimit       = 50
)

// Backend - an established connection
type Backend struct {
	sync.Mutex
	connector *Connector
	closed    bool
}

func (b *Backend) isClosed() bool {
	b.Lock()
	defer b.Unlock()
	return b.closed
}

type createInvoiceArguments struct {
	AmountSat     *uint64 `json:"amount_sat,omitempty"`
	Description   string  `json:"description"`
	ExpirySeconds int64   `json:"expiry_seconds"`
}

type createInvoiceReply struct {
	ID             string `json:"id"`
	PaymentRequest string `json:"payment_request"`
	ExpiresAt      int64  `json:"expires_at"`
}

// IssueInvoice - request a new invoice, an open amount is omitted from the call
func (b *Backend) IssueInvoice(ctx context.Context, request processor.InvoiceRequest) (*processor.IssuedInvoice, error) {
	if b.isClosed() {
		return nil, fault.ErrProcessorClosed
	}

	arguments := createInvoiceArguments{
		Description:   request.Label,
		ExpirySeconds: int64(request.TTL / time.Second),
	}
	if amount, ok := request.Amount.Get(); ok && 0 != amount {
		n := uint64(amount)
		arguments.AmountSat = &n
	}

	var reply createInvoiceReply
	if err := b.connector.call(ctx, "createinvoice", arguments, &reply); nil != err {
		return nil, err
	}

	if "" == reply.ID || "" == reply.PaymentRequest {
		return nil, fmt.Errorf("%w: createinvoice: missing invoice id or payment request", fault.ErrProcessorUnavailable)
	}
	if reply.ExpiresAt < 0 {
		return nil, fmt.Errorf("%w: createinvoice: invalid expiry: %d", fault.ErrProcessorUnavailable, reply.ExpiresAt)
	}

	issued := &processor.IssuedInvoice{
		InvoiceID:      reply.ID,
		PaymentRequest: reply.PaymentRequest,
	}
	if 0 != reply.ExpiresAt {
		issued.ExpiresAt = time.Unix(reply.ExpiresAt, 0).UTC()
	}
	return issued, nil
}

type listPaymentsArguments struct {
	Type            string `json:"type"`
	IncludeInFlight bool   `json:"include_in_flight"`
	Since           int64  `json:"since,omitempty"`
	Limit           int    `json:"limit"`
}

type paymentEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Confirmed   bool   `json:"confirmed"`
	Timestamp   int64  `json:"timestamp"`
	Description string `json:"description"`
}

// decode one entry, any malformed field rejects the whole reply
func (e paymentEntry) decode() (string, satoshi.Amount, time.Time, error) {
	if "" == e.ID {
		return "", 0, time.Time{}, fmt.Errorf("%w: listpayments: missing payment id", fault.ErrProcessorUnavailable)
	}
	amount, err := satoshi.FromBTCString(e.Amount)
	if nil != err {
		return "", 0, time.Time{}, fmt.Errorf("%w: listpayments: payment %q: %w", fault.ErrProcessorUnavailable, e.ID, err)
	}
	if e.Timestamp <= 0 {
		return "", 0, time.Time{}, fmt.Errorf("%w: listpayments: payment %q: invalid timestamp: %d", fault.ErrProcessorUnavailable, e.ID, e.Timestamp)
	}
	return e.ID, amount, time.Unix(e.Timestamp, 0).UTC(), nil
}

// ListPendingReceives - incoming payments, including in flight ones, seen within the window
func (b *Backend) ListPendingReceives(ctx context.Context, window time.Duration) ([]processor.PendingReceive, error) {
	if b.isClosed() {
		return nil, fault.ErrProcessorClosed
	}

	arguments := listPaymentsArguments{
		Type:            paymentTypeReceive,
		IncludeInFlight: true,
		Limit:           pendingLimit,
	}
	if window > 0 {
		arguments.Since = b.connector.now().Add(-window).Unix()
	}

	var reply []paymentEntry
	if err := b.connector.call(ctx, "listpayments", arguments, &reply); nil != err {
		return nil, err
	}

	receives := make([]processor.PendingReceive, 0, len(reply))
	for _, entry := range reply {
		if paymentTypeReceive != entry.Type {
			continue
		}
		id, amount, timestamp, err := entry.decode()
		if nil != err {
			return nil, err
		}
		receives = append(receives, processor.PendingReceive{
			ExternalID: id,
			Amount:     amount,
			Confirmed:  entry.Confirmed,
			ObservedAt: timestamp,
		})
	}
	return receives, nil
}

type balanceReply struct {
	Balance string `json:"balance"`
}

// WalletSnapshot - balance and the most recent payments
func (b *Backend) WalletSnapshot(ctx context.Context) (*processor.WalletSnapshot, error) {
	if b.isClosed() {
		return nil, fault.ErrProcessorClosed
	}

	var balance balanceReply
	if err := b.connector.call(ctx, "getbalance", struct{}{}, &balance); nil != err {
		return nil, err
	}
	amount, err := satoshi.FromBTCString(balance.Balance)
	if nil != err {
		return nil, fmt.Errorf("%w: getbalance: %w", fault.ErrProcessorUnavailable, err)
	}

	arguments := listPaymentsArguments{
		Type:            paymentTypeAll,
		IncludeInFlight: true,
		Limit:           historyLimit,
	}
	var reply []paymentEntry
	if err := b.connector.call(ctx, "listpayments", arguments, &reply); nil != err {
		return nil, err
	}

	snapshot := &processor.WalletSnapshot{
		Balance:      amount,
		Transactions: make([]processor.Transaction, 0, len(reply)),
	}
	for _, entry := range reply {
		id, value, timestamp, err := entry.decode()
		if nil != err {
			return nil, err
		}
		snapshot.Transactions = append(snapshot.Transactions, processor.Transaction{
			ID:          id,
			Amount:      value,
			Description: entry.Description,
			Timestamp:   timestamp,
			Confirmed:   entry.Confirmed,
		})
	}
	return snapshot, nil
}

type payInvoiceArguments struct {
	Destination string `json:"destination"`
}

type payInvoiceReply struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Fee    string `json:"fee"`
}

// PayInvoice - send an outbound payment
func (b *Backend) PayInvoice(ctx context.Context, destination string) (*processor.PayOutcome, error) {
	if b.isClosed() {
		return nil, fault.ErrProcessorClosed
	}
	if "" == destination {
		return nil, fault.ErrMissingParameters
	}

	var reply payInvoiceReply
	if err := b.connector.call(ctx, "payinvoice", payInvoiceArguments{Destination: destination}, &reply); nil != err {
		return nil, err
	}
	if "" == reply.ID {
		return nil, fmt.Errorf("%w: payinvoice: missing payment id", fault.ErrProcessorUnavailable)
	}

	fee := satoshi.Amount(0)
	if "" != reply.Fee {
		f, err := satoshi.FromBTCString(reply.Fee)
		if nil != err {
			return nil, fmt.Errorf("%w: payinvoice: %w", fault.ErrProcessorUnavailable, err)
		}
		fee = f
	}

	return &processor.PayOutcome{
		PaymentID: reply.ID,
		Status:    reply.Status,
		Fee:       fee,
	}, nil
}

// Close - release idle connections, later calls fail
func (b *Backend) Close() error {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.connector.client.CloseIdleConnections()
	b.connector.log.Info("closed")
	return nil
}

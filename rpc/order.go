// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

const (
	rateLimitOrder = 200
	rateBurstOrder = 100
)

// Order - type for RPC calls
type Order struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Service Service
	Timeout time.Duration
}

// NewOrder - create the Order RPC handler
func NewOrder(log *logger.L, service Service, timeout time.Duration) *Order {
	return &Order{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOrder, rateBurstOrder),
		Service: service,
		Timeout: timeout,
	}
}

// ---

// OrderCreateArguments - arguments for RPC
type OrderCreateArguments struct {
	Number uint64 `json:"number"`
}

// OrderReply - an order with all its payment attempts
type OrderReply struct {
	Order *order.Order `json:"order"`
}

// Create - store a new order
func (o *Order) Create(arguments *OrderCreateArguments, reply *OrderReply) error {
	if err := limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == arguments.Number {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.Timeout)
	defer cancel()

	created, err := o.Service.CreateOrder(ctx, arguments.Number)
	if nil != err {
		return err
	}

	o.Log.Infof("created order: %s  number: %d", created.ID, created.Number)
	reply.Order = created
	return nil
}

// ---

// OrderGetArguments - arguments for RPC
type OrderGetArguments struct {
	ID string `json:"id"`
}

// Get - read an order
func (o *Order) Get(arguments *OrderGetArguments, reply *OrderReply) error {
	if err := limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	id, err := parseID(arguments.ID)
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.Timeout)
	defer cancel()

	found, err := o.Service.Order(ctx, id)
	if nil != err {
		return err
	}

	reply.Order = found
	return nil
}

// ---

// OrderIssueArguments - arguments for RPC
//
// an absent amount issues an invoice the payer can fill in, expiry
// is in seconds and zero selects the configured default
type OrderIssueArguments struct {
	ID     string           `json:"id"`
	Amount satoshi.Optional `json:"amount"`
	Expiry uint64           `json:"expiry"`
}

// OrderIssueReply - result from issue request
type OrderIssueReply struct {
	Order   *order.Order   `json:"order"`
	Payment *order.Payment `json:"payment"`
}

// Issue - issue a lightning invoice for an order
func (o *Order) Issue(arguments *OrderIssueArguments, reply *OrderIssueReply) error {
	if err := limit(o.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	id, err := parseID(arguments.ID)
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.Timeout)
	defer cancel()

	ttl := time.Duration(arguments.Expiry) * time.Second
	updated, payment, err := o.Service.IssuePayment(ctx, id, arguments.Amount, ttl)
	if nil != err {
		o.Log.Warnf("order: %s  issue error: %s", id, err)
		return err
	}

	o.Log.Infof("order: %s  issued invoice: %s  processor: %s", id, payment.InvoiceID(), payment.Processor)
	reply.Order = updated
	reply.Payment = payment
	return nil
}

func parseID(s string) (uuid.UUID, error) {
	if "" == s {
		return uuid.Nil, fault.ErrMissingParameters
	}
	id, err := uuid.Parse(s)
	if nil != err {
		return uuid.Nil, fmt.Errorf("%w: %q", fault.ErrInvalidIdentifier, s)
	}
	return id, nil
}

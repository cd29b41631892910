// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
)

const (
	rateLimitWallet = 100
	rateBurstWallet = 50
	rateLimitPay    = 2
	rateBurstPay    = 2
)

// Wallet - type for RPC calls
type Wallet struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	PayLimiter *rate.Limiter
	Service    Service
	Timeout    time.Duration
}

// NewWallet - create the Wallet RPC handler
func NewWallet(log *logger.L, service Service, timeout time.Duration) *Wallet {
	return &Wallet{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitWallet, rateBurstWallet),
		PayLimiter: rate.NewLimiter(rateLimitPay, rateBurstPay),
		Service:    service,
		Timeout:    timeout,
	}
}

// ---

// WalletInfoArguments - arguments for RPC
type WalletInfoArguments struct {
	Processor processor.ID `json:"processor"`
}

// Info - balance and recent transactions of a processor wallet
func (w *Wallet) Info(arguments *WalletInfoArguments, reply *processor.WalletSnapshot) error {
	if err := limit(w.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Processor {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	snapshot, err := w.Service.WalletState(ctx, arguments.Processor)
	if nil != err {
		return err
	}

	*reply = *snapshot
	return nil
}

// ---

// WalletPayArguments - arguments for RPC
type WalletPayArguments struct {
	Processor   processor.ID `json:"processor"`
	Destination string       `json:"destination"`
}

// Pay - pay a lightning invoice from a processor wallet
func (w *Wallet) Pay(arguments *WalletPayArguments, reply *processor.PayOutcome) error {
	if err := limit(w.PayLimiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Processor || "" == arguments.Destination {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	outcome, err := w.Service.PayInvoice(ctx, arguments.Processor, arguments.Destination)
	if nil != err {
		return err
	}

	*reply = *outcome
	return nil
}

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
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/processor"
)

const (
	rateLimitReconcile = 10
	rateBurstReconcile = 5
)

// Reconcile - type for RPC calls
type Reconcile struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Service Service
	Timeout time.Duration
}

// NewReconcile - create the Reconcile RPC handler
func NewReconcile(log *logger.L, service Service, timeout time.Duration) *Reconcile {
	return &Reconcile{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitReconcile, rateBurstReconcile),
		Service: service,
		Timeout: timeout,
	}
}

// ReconcileRunArguments - arguments for RPC
type ReconcileRunArguments struct {
	Processor processor.ID `json:"processor"`
}

// Run - run one reconciliation pass against a processor
func (r *Reconcile) Run(arguments *ReconcileRunArguments, reply *lightning.Report) error {
	if err := limit(r.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Processor {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	report, err := r.Service.RunReconciliationPass(ctx, arguments.Processor)
	if nil != err {
		r.Log.Warnf("processor: %s  reconcile error: %s", arguments.Processor, err)
		return err
	}

	*reply = *report
	return nil
}

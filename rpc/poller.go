// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/processor"
)

// Poller - background process running a reconciliation pass on every
// configured processor each interval
type Poller struct {
	log      *logger.L
	service  Service
	interval time.Duration
	timeout  time.Duration
}

// NewPoller - create the reconciliation timer
func NewPoller(log *logger.L, service Service, interval time.Duration, timeout time.Duration) *Poller {
	return &Poller{
		log:      log,
		service:  service,
		interval: interval,
		timeout:  timeout,
	}
}

// Run - background process loop
func (p *Poller) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case <-time.After(p.interval):
			p.poll(ctx)
		}
	}

	log.Info("stopped")
}

// one pass over every configured processor, in priority order
func (p *Poller) poll(ctx context.Context) {
	for _, status := range p.service.Processors() {
		if !status.Configured {
			continue
		}
		if nil != ctx.Err() {
			return
		}
		p.pass(ctx, status.ID)
	}
}

func (p *Poller) pass(ctx context.Context, id processor.ID) {
	passCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	report, err := p.service.RunReconciliationPass(passCtx, id)
	if nil != err {
		p.log.Warnf("processor: %s  poll error: %s", id, err)
		return
	}
	p.log.Debugf("processor: %s  events: %d", id, report.Events)
}

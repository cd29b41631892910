// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lightning - the payment service: issuing invoices for
// orders, reconciling reported payments and reading wallet state
package lightning

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/counter"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/pending"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/reconcile"
	"github.com/bitmark-inc/lnpayd/wallet"
)

// Service - owns the registry and cache for the process lifetime
type Service struct {
	sync.RWMutex

	log      *logger.L
	settings Settings
	store    order.Store
	registry *processor.Registry
	cache    *wallet.Cache
	issuer   *invoice.Issuer
	scanner  *pending.Scanner
	matcher  *reconcile.Matcher
	closed   bool

	counters counters
}

type counters struct {
	issued      counter.Counter
	issueFailed counter.Counter
	confirmed   counter.Counter
	unmatched   counter.Counter
	mismatched  counter.Counter
	failed      counter.Counter
	passes      counter.Counter
}

// New - create the service, nothing is contacted until Connect or first use
func New(log *logger.L, settings Settings, store order.Store, registry *processor.Registry) (*Service, error) {
	if nil == log || nil == store || nil == registry {
		return nil, fault.ErrMissingParameters
	}

	settings = settings.withDefaults()

	s := &Service{
		log:      log,
		settings: settings,
		store:    store,
		registry: registry,
		cache:    wallet.NewWithClock(settings.Clock),
		issuer:   invoice.NewIssuer(log, settings.CallTimeout, settings.Clock),
		scanner:  pending.NewScanner(log, settings.CallTimeout, settings.Clock),
		matcher:  reconcile.NewMatcher(log, store, settings.Clock),
	}
	return s, nil
}

// Registry - the current registry
//
// callers keep using the returned registry for a whole operation
func (s *Service) Registry() *processor.Registry {
	s.RLock()
	defer s.RUnlock()
	return s.registry
}

// Connect - establish connections to every configured processor
//
// failures are logged, the processor is retried on first use
func (s *Service) Connect(ctx context.Context) error {
	registry := s.Registry()

	s.log.Info("connecting…")
	for _, p := range registry.List() {
		if !p.Configured() {
			s.log.Infof("processor: %s  not configured", p.ID())
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, s.settings.CallTimeout)
		_, err := p.Backend(callCtx)
		cancel()

		if nil != err {
			s.log.Warnf("processor: %s  connect error: %s", p.ID(), err)
		} else {
			s.log.Infof("processor: %s  connected", p.ID())
		}

		if err := ctx.Err(); nil != err {
			return err
		}
	}
	return nil
}

// Refresh - swap in a rebuilt registry and close the old one
func (s *Service) Refresh(registry *processor.Registry) error {
	if nil == registry {
		return fault.ErrMissingParameters
	}

	s.Lock()
	if s.closed {
		s.Unlock()
		return fault.ErrProcessorClosed
	}
	old := s.registry
	s.registry = registry
	s.Unlock()

	s.cache.Flush()
	s.log.Info("registry refreshed")

	return old.Close()
}

// Close - close all processor connections
func (s *Service) Close() error {
	s.Lock()
	if s.closed {
		s.Unlock()
		return nil
	}
	s.closed = true
	registry := s.registry
	s.Unlock()

	s.cache.Flush()
	s.log.Info("closing…")
	return registry.Close()
}

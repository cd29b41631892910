// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/processor/jsonrpc"
)

// build the processor registry from the configuration
//
// a processor with missing access details is registered without a
// connector so it is listed but never selected
func buildRegistry(options *configuration.Configuration) (*processor.Registry, error) {
	timeout := options.Timeout()

	processors := make([]*processor.Processor, 0, len(options.Processors))
	for _, p := range options.Processors {
		log := logger.New("proc-" + p.ID)

		var connector processor.Connector
		c, err := jsonrpc.New(jsonrpc.Configuration{
			URL:           p.URL,
			Username:      p.Username,
			Password:      p.Password,
			Certificate:   p.Certificate,
			PrivateKey:    p.PrivateKey,
			CACertificate: p.CACertificate,
			Network:       p.Network,
			RateLimit:     p.RateLimit,
		}, log)
		switch {
		case nil == err:
			connector = c
		case errors.Is(err, fault.ErrProcessorNotConfigured):
			log.Warnf("not configured: %s", err)
		default:
			return nil, err
		}

		processors = append(processors, processor.New(processor.ID(p.ID), p.Priority, p.Network, connector, timeout))
	}

	return processor.NewRegistry(processors...)
}

// service settings from the configuration
func buildSettings(options *configuration.Configuration) (lightning.Settings, error) {
	mode, err := invoice.ParseLabelMode(options.LabelMode)
	if nil != err {
		return lightning.Settings{}, err
	}

	preference := make([]processor.ID, 0, len(options.ProcessorPreference))
	for _, id := range options.ProcessorPreference {
		preference = append(preference, processor.ID(id))
	}

	return lightning.Settings{
		Network:         options.Network,
		Brand:           options.Brand,
		LabelMode:       mode,
		Preference:      preference,
		FreshnessWindow: options.Freshness(),
		WalletCacheTTL:  options.CacheTTL(),
		CallTimeout:     options.Timeout(),
		InvoiceTTL:      options.InvoiceExpiry(),
	}, nil
}

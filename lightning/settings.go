// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightning

import (
	"time"

	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/pending"
	"github.com/bitmark-inc/lnpayd/processor"
)

// defaults
const (
	DefaultWalletCacheTTL = 30 * time.Second
	DefaultCallTimeout    = 10 * time.Second
	DefaultInvoiceTTL     = 3600 * time.Second
	DefaultFreshness      = pending.DefaultWindow

	walletTransactions = 50
)

// Settings - service behaviour
type Settings struct {
	Network         string
	Brand           string
	LabelMode       invoice.LabelMode
	Preference      []processor.ID
	FreshnessWindow time.Duration
	WalletCacheTTL  time.Duration
	CallTimeout     time.Duration
	InvoiceTTL      time.Duration

	// time source, nil for the system clock
	Clock func() time.Time
}

// fill in zero values
func (s Settings) withDefaults() Settings {
	if s.FreshnessWindow <= 0 {
		s.FreshnessWindow = DefaultFreshness
	}
	if s.WalletCacheTTL <= 0 {
		s.WalletCacheTTL = DefaultWalletCacheTTL
	}
	if s.CallTimeout <= 0 {
		s.CallTimeout = DefaultCallTimeout
	}
	if s.InvoiceTTL <= 0 {
		s.InvoiceTTL = DefaultInvoiceTTL
	}
	if "" == s.LabelMode {
		s.LabelMode = invoice.LabelBrand
	}
	if nil == s.Clock {
		s.Clock = time.Now
	}
	return s
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package invoice - Lightning invoices and issuing them with fallback
// across processors
package invoice

import (
	"time"

	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// Invoice - a payment request issued by one processor
type Invoice struct {
	Processor      processor.ID     `json:"processor"`
	Amount         satoshi.Optional `json:"amount"`
	Label          string           `json:"label"`
	CreatedAt      time.Time        `json:"createdAt"`
	ExpiresAt      time.Time        `json:"expiresAt"`
	ID             string           `json:"id"`
	PaymentRequest string           `json:"paymentRequest"`
}

// Expired - true once the expiry time has been reached
func (inv *Invoice) Expired(at time.Time) bool {
	return !at.Before(inv.ExpiresAt)
}

// Matches - true if a received amount satisfies the invoice
//
// open amount invoices accept anything, otherwise the match is exact
func (inv *Invoice) Matches(received satoshi.Amount) bool {
	if inv.Amount.IsOpen() {
		return true
	}
	amount, _ := inv.Amount.Get()
	return amount == received
}

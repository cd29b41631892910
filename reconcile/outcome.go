// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reconcile

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/pending"
)

// Kind - what happened to one event
type Kind int

// outcome kinds
const (
	Confirmed Kind = iota
	AlreadyApplied
	Pending
	Expired
	Unmatched
	AmountMismatch
	Failed
)

var kindNames = []string{
	Confirmed:      "confirmed",
	AlreadyApplied: "already-applied",
	Pending:        "pending",
	Expired:        "expired",
	Unmatched:      "unmatched",
	AmountMismatch: "amount-mismatch",
	Failed:         "failed",
}

// String - name of the kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText - encode as the kind's name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - decode a kind's name
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fault.ErrInvalidOutcomeKind
}

// Outcome - the result of applying one event
//
// OrderID and PaymentID are zero when no attempt matched, Err is only
// set for Failed
type Outcome struct {
	Kind      Kind            `json:"kind"`
	Event     pending.Payment `json:"event"`
	OrderID   uuid.UUID       `json:"orderId"`
	PaymentID uuid.UUID       `json:"paymentId"`
	Err       error           `json:"-"`
}

// Tally - count of outcomes by kind
type Tally map[Kind]int

// Count - tally a list of outcomes
func Count(outcomes []Outcome) Tally {
	t := make(Tally, len(kindNames))
	for _, o := range outcomes {
		t[o.Kind] += 1
	}
	return t
}

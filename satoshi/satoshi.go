// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package satoshi - integral bitcoin amounts
package satoshi

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/lnpayd/fault"
)

const (
	// PerBitcoin - satoshis in one BTC
	PerBitcoin = 100000000

	// Maximum - no amount can exceed the total supply
	Maximum = 21000000 * PerBitcoin

	decimalPlaces = 8
)

// Amount - a whole number of satoshis
type Amount uint64

// String - plain decimal satoshi count
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// BTCString - the amount as a fixed eight decimal place BTC value
func (a Amount) BTCString() string {
	return decimal.New(int64(a), -decimalPlaces).StringFixed(decimalPlaces)
}

// FromBTCString - convert a BTC decimal string to satoshis
//
// i.e. "0.00000001" will convert to 1
//
// unlike a lenient digit scanner, anything that is not an exact
// non-negative satoshi value is rejected
func FromBTCString(btc string) (Amount, error) {
	d, err := decimal.NewFromString(btc)
	if nil != err {
		return 0, ErrInvalid(btc)
	}
	s := d.Shift(decimalPlaces)
	if s.Sign() < 0 || !s.Equal(s.Truncate(0)) || s.GreaterThan(decimal.New(Maximum, 0)) {
		return 0, ErrInvalid(btc)
	}
	return Amount(s.IntPart()), nil
}

// ErrInvalid - wrap the invalid amount error with the rejected text
func ErrInvalid(text string) error {
	return invalidAmount{text: text}
}

type invalidAmount struct {
	text string
}

func (e invalidAmount) Error() string {
	return fault.ErrInvalidAmount.Error() + ": " + strconv.Quote(e.text)
}
func (e invalidAmount) Unwrap() error { return fault.ErrInvalidAmount }

// Optional - an amount that may be absent
//
// the zero value is absent, which is distinct from Some(0)
type Optional struct {
	amount Amount
	set    bool
}

// Some - a present amount
func Some(a Amount) Optional {
	return Optional{amount: a, set: true}
}

// None - an absent amount
func None() Optional {
	return Optional{}
}

// Get - the amount and whether it is present
func (o Optional) Get() (Amount, bool) {
	return o.amount, o.set
}

// IsOpen - true for an absent or zero amount, i.e. the payer chooses
func (o Optional) IsOpen() bool {
	return !o.set || 0 == o.amount
}

// String - "none" for absent amounts
func (o Optional) String() string {
	if !o.set {
		return "none"
	}
	return o.amount.String()
}

// MarshalJSON - absent encodes as null
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(uint64(o.amount))
}

// UnmarshalJSON - null decodes as absent
func (o *Optional) UnmarshalJSON(data []byte) error {
	if "null" == string(data) {
		*o = None()
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); nil != err {
		return ErrInvalid(string(data))
	}
	if n > Maximum {
		return ErrInvalid(string(data))
	}
	*o = Some(Amount(n))
	return nil
}

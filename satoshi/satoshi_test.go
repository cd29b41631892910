// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package satoshi_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// check the BTC string conversion
func TestFromBTCString(t *testing.T) {
	tests := []struct {
		btc     string
		satoshi satoshi.Amount
	}{
		{"0", 0},
		{"0.0", 0},
		{"0.00000001", 1},
		{"1", 100000000},
		{"1.00000000", 100000000},
		{"1.1", 110000000},
		{"1.01", 101000000},
		{"1.0000001", 100000010},
		{"1.00000001", 100000001},
		{"1.99999999", 199999999},
		{"0.00001000", 1000},
		{"20999999.99999999", 2099999999999999},
	}

	for i, item := range tests {
		s, err := satoshi.FromBTCString(item.btc)
		if nil != err {
			t.Errorf("%d: BTC: %q  unexpected error: %s", i, item.btc, err)
			continue
		}
		if item.satoshi != s {
			t.Errorf("%d: BTC: %q → %d  expected: %d", i, item.btc, s, item.satoshi)
		}
	}
}

func TestFromBTCStringRejects(t *testing.T) {
	for _, btc := range []string{"", "abc", "-1", "0.000000001", "1.5e-9", "21000000.00000001"} {
		_, err := satoshi.FromBTCString(btc)
		assert.NotNil(t, err, "accepted: %q", btc)
		assert.True(t, errors.Is(err, fault.ErrInvalidAmount), "wrong error for: %q", btc)
	}
}

func TestBTCString(t *testing.T) {
	assert.Equal(t, "0.00001000", satoshi.Amount(1000).BTCString())
	assert.Equal(t, "1.00000001", satoshi.Amount(100000001).BTCString())
}

func TestOptional(t *testing.T) {
	none := satoshi.None()
	zero := satoshi.Some(0)

	_, ok := none.Get()
	assert.False(t, ok, "none is present")

	a, ok := zero.Get()
	assert.True(t, ok, "zero is absent")
	assert.Equal(t, satoshi.Amount(0), a, "wrong zero")

	assert.NotEqual(t, none, zero, "absent equals zero")
	assert.True(t, none.IsOpen(), "absent is not open")
	assert.True(t, zero.IsOpen(), "zero is not open")
	assert.False(t, satoshi.Some(1).IsOpen(), "fixed amount is open")
}

func TestOptionalJSON(t *testing.T) {
	type holder struct {
		Amount satoshi.Optional `json:"amount"`
	}

	b, err := json.Marshal(holder{Amount: satoshi.None()})
	assert.Nil(t, err, "marshal none")
	assert.Equal(t, `{"amount":null}`, string(b), "wrong none encoding")

	b, err = json.Marshal(holder{Amount: satoshi.Some(0)})
	assert.Nil(t, err, "marshal zero")
	assert.Equal(t, `{"amount":0}`, string(b), "wrong zero encoding")

	var h holder
	assert.Nil(t, json.Unmarshal([]byte(`{"amount":1000}`), &h), "unmarshal amount")
	assert.Equal(t, satoshi.Some(1000), h.Amount, "wrong amount")

	assert.Nil(t, json.Unmarshal([]byte(`{"amount":null}`), &h), "unmarshal null")
	assert.Equal(t, satoshi.None(), h.Amount, "wrong null")

	err = json.Unmarshal([]byte(`{"amount":-5}`), &h)
	assert.True(t, errors.Is(err, fault.ErrInvalidAmount), "negative accepted")
}

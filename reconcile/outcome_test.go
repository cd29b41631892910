// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reconcile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/reconcile"
)

func TestKindText(t *testing.T) {
	data, err := json.Marshal(reconcile.Outcome{Kind: reconcile.AmountMismatch})
	assert.Nil(t, err, "wrong marshal")

	var o reconcile.Outcome
	err = json.Unmarshal(data, &o)
	assert.Nil(t, err, "wrong unmarshal")
	assert.Equal(t, reconcile.AmountMismatch, o.Kind, "wrong kind")

	var k reconcile.Kind
	err = k.UnmarshalText([]byte("settled"))
	assert.Equal(t, fault.ErrInvalidOutcomeKind, err, "wrong error")
	assert.Equal(t, "unknown", reconcile.Kind(99).String(), "wrong out of range name")
}

func TestCount(t *testing.T) {
	tally := reconcile.Count([]reconcile.Outcome{
		{Kind: reconcile.Confirmed},
		{Kind: reconcile.Unmatched},
		{Kind: reconcile.Confirmed},
	})
	assert.Equal(t, 2, tally[reconcile.Confirmed], "wrong confirmed count")
	assert.Equal(t, 1, tally[reconcile.Unmatched], "wrong unmatched count")
	assert.Equal(t, 0, tally[reconcile.Failed], "wrong failed count")
}

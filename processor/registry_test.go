// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/processor/mocks"
)

func ids(list []*processor.Processor) []processor.ID {
	r := make([]processor.ID, 0, len(list))
	for _, p := range list {
		r = append(r, p.ID())
	}
	return r
}

func TestRegistryOrder(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockConnector(ctl)

	r, err := processor.NewRegistry(
		processor.New("lnd", 5, "bitcoin", c, 0),
		processor.New("breez", 1, "bitcoin", c, 0),
		processor.New("phoenixd", 4, "bitcoin", nil, 0),
		processor.New("btcpay", 3, "bitcoin", c, 0),
		processor.New("swiss", 3, "bitcoin", c, 0),
	)
	assert.Nil(t, err, "wrong NewRegistry")

	expected := []processor.ID{"breez", "btcpay", "swiss", "phoenixd", "lnd"}
	assert.Equal(t, expected, ids(r.List()), "wrong priority order")

	assert.True(t, r.IsConfigured("breez"), "breez not configured")
	assert.False(t, r.IsConfigured("phoenixd"), "phoenixd configured")
	assert.False(t, r.IsConfigured("unknown"), "unknown configured")

	p, ok := r.Get("lnd")
	assert.True(t, ok, "lnd not found")
	assert.Equal(t, 5, p.Priority(), "wrong priority")
	assert.Equal(t, "bitcoin", p.Network(), "wrong network")

	_, ok = r.Get("unknown")
	assert.False(t, ok, "unknown found")
}

func TestRegistryDuplicate(t *testing.T) {
	_, err := processor.NewRegistry(
		processor.New("lnd", 1, "bitcoin", nil, 0),
		processor.New("lnd", 2, "bitcoin", nil, 0),
	)
	assert.True(t, errors.Is(err, fault.ErrDuplicateProcessor), "wrong error")
	assert.True(t, fault.IsErrExists(err), "wrong error class")
}

func TestCandidates(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockConnector(ctl)

	r, err := processor.NewRegistry(
		processor.New("A", 1, "bitcoin", c, 0),
		processor.New("B", 2, "bitcoin", nil, 0),
		processor.New("C", 3, "bitcoin", c, 0),
	)
	assert.Nil(t, err, "wrong NewRegistry")

	tests := []struct {
		preference []processor.ID
		expected   []processor.ID
	}{
		{nil, []processor.ID{"A", "C"}},
		{[]processor.ID{}, []processor.ID{"A", "C"}},
		{[]processor.ID{"C", "A"}, []processor.ID{"C", "A"}},
		{[]processor.ID{"B", "C"}, []processor.ID{"C"}},
		{[]processor.ID{"X", "C", "C", "A", "X"}, []processor.ID{"C", "A"}},
		{[]processor.ID{"B"}, []processor.ID{}},
	}

	for i, item := range tests {
		actual := ids(processor.Candidates(r, item.preference))
		assert.Equal(t, item.expected, actual, "%d: wrong candidates", i)
	}

	assert.Nil(t, processor.Candidates(nil, nil), "nil registry")
}

func TestRegistryClose(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	c := mocks.NewMockConnector(ctl)

	p := processor.New("A", 1, "bitcoin", c, 0)
	r, err := processor.NewRegistry(p, processor.New("B", 2, "bitcoin", c, 0))
	assert.Nil(t, err, "wrong NewRegistry")

	c.EXPECT().Connect(gomock.Any()).Return(b, nil).Times(1)
	b.EXPECT().Close().Return(nil).Times(1)

	_, err = p.Backend(ctx())
	assert.Nil(t, err, "wrong Backend")
	assert.True(t, p.Connected(), "not connected")

	assert.Nil(t, r.Close(), "wrong Close")
	assert.False(t, p.Connected(), "still connected")

	_, err = p.Backend(ctx())
	assert.Equal(t, fault.ErrProcessorClosed, err, "wrong error after close")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightning_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/fixtures"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/processor/mocks"
	"github.com/bitmark-inc/lnpayd/satoshi"
	"github.com/bitmark-inc/lnpayd/storage"
)

var testTime = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	sync.Mutex
	t time.Time
}

func (c *clock) now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.Lock()
	c.t = c.t.Add(d)
	c.Unlock()
}

type harness struct {
	service *lightning.Service
	store   *storage.OrderStore
	clock   *clock
}

func newHarness(t *testing.T, processors ...*processor.Processor) *harness {
	log := logger.New(fixtures.LogCategory)

	store, err := storage.OpenMemory(log)
	assert.Nil(t, err, "wrong OpenMemory")
	t.Cleanup(func() { _ = store.Close() })

	registry, err := processor.NewRegistry(processors...)
	assert.Nil(t, err, "wrong NewRegistry")

	clk := &clock{t: testTime}
	store.SetClock(clk.now)

	s, err := lightning.New(log, lightning.Settings{
		Network:   "bitcoin",
		Brand:     "Shop",
		LabelMode: invoice.LabelBrandAndOrderNumber,
		Clock:     clk.now,
	}, store, registry)
	assert.Nil(t, err, "wrong New")

	return &harness{
		service: s,
		store:   store,
		clock:   clk,
	}
}

func connector(ctl *gomock.Controller, b processor.Backend) *mocks.MockConnector {
	c := mocks.NewMockConnector(ctl)
	c.EXPECT().Connect(gomock.Any()).Return(b, nil).AnyTimes()
	return c
}

func TestNewMissingParameters(t *testing.T) {
	_, err := lightning.New(nil, lightning.Settings{}, nil, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "nil parameters accepted")
}

// scenarios: issue on the configured fallback, then confirm exactly once
func TestIssueAndReconcile(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	h := newHarness(t,
		processor.New("A", 1, "bitcoin", nil, 0),
		processor.New("B", 2, "bitcoin", connector(ctl, b), 0),
	)

	o, err := h.service.CreateOrder(context.Background(), 1234)
	assert.Nil(t, err, "wrong CreateOrder")

	b.EXPECT().IssueInvoice(gomock.Any(), processor.InvoiceRequest{
		Amount: satoshi.Some(1000),
		Label:  "Shop - Order #1,234 #1234",
		TTL:    3600 * time.Second,
	}).Return(&processor.IssuedInvoice{
		InvoiceID:      "X",
		PaymentRequest: "lnbc10u1x",
	}, nil).Times(1)

	o, p, err := h.service.IssuePayment(context.Background(), o.ID, satoshi.Some(1000), 0)
	assert.Nil(t, err, "wrong IssuePayment")
	assert.Equal(t, processor.ID("B"), p.Processor, "wrong processor")
	assert.Equal(t, order.Created, p.Status, "wrong status")
	assert.Equal(t, 1, len(o.Payments), "wrong payment count")
	assert.Equal(t, testTime.Add(time.Hour), p.Invoice.ExpiresAt, "wrong expiry")

	h.clock.advance(time.Minute)
	b.EXPECT().ListPendingReceives(gomock.Any(), time.Hour).Return([]processor.PendingReceive{
		{ExternalID: "X", Amount: 1000, Confirmed: true, ObservedAt: h.clock.now()},
	}, nil).Times(2)

	report, err := h.service.RunReconciliationPass(context.Background(), "B")
	assert.Nil(t, err, "wrong RunReconciliationPass")
	assert.Equal(t, 1, report.Events, "wrong event count")
	assert.Equal(t, 1, report.Tally["confirmed"], "wrong tally")

	report, err = h.service.RunReconciliationPass(context.Background(), "B")
	assert.Nil(t, err, "wrong second pass")
	assert.Equal(t, 0, report.Tally["confirmed"], "confirmed twice")

	actual, err := h.service.Order(context.Background(), o.ID)
	assert.Nil(t, err, "wrong Order")
	assert.True(t, actual.Fulfilled(), "not fulfilled")

	stats := h.service.Stats()
	assert.Equal(t, uint64(1), stats.Issued, "wrong issued")
	assert.Equal(t, uint64(1), stats.Confirmed, "wrong confirmed")
	assert.Equal(t, uint64(2), stats.Passes, "wrong passes")

	_, _, err = h.service.IssuePayment(context.Background(), o.ID, satoshi.Some(1000), 0)
	assert.Equal(t, fault.ErrOrderAlreadyPaid, err, "paid order reissued")
}

// scenario: nothing configured records a failed attempt
func TestIssueNoProcessor(t *testing.T) {
	h := newHarness(t, processor.New("A", 1, "bitcoin", nil, 0))

	o, _ := h.service.CreateOrder(context.Background(), 1)
	_, _, err := h.service.IssuePayment(context.Background(), o.ID, satoshi.Some(1000), time.Hour)
	assert.Equal(t, fault.ErrNoProcessorAvailable, err, "wrong error")

	actual, _ := h.service.Order(context.Background(), o.ID)
	assert.Equal(t, 1, len(actual.Payments), "failed attempt not recorded")
	assert.Equal(t, order.Failed, actual.Current().Status, "wrong status")
	assert.Equal(t, uint64(1), h.service.Stats().IssueFailed, "wrong failed count")
}

func TestReissueSupersedes(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	h := newHarness(t, processor.New("B", 1, "bitcoin", connector(ctl, b), 0))

	gomock.InOrder(
		b.EXPECT().IssueInvoice(gomock.Any(), gomock.Any()).Return(&processor.IssuedInvoice{InvoiceID: "X", PaymentRequest: "lnbc1x"}, nil).Times(1),
		b.EXPECT().IssueInvoice(gomock.Any(), gomock.Any()).Return(&processor.IssuedInvoice{InvoiceID: "Y", PaymentRequest: "lnbc1y"}, nil).Times(1),
	)

	o, _ := h.service.CreateOrder(context.Background(), 1)
	_, first, err := h.service.IssuePayment(context.Background(), o.ID, satoshi.Some(1000), 0)
	assert.Nil(t, err, "wrong first IssuePayment")
	o, second, err := h.service.IssuePayment(context.Background(), o.ID, satoshi.Some(1000), 0)
	assert.Nil(t, err, "wrong second IssuePayment")

	assert.Equal(t, order.Expired, o.PaymentByID(first.ID).Status, "first not superseded")
	assert.Equal(t, second.ID, o.Current().ID, "wrong current")
}

func TestReconciliationPassErrors(t *testing.T) {
	h := newHarness(t, processor.New("A", 1, "bitcoin", nil, 0))

	_, err := h.service.RunReconciliationPass(context.Background(), "missing")
	assert.True(t, errors.Is(err, fault.ErrUnknownProcessor), "unknown processor scanned")

	_, err = h.service.RunReconciliationPass(context.Background(), "A")
	assert.Equal(t, fault.ErrProcessorNotConfigured, err, "unconfigured processor scanned")
}

func TestWalletStateCached(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	h := newHarness(t, processor.New("B", 1, "bitcoin", connector(ctl, b), 0))

	transactions := make([]processor.Transaction, 0, 60)
	for i := 0; i < 60; i += 1 {
		transactions = append(transactions, processor.Transaction{
			ID:        fmt.Sprintf("t%02d", i),
			Amount:    satoshi.Amount(i),
			Timestamp: testTime.Add(-time.Duration(i) * time.Minute),
			Confirmed: true,
		})
	}

	b.EXPECT().WalletSnapshot(gomock.Any()).Return(&processor.WalletSnapshot{
		Balance:      250000,
		Transactions: transactions,
	}, nil).Times(2)

	snapshot, err := h.service.WalletState(context.Background(), "B")
	assert.Nil(t, err, "wrong WalletState")
	assert.Equal(t, satoshi.Amount(250000), snapshot.Balance, "wrong balance")
	assert.Equal(t, 50, len(snapshot.Transactions), "wrong transaction count")
	assert.Equal(t, "t49", snapshot.Transactions[0].ID, "wrong oldest transaction")
	assert.Equal(t, "t00", snapshot.Transactions[49].ID, "wrong newest transaction")

	h.clock.advance(10 * time.Second)
	_, err = h.service.WalletState(context.Background(), "B")
	assert.Nil(t, err, "wrong cached WalletState")

	h.clock.advance(25 * time.Second)
	_, err = h.service.WalletState(context.Background(), "B")
	assert.Nil(t, err, "wrong refreshed WalletState")
}

func TestWalletStateFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	h := newHarness(t, processor.New("B", 1, "bitcoin", connector(ctl, b), 0))

	b.EXPECT().WalletSnapshot(gomock.Any()).Return(nil, fault.ErrProcessorUnavailable).Times(1)

	_, err := h.service.WalletState(context.Background(), "B")
	assert.True(t, errors.Is(err, fault.ErrCacheComputeFailed), "wrong error")
	assert.True(t, errors.Is(err, fault.ErrProcessorUnavailable), "cause lost")
}

func TestPayInvoiceInvalidatesWallet(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	b := mocks.NewMockBackend(ctl)
	h := newHarness(t, processor.New("B", 1, "bitcoin", connector(ctl, b), 0))

	b.EXPECT().WalletSnapshot(gomock.Any()).Return(&processor.WalletSnapshot{Balance: 10}, nil).Times(2)
	b.EXPECT().PayInvoice(gomock.Any(), "lnbc1dest").Return(&processor.PayOutcome{
		PaymentID: "out-1",
		Status:    "complete",
		Fee:       1,
	}, nil).Times(1)

	_, err := h.service.WalletState(context.Background(), "B")
	assert.Nil(t, err, "wrong WalletState")

	outcome, err := h.service.PayInvoice(context.Background(), "B", "lnbc1dest")
	assert.Nil(t, err, "wrong PayInvoice")
	assert.Equal(t, "out-1", outcome.PaymentID, "wrong payment id")

	_, err = h.service.WalletState(context.Background(), "B")
	assert.Nil(t, err, "wrong WalletState after pay")

	_, err = h.service.PayInvoice(context.Background(), "B", "")
	assert.Equal(t, fault.ErrMissingParameters, err, "empty destination accepted")
}

func TestRefresh(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	oldBackend := mocks.NewMockBackend(ctl)
	newBackend := mocks.NewMockBackend(ctl)
	h := newHarness(t, processor.New("B", 1, "bitcoin", connector(ctl, oldBackend), 0))

	oldBackend.EXPECT().Close().Return(nil).Times(1)
	assert.Nil(t, h.service.Connect(context.Background()), "wrong Connect")
	assert.True(t, h.service.Processors()[0].Connected, "not connected")

	registry, err := processor.NewRegistry(
		processor.New("C", 1, "bitcoin", connector(ctl, newBackend), 0),
		processor.New("B", 2, "bitcoin", nil, 0),
	)
	assert.Nil(t, err, "wrong NewRegistry")

	assert.Nil(t, h.service.Refresh(registry), "wrong Refresh")
	status := h.service.Processors()
	assert.Equal(t, processor.ID("C"), status[0].ID, "registry not swapped")
	assert.False(t, status[1].Configured, "wrong configured flag")

	assert.Nil(t, h.service.Close(), "wrong Close")
	assert.Equal(t, fault.ErrProcessorClosed, h.service.Refresh(registry), "refresh after close")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// OrderStore - order.Store on leveldb
//
// a single lock serialises every read-modify-write so the status
// compare-and-set holds across goroutines
type OrderStore struct {
	sync.Mutex

	db       *leveldb.DB
	log      *logger.L
	orders   *Table
	invoices *Table
	now      func() time.Time
}

func newOrderStore(db *leveldb.DB, log *logger.L, now func() time.Time) *OrderStore {
	return &OrderStore{
		db:       db,
		log:      log,
		orders:   newTable(ordersPrefix, db),
		invoices: newTable(invoicesPrefix, db),
		now:      now,
	}
}

// SetClock - replace the time source used for timestamps
func (s *OrderStore) SetClock(now func() time.Time) {
	s.Lock()
	s.now = now
	s.Unlock()
}

// Close - close the database
func (s *OrderStore) Close() error {
	s.Lock()
	defer s.Unlock()
	return s.db.Close()
}

// Count - number of stored orders
func (s *OrderStore) Count() (int, error) {
	return s.orders.Count()
}

// Create - store a new empty order
func (s *OrderStore) Create(ctx context.Context, number uint64) (*order.Order, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	o := &order.Order{
		ID:        uuid.New(),
		Number:    number,
		Payments:  []*order.Payment{},
		CreatedAt: s.now().UTC(),
	}

	batch := new(leveldb.Batch)
	if err := s.putOrder(batch, o); nil != err {
		return nil, err
	}
	if err := s.db.Write(batch, nil); nil != err {
		return nil, err
	}

	s.log.Debugf("created order: %s  number: %d", o.ID, o.Number)
	return o, nil
}

// Get - read an order
func (s *OrderStore) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	return s.getOrder(id)
}

// AddPayment - append an attempt and index its invoice
func (s *OrderStore) AddPayment(ctx context.Context, orderID uuid.UUID, payment *order.Payment) (*order.Order, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	if nil == payment || !payment.Status.IsValid() {
		return nil, fault.ErrMissingParameters
	}

	s.Lock()
	defer s.Unlock()

	o, err := s.getOrder(orderID)
	if nil != err {
		return nil, err
	}

	invoiceID := payment.InvoiceID()
	if "" != invoiceID && s.invoices.Has([]byte(invoiceID)) {
		return nil, fmt.Errorf("%w: %q", fault.ErrDuplicateInvoice, invoiceID)
	}

	now := s.now().UTC()

	// supersede any live attempt on the same processor
	if "" != payment.Processor {
		for _, p := range o.Payments {
			if payment.Processor == p.Processor && !p.Status.IsTerminal() {
				s.log.Infof("order: %s  payment: %s  superseded", o.ID, p.ID)
				p.Status = order.Expired
				p.UpdatedAt = now
			}
		}
	}

	o.Payments = append(o.Payments, payment)

	batch := new(leveldb.Batch)
	if err := s.putOrder(batch, o); nil != err {
		return nil, err
	}
	if "" != invoiceID {
		s.invoices.batchPut(batch, []byte(invoiceID), o.ID[:])
	}
	if err := s.db.Write(batch, nil); nil != err {
		return nil, err
	}

	return o, nil
}

// FindPendingOrderByInvoiceID - the order with a created or pending attempt for the invoice
func (s *OrderStore) FindPendingOrderByInvoiceID(ctx context.Context, invoiceID string) (*order.Order, *order.Payment, error) {
	if err := ctx.Err(); nil != err {
		return nil, nil, err
	}
	if "" == invoiceID {
		return nil, nil, fault.ErrOrderNotFound
	}

	s.Lock()
	defer s.Unlock()

	value, err := s.invoices.Get([]byte(invoiceID))
	if nil != err {
		return nil, nil, err
	}
	if nil == value {
		return nil, nil, fault.ErrOrderNotFound
	}

	orderID, err := uuid.FromBytes(value)
	if nil != err {
		fault.Criticalf("invoice: %q  corrupt index entry: %x", invoiceID, value)
		return nil, nil, err
	}

	o, err := s.getOrder(orderID)
	if nil != err {
		return nil, nil, err
	}

	p := o.PaymentByInvoiceID(invoiceID)
	if nil == p || !p.Status.In(order.Reconcilable) {
		return nil, nil, fault.ErrOrderNotFound
	}
	return o, p, nil
}

// ApplyConfirmedPayment - compare-and-set an attempt to confirmed
func (s *OrderStore) ApplyConfirmedPayment(ctx context.Context, orderID uuid.UUID, paymentID uuid.UUID, amount satoshi.Amount, currency string) error {
	return s.update(ctx, orderID, paymentID, order.Reconcilable, order.Confirmed, func(p *order.Payment) {
		p.Received = satoshi.Some(amount)
		p.Currency = currency
	})
}

// TransitionPayment - compare-and-set an attempt to a new status
func (s *OrderStore) TransitionPayment(ctx context.Context, orderID uuid.UUID, paymentID uuid.UUID, from []order.Status, to order.Status) error {
	return s.update(ctx, orderID, paymentID, from, to, nil)
}

func (s *OrderStore) update(ctx context.Context, orderID uuid.UUID, paymentID uuid.UUID, from []order.Status, to order.Status, modify func(*order.Payment)) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	s.Lock()
	defer s.Unlock()

	o, err := s.getOrder(orderID)
	if nil != err {
		return err
	}

	p := o.PaymentByID(paymentID)
	if nil == p {
		return fault.ErrPaymentNotFound
	}
	if !p.Status.In(from) {
		return fault.ErrPaymentNotPending
	}
	if !order.CanTransition(p.Status, to) {
		return fmt.Errorf("%w: %s → %s", fault.ErrInvalidStatusTransition, p.Status, to)
	}

	s.log.Debugf("order: %s  payment: %s  status: %s → %s", o.ID, p.ID, p.Status, to)

	p.Status = to
	p.UpdatedAt = s.now().UTC()
	if nil != modify {
		modify(p)
	}

	batch := new(leveldb.Batch)
	if err := s.putOrder(batch, o); nil != err {
		return err
	}
	return s.db.Write(batch, nil)
}

// only call with the lock held
func (s *OrderStore) getOrder(id uuid.UUID) (*order.Order, error) {
	value, err := s.orders.Get(id[:])
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.ErrOrderNotFound
	}

	var o order.Order
	if err := json.Unmarshal(value, &o); nil != err {
		return nil, err
	}
	return &o, nil
}

func (s *OrderStore) putOrder(batch *leveldb.Batch, o *order.Order) error {
	value, err := json.Marshal(o)
	if nil != err {
		return err
	}
	s.orders.batchPut(batch, o.ID[:], value)
	return nil
}

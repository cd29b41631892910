// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/lnpayd/fault"
)

const defaultConnectTimeout = 10 * time.Second

// lazily established shared backend
//
// concurrent first callers wait on the same attempt, a failed attempt
// is forgotten so the next caller dials again
type connection struct {
	sync.Mutex

	connector Connector
	timeout   time.Duration
	backend   Backend
	attempt   *attempt
	closed    bool
}

type attempt struct {
	done    chan struct{}
	backend Backend
	err     error
}

func newConnection(connector Connector, timeout time.Duration) *connection {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return &connection{
		connector: connector,
		timeout:   timeout,
	}
}

func (c *connection) established() bool {
	c.Lock()
	defer c.Unlock()
	return nil != c.backend
}

func (c *connection) get(ctx context.Context) (Backend, error) {
	c.Lock()
	if c.closed {
		c.Unlock()
		return nil, fault.ErrProcessorClosed
	}
	if nil != c.backend {
		b := c.backend
		c.Unlock()
		return b, nil
	}
	if nil == c.attempt {
		c.attempt = &attempt{
			done: make(chan struct{}),
		}
		go c.dial(c.attempt)
	}
	a := c.attempt
	c.Unlock()

	select {
	case <-a.done:
		return a.backend, a.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", fault.ErrProcessorUnavailable, ctx.Err())
	}
}

// the dial is detached from any one caller's context so a caller
// giving up does not fail the attempt for the others
func (c *connection) dial(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	b, err := c.connector.Connect(ctx)
	if nil == err && nil == b {
		err = fmt.Errorf("%w: connector returned no backend", fault.ErrProcessorUnavailable)
	}
	if nil != err && !errors.Is(err, fault.ErrProcessorUnavailable) && !errors.Is(err, fault.ErrProcessorNotConfigured) {
		err = fmt.Errorf("%w: %w", fault.ErrProcessorUnavailable, err)
	}

	c.Lock()
	c.attempt = nil
	if nil == err {
		if c.closed {
			_ = b.Close()
			b = nil
			err = fault.ErrProcessorClosed
		} else {
			c.backend = b
		}
	} else {
		b = nil
	}
	a.backend = b
	a.err = err
	c.Unlock()

	close(a.done)
}

func (c *connection) close() error {
	c.Lock()
	c.closed = true
	b := c.backend
	c.backend = nil
	c.Unlock()

	if nil == b {
		return nil
	}
	return b.Close()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"fmt"
	"sort"

	"github.com/bitmark-inc/lnpayd/fault"
)

// Registry - immutable set of processors
//
// a configuration change builds a new registry, holders of the old
// one keep a consistent view until they release it
type Registry struct {
	ordered []*Processor
	byID    map[ID]*Processor
}

// NewRegistry - build a registry, duplicate identities are rejected
func NewRegistry(processors ...*Processor) (*Registry, error) {
	r := &Registry{
		ordered: make([]*Processor, 0, len(processors)),
		byID:    make(map[ID]*Processor, len(processors)),
	}
	for _, p := range processors {
		if nil == p {
			continue
		}
		if _, ok := r.byID[p.id]; ok {
			return nil, fmt.Errorf("%w: %q", fault.ErrDuplicateProcessor, p.id)
		}
		r.byID[p.id] = p
		r.ordered = append(r.ordered, p)
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].priority < r.ordered[j].priority
	})

	return r, nil
}

// List - all processors in priority order
func (r *Registry) List() []*Processor {
	l := make([]*Processor, len(r.ordered))
	copy(l, r.ordered)
	return l
}

// Get - look up a processor by identity
func (r *Registry) Get(id ID) (*Processor, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// IsConfigured - true if the processor is known and configured
func (r *Registry) IsConfigured(id ID) bool {
	p, ok := r.byID[id]
	return ok && p.Configured()
}

// Close - close every established connection
//
// returns the first error encountered, all processors are still closed
func (r *Registry) Close() error {
	var first error
	for _, p := range r.ordered {
		if err := p.Close(); nil != err && nil == first {
			first = err
		}
	}
	return first
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package order

// Status - payment attempt state
type Status string

// payment states
const (
	Created   Status = "created"
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Expired   Status = "expired"
	Failed    Status = "failed"
)

// Reconcilable - states a confirmation may still be applied to
var Reconcilable = []Status{Created, Pending}

// IsTerminal - no further change is possible
func (s Status) IsTerminal() bool {
	switch s {
	case Confirmed, Expired, Failed:
		return true
	default:
		return false
	}
}

// IsValid - one of the known states
func (s Status) IsValid() bool {
	switch s {
	case Created, Pending, Confirmed, Expired, Failed:
		return true
	default:
		return false
	}
}

// CanTransition - check a single step of the payment lifecycle
func CanTransition(from Status, to Status) bool {
	switch from {
	case Created:
		return Pending == to || Confirmed == to || Expired == to
	case Pending:
		return Confirmed == to || Expired == to
	default:
		return false
	}
}

// In - true if s is one of the listed states
func (s Status) In(list []Status) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrCacheComputeFailed      = ProcessError("cache compute failed")
	ErrDuplicateInvoice        = ExistsError("invoice id matches more than one order")
	ErrDuplicateProcessor      = ExistsError("duplicate processor id")
	ErrInvalidAmount           = InvalidError("invalid amount")
	ErrInvalidExpiry           = InvalidError("invalid expiry")
	ErrInvalidIdentifier       = InvalidError("invalid identifier")
	ErrInvalidLabelMode        = InvalidError("invalid label mode")
	ErrInvalidNetwork          = InvalidError("processor network does not match configuration")
	ErrInvalidOutcomeKind      = InvalidError("invalid outcome kind")
	ErrInvalidProcessorKind    = InvalidError("invalid processor kind")
	ErrInvalidStatusTransition = InvalidError("invalid payment status transition")
	ErrMissingParameters       = InvalidError("missing parameters")
	ErrNoProcessorAvailable    = ProcessError("no lightning processor available")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrOrderAlreadyPaid        = ExistsError("order already paid")
	ErrOrderNotFound           = NotFoundError("order not found")
	ErrPaymentNotFound         = NotFoundError("payment not found")
	ErrPaymentNotPending       = ProcessError("payment is no longer pending")
	ErrProcessorClosed         = UnavailableError("processor connection closed")
	ErrProcessorNotConfigured  = InvalidError("processor is not configured")
	ErrProcessorUnavailable    = UnavailableError("processor unavailable")
	ErrRateLimiting            = ProcessError("rate limiting")
	ErrUnknownProcessor        = NotFoundError("unknown processor")
	ErrWebhookForbidden        = InvalidError("webhook token mismatch")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool      { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool     { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool    { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool     { var t ProcessError; return errors.As(e, &t) }
func IsErrUnavailable(e error) bool { var t UnavailableError; return errors.As(e, &t) }

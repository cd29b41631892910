// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/counter"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/processor"
)

// URL paths served
const (
	RPCPath     = "/lnpayd/rpc"
	DetailsPath = "/lnpayd/details"
	WebhookPath = "/lnpayd/webhook/"

	// WebhookTokenHeader - shared secret sent by the processor
	WebhookTokenHeader = "X-Webhook-Token"

	webhookBurst = 5
)

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// Handler - the argument passed to the HTTP handlers
type Handler struct {
	log                *logger.L
	server             *rpc.Server
	service            Service
	start              time.Time
	version            string
	maximumConnections uint64
	connections        counter.Counter
	webhookToken       string
	webhookLimiter     *rate.Limiter
	timeout            time.Duration
}

// HandlerOptions - values for NewHandler
type HandlerOptions struct {
	Version            string
	MaximumConnections uint64
	WebhookToken       string
	WebhookRate        float64
	Timeout            time.Duration
}

// NewHandler - create the HTTP handlers around an RPC server
func NewHandler(log *logger.L, server *rpc.Server, service Service, options HandlerOptions) *Handler {
	return &Handler{
		log:                log,
		server:             server,
		service:            service,
		start:              time.Now(),
		version:            options.Version,
		maximumConnections: options.MaximumConnections,
		webhookToken:       options.WebhookToken,
		webhookLimiter:     rate.NewLimiter(rate.Limit(options.WebhookRate), webhookBurst),
		timeout:            options.Timeout,
	}
}

// Mux - route all paths to their handler
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(RPCPath, h.RPC)
	mux.HandleFunc(DetailsPath, h.Details)
	mux.HandleFunc(WebhookPath, h.Webhook)
	mux.HandleFunc("/", h.Root)
	return mux
}

// Root - this matches anything not matched and returns error
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *Handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	count := h.connections.Increment()
	defer h.connections.Decrement()

	if count > h.maximumConnections {
		sendTooManyRequests(w)
		return
	}

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("serve request error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// DetailsReply - result of a details request
type DetailsReply struct {
	Version     string                      `json:"version"`
	Uptime      string                      `json:"uptime"`
	Connections uint64                      `json:"connections"`
	Counters    lightning.Stats             `json:"counters"`
	Processors  []lightning.ProcessorStatus `json:"processors"`
}

// Details - counters and processor status
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	reply := DetailsReply{
		Version:     h.version,
		Uptime:      time.Since(h.start).String(),
		Connections: h.connections.Uint64(),
		Counters:    h.service.Stats(),
		Processors:  h.service.Processors(),
	}

	sendReply(w, reply)
}

// Webhook - a processor reports activity, reconcile it now
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, WebhookPath), "/")
	if "" == id || strings.Contains(id, "/") {
		sendNotFound(w)
		return
	}

	if "" != h.webhookToken {
		token := r.Header.Get(WebhookTokenHeader)
		if 1 != subtle.ConstantTimeCompare([]byte(token), []byte(h.webhookToken)) {
			h.log.Warnf("webhook: %s  %s from: %q", id, fault.ErrWebhookForbidden, r.RemoteAddr)
			sendForbidden(w)
			return
		}
	}

	if !h.webhookLimiter.Allow() {
		sendTooManyRequests(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	report, err := h.service.RunReconciliationPass(ctx, processor.ID(id))
	if nil != err {
		h.log.Warnf("webhook: %s  reconcile error: %s", id, err)
		switch {
		case fault.IsErrNotFound(err):
			sendNotFound(w)
		case fault.IsErrInvalid(err):
			sendError(w, err.Error(), http.StatusBadRequest)
		case fault.IsErrUnavailable(err):
			sendError(w, "service unavailable", http.StatusServiceUnavailable)
		default:
			sendInternalServerError(w)
		}
		return
	}

	sendReply(w, report)
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, "too many requests", http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}

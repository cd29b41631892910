// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/bitmark-inc/lnpayd/fixtures"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type request struct {
	ID     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// a fake processor replying with canned results per method
type fakeNode struct {
	sync.Mutex
	results map[string]string
	errors  map[string]string
	calls   []request
	auth    string
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		results: map[string]string{
			"getinfo": `{"version":"0.4.2","network":"bitcoin"}`,
		},
		errors: map[string]string{},
	}
}

func (f *fakeNode) params(method string) []json.RawMessage {
	f.Lock()
	defer f.Unlock()
	var r []json.RawMessage
	for _, c := range f.calls {
		if method == c.Method {
			r = append(r, c.Params)
		}
	}
	return r
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); nil != err {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username, password, _ := r.BasicAuth()

	f.Lock()
	f.calls = append(f.calls, req)
	f.auth = username + ":" + password
	result, ok := f.results[req.Method]
	message, failed := f.errors[req.Method]
	f.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failed {
		reply := map[string]interface{}{
			"id":     req.ID,
			"result": nil,
			"error":  map[string]interface{}{"code": -1, "message": message},
		}
		_ = json.NewEncoder(w).Encode(reply)
		return
	}
	if !ok {
		result = "null"
	}
	reply := map[string]interface{}{
		"id":     req.ID,
		"result": json.RawMessage(result),
		"error":  nil,
	}
	_ = json.NewEncoder(w).Encode(reply)
}

func startFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	node := newFakeNode()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)
	return node, server
}

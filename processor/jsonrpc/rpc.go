// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/bitmark-inc/lnpayd/fault"
)

// for encoding the RPC arguments
type rpcArguments struct {
	ID     uint64      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// the RPC error response
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// for decoding the RPC reply
type rpcReply struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// high level call, every failure is reported as unavailable
func (c *Connector) call(ctx context.Context, method string, params interface{}, reply interface{}) error {
	if err := c.limiter.Wait(ctx); nil != err {
		return fmt.Errorf("%w: %s", fault.ErrProcessorUnavailable, err)
	}

	arguments := rpcArguments{
		ID:     c.id.Increment(),
		Method: method,
		Params: params,
	}

	c.log.Debugf("rpc call with: %v", arguments)

	response, err := c.post(ctx, &arguments)
	if nil != err {
		c.log.Tracef("rpc returned error: %v", err)
		return fmt.Errorf("%w: %s", fault.ErrProcessorUnavailable, err)
	}

	if nil != response.Error {
		return fmt.Errorf("%w: RPC error: %d: %s", fault.ErrProcessorUnavailable, response.Error.Code, response.Error.Message)
	}
	if response.ID != arguments.ID {
		return fmt.Errorf("%w: RPC id mismatch: sent: %d  received: %d", fault.ErrProcessorUnavailable, arguments.ID, response.ID)
	}
	if 0 == len(response.Result) || "null" == string(response.Result) {
		return fmt.Errorf("%w: RPC %s: missing result", fault.ErrProcessorUnavailable, method)
	}

	if err := json.Unmarshal(response.Result, reply); nil != err {
		return fmt.Errorf("%w: RPC %s: %s", fault.ErrProcessorUnavailable, method, err)
	}
	return nil
}

// basic RPC
func (c *Connector) post(ctx context.Context, arguments *rpcArguments) (*rpcReply, error) {
	s, err := json.Marshal(arguments)
	if nil != err {
		return nil, err
	}

	c.log.Tracef("rpc send: %s", s)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(s))
	if nil != err {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.SetBasicAuth(c.username, c.password)

	response, err := c.client.Do(request)
	if nil != err {
		return nil, err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return nil, err
	}

	c.log.Tracef("rpc response status: %d  body: %s", response.StatusCode, body)

	var reply rpcReply
	err = json.Unmarshal(body, &reply)
	if nil != err {
		if http.StatusOK != response.StatusCode {
			return nil, fmt.Errorf("HTTP status: %s", response.Status)
		}
		return nil, err
	}

	c.log.Debugf("rpc receive: %s", body)

	return &reply, nil
}

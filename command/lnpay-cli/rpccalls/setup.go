// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/bitmark-inc/lnpayd/counter"
	"github.com/bitmark-inc/lnpayd/rpc"
)

const clientTimeout = 60 * time.Second

// Client - to hold the lnpayd connection details
type Client struct {
	base    string
	client  *http.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
	id      counter.Counter
}

// NewClient - create an HTTPS client for an lnpayd
//
// the server certificate is normally self signed so it is not
// verified, when fingerprint is given it must match the SHA3-256 of
// the certificate
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err || 32 != len(expected) {
			return nil, fmt.Errorf("invalid fingerprint: %q", fingerprint)
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return errors.New("no server certificate")
			}
			actual := rpc.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fmt.Errorf("server fingerprint: %x does not match", actual)
			}
			return nil
		}
	}

	c := &Client{
		base: "https://" + connect,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
			Timeout: clientTimeout,
		},
		verbose: verbose,
		handle:  handle,
	}
	return c, nil
}

type request struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  interface{}     `json:"error"`
}

type errorReply struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// Call - perform one JSON-RPC call
func (client *Client) Call(method string, arguments interface{}, reply interface{}) error {

	r := request{
		ID:     client.id.Increment(),
		Method: method,
		Params: []interface{}{arguments},
	}
	client.printJson(method+" Request", arguments)

	body, err := json.Marshal(r)
	if nil != err {
		return err
	}

	data, err := client.do(http.MethodPost, rpc.RPCPath, body)
	if nil != err {
		return err
	}

	var resp response
	if err := json.Unmarshal(data, &resp); nil != err {
		return err
	}
	if nil != resp.Error {
		return fmt.Errorf("%v", resp.Error)
	}
	if resp.ID != r.ID {
		return fmt.Errorf("response id: %d does not match request id: %d", resp.ID, r.ID)
	}

	if err := json.Unmarshal(resp.Result, reply); nil != err {
		return err
	}
	client.printJson(method+" Reply", reply)
	return nil
}

// Get - fetch a JSON document
func (client *Client) Get(path string, reply interface{}) error {
	data, err := client.do(http.MethodGet, path, nil)
	if nil != err {
		return err
	}
	return json.Unmarshal(data, reply)
}

func (client *Client) do(method string, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if nil != body {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, client.base+path, reader)
	if nil != err {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.client.Do(req)
	if nil != err {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return nil, err
	}

	if http.StatusOK != resp.StatusCode {
		var e errorReply
		if err := json.Unmarshal(data, &e); nil == err && "" != e.Error {
			return nil, fmt.Errorf("http status: %d  error: %s", resp.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return data, nil
}

// Close - release idle connections
func (client *Client) Close() {
	client.client.CloseIdleConnections()
}

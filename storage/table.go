// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/lnpayd/fault"
)

// Table - one prefix of the database
type Table struct {
	prefix   byte
	database *leveldb.DB
}

func newTable(prefix byte, database *leveldb.DB) *Table {
	return &Table{
		prefix:   prefix,
		database: database,
	}
}

// prepend the prefix onto the key
func (t *Table) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = t.prefix
	return append(prefixedKey, key...)
}

// read a value for a given key, nil if absent
func (t *Table) Get(key []byte) ([]byte, error) {
	if nil == t.database {
		return nil, fault.ErrNotInitialised
	}
	value, err := t.database.Get(t.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (t *Table) Has(key []byte) bool {
	if nil == t.database {
		return false
	}
	found, _ := t.database.Has(t.prefixKey(key), nil)
	return found
}

// add a put to a batch
func (t *Table) batchPut(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(t.prefixKey(key), value)
}

// Count - number of keys in the table
func (t *Table) Count() (int, error) {
	if nil == t.database {
		return 0, fault.ErrNotInitialised
	}
	iter := t.database.NewIterator(util.BytesPrefix([]byte{t.prefix}), nil)
	defer iter.Release()

	n := 0
	for iter.Next() {
		n += 1
	}
	return n, iter.Error()
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/metervm/metervm/metering"
)

// ChildStorage is a prefix-partitioned view over one Storage, for
// hierarchical state within one owner. It holds no state beyond the
// prefix: metering, size limits, and owner isolation are all enforced
// exactly once, at the parent.
type ChildStorage struct {
	parent *Storage
	prefix []byte
}

func NewChild(parent *Storage, prefix []byte) *ChildStorage {
	return &ChildStorage{
		parent: parent,
		prefix: prefix,
	}
}

func (c *ChildStorage) Prefix() []byte { return c.prefix }

func (c *ChildStorage) prefixedKey(key []byte) []byte {
	pk := make([]byte, 0, len(c.prefix)+len(key))
	pk = append(pk, c.prefix...)
	return append(pk, key...)
}

func (c *ChildStorage) Set(key []byte, value []byte, mtr *metering.Meter) error {
	return c.parent.Set(c.prefixedKey(key), value, mtr)
}

func (c *ChildStorage) Get(key []byte, mtr *metering.Meter) ([]byte, bool, error) {
	return c.parent.Get(c.prefixedKey(key), mtr)
}

func (c *ChildStorage) Contains(key []byte, mtr *metering.Meter) (bool, error) {
	return c.parent.Contains(c.prefixedKey(key), mtr)
}

func (c *ChildStorage) Remove(key []byte, mtr *metering.Meter) error {
	return c.parent.Remove(c.prefixedKey(key), mtr)
}

// Clear removes every key under this prefix one by one through the parent,
// so each delete is metered and its deposit refunded. This is the metered
// counterpart to the parent's unmetered Clear.
func (c *ChildStorage) Clear(mtr *metering.Meter) error {
	kvs, err := c.parent.PrefixIter(c.prefix)
	if err != nil {
		return err
	}
	for _, kv := range kvs {
		if err := c.parent.Remove(kv.Key, mtr); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns every key under this prefix, prefix stripped.
func (c *ChildStorage) Keys() ([][]byte, error) {
	kvs, err := c.PrefixIter(nil)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(kvs))
	for _, kv := range kvs {
		keys = append(keys, kv.Key)
	}
	return keys, nil
}

// Entries returns every key-value pair under this prefix, prefix stripped.
func (c *ChildStorage) Entries() ([]KeyValue, error) {
	return c.PrefixIter(nil)
}

// PrefixIter returns the key-value pairs whose key under this child starts
// with prefix. Returned keys are relative to the child: the child prefix is
// stripped, the queried prefix is retained.
func (c *ChildStorage) PrefixIter(prefix []byte) ([]KeyValue, error) {
	kvs, err := c.parent.PrefixIter(c.prefixedKey(prefix))
	if err != nil {
		return nil, err
	}
	entries := make([]KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		entries = append(entries, KeyValue{Key: kv.Key[len(c.prefix):], Value: kv.Value})
	}
	return entries, nil
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage implements the owner-namespaced key-value store of the
// contract runtime. Every mutation routes through a metering.Meter before
// it touches the backing database; on any charge failure the database is
// left byte-for-byte unchanged.
package storage

import (
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/metervm/metervm/metering"
)

// Limits bounds a single owner's keyspace.
type Limits struct {
	MaxKeySize      int `json:"maxKeySize"`
	MaxValueSize    int `json:"maxValueSize"`
	MaxStorageItems int `json:"maxStorageItems"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxKeySize:      1024,        // 1 KiB
		MaxValueSize:    16 * 1024,   // 16 KiB
		MaxStorageItems: 1024 * 1024, // 1M items
	}
}

type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// Storage is one owner's view over a shared physical database. Every
// physical key is the fixed-width owner id followed by the logical key, so
// two Storages with distinct owners can share one backing database without
// ever observing each other's entries.
type Storage struct {
	db     database.Database
	owner  ids.ID
	limits Limits
	items  int
}

// New opens the owner's namespace on db, counting any entries already
// present so the item limit survives across calls.
func New(owner ids.ID, limits Limits, db database.Database) (*Storage, error) {
	s := &Storage{
		db:     db,
		owner:  owner,
		limits: limits,
	}
	cursor := db.NewIteratorWithPrefix(owner[:])
	defer cursor.Release()
	for cursor.Next() {
		if len(cursor.Key()) > len(s.owner) {
			s.items++
		}
	}
	if err := cursor.Error(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Owner() ids.ID  { return s.owner }
func (s *Storage) Limits() Limits { return s.limits }

// Len returns the number of logical keys stored for this owner.
func (s *Storage) Len() int { return s.items }

// PhysicalKey returns the database key holding "key" for "owner": the
// fixed-width owner id followed by the logical key. Every owner-namespaced
// access, metered or not, derives its key here.
func PhysicalKey(owner ids.ID, key []byte) []byte {
	pk := make([]byte, 0, len(owner)+len(key))
	pk = append(pk, owner[:]...)
	return append(pk, key...)
}

func (s *Storage) physicalKey(key []byte) []byte {
	return PhysicalKey(s.owner, key)
}

// Set writes value under key, charging the write through mtr first.
// Overwriting an existing key is always permitted regardless of the item
// count; only a brand new key can hit the item limit.
func (s *Storage) Set(key []byte, value []byte, mtr *metering.Meter) error {
	if len(key) > s.limits.MaxKeySize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrKeyTooLarge, len(key), s.limits.MaxKeySize)
	}
	if len(value) > s.limits.MaxValueSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrValueTooLarge, len(value), s.limits.MaxValueSize)
	}

	pk := s.physicalKey(key)
	exists, err := s.db.Has(pk)
	if err != nil {
		return err
	}
	if !exists && s.items >= s.limits.MaxStorageItems {
		return ErrStorageLimitExceeded
	}

	if err := mtr.ChargeStorageWrite(key, value); err != nil {
		return fmt.Errorf("metering: %w", err)
	}

	if err := s.db.Put(pk, value); err != nil {
		return err
	}
	if !exists {
		s.items++
	}
	return nil
}

// Get returns the value stored under key and whether it exists, charging
// the read through mtr first.
func (s *Storage) Get(key []byte, mtr *metering.Meter) ([]byte, bool, error) {
	if len(key) > s.limits.MaxKeySize {
		return nil, false, fmt.Errorf("%w: %d bytes, maximum is %d", ErrKeyTooLarge, len(key), s.limits.MaxKeySize)
	}

	if err := mtr.ChargeStorageRead(key); err != nil {
		return nil, false, fmt.Errorf("metering: %w", err)
	}

	v, err := s.db.Get(s.physicalKey(key))
	if err == database.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Contains reports whether key exists, charged identically to a read.
func (s *Storage) Contains(key []byte, mtr *metering.Meter) (bool, error) {
	if len(key) > s.limits.MaxKeySize {
		return false, fmt.Errorf("%w: %d bytes, maximum is %d", ErrKeyTooLarge, len(key), s.limits.MaxKeySize)
	}

	if err := mtr.ChargeStorageRead(key); err != nil {
		return false, fmt.Errorf("metering: %w", err)
	}

	return s.db.Has(s.physicalKey(key))
}

// Remove deletes key, charging the delete (and refunding its deposit)
// through mtr first. Removing an absent key is charged like any delete.
func (s *Storage) Remove(key []byte, mtr *metering.Meter) error {
	if len(key) > s.limits.MaxKeySize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrKeyTooLarge, len(key), s.limits.MaxKeySize)
	}

	if err := mtr.ChargeStorageDelete(key); err != nil {
		return fmt.Errorf("metering: %w", err)
	}

	pk := s.physicalKey(key)
	exists, err := s.db.Has(pk)
	if err != nil {
		return err
	}
	if err := s.db.Delete(pk); err != nil {
		return err
	}
	if exists {
		s.items--
	}
	return nil
}

// Clear drops every entry for this owner unconditionally, with no per-key
// metering and no deposit refund; deposit settlement for account
// destruction happens out-of-band. Callers needing per-key refunds should
// clear through a ChildStorage instead.
func (s *Storage) Clear() error {
	b := s.db.NewBatch()
	cursor := s.db.NewIteratorWithPrefix(s.physicalKey(nil))
	defer cursor.Release()
	for cursor.Next() {
		if err := b.Delete(cursor.Key()); err != nil {
			return err
		}
	}
	if err := cursor.Error(); err != nil {
		return err
	}
	if err := b.Write(); err != nil {
		return err
	}
	s.items = 0
	return nil
}

// Keys returns every logical key stored for this owner.
func (s *Storage) Keys() ([][]byte, error) {
	kvs, err := s.PrefixIter(nil)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(kvs))
	for _, kv := range kvs {
		keys = append(keys, kv.Key)
	}
	return keys, nil
}

// Entries returns every logical key-value pair stored for this owner.
func (s *Storage) Entries() ([]KeyValue, error) {
	return s.PrefixIter(nil)
}

// PrefixIter returns the logical key-value pairs whose logical key starts
// with prefix. Returned keys are logical: the owner id is stripped, the
// queried prefix is retained.
func (s *Storage) PrefixIter(prefix []byte) ([]KeyValue, error) {
	kvs := []KeyValue{}
	cursor := s.db.NewIteratorWithPrefix(s.physicalKey(prefix))
	defer cursor.Release()
	for cursor.Next() {
		pk := cursor.Key()
		if len(pk) <= len(s.owner) {
			continue
		}
		key := make([]byte, len(pk)-len(s.owner))
		copy(key, pk[len(s.owner):])
		value := make([]byte, len(cursor.Value()))
		copy(value, cursor.Value())
		kvs = append(kvs, KeyValue{Key: key, Value: value})
	}
	if err := cursor.Error(); err != nil {
		return nil, err
	}
	return kvs, nil
}

// Import seeds entries without metering, for test harnesses and contract
// migration. Imported sizes are not recorded in any deposit ledger.
func (s *Storage) Import(entries []KeyValue) error {
	for _, kv := range entries {
		pk := s.physicalKey(kv.Key)
		exists, err := s.db.Has(pk)
		if err != nil {
			return err
		}
		if err := s.db.Put(pk, kv.Value); err != nil {
			return err
		}
		if !exists {
			s.items++
		}
	}
	return nil
}

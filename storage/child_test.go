// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/metervm/metervm/metering"
)

func TestChildForwarding(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	parent, err := New(ids.ID{0x1}, DefaultLimits(), db)
	if err != nil {
		t.Fatal(err)
	}
	child := NewChild(parent, []byte("sub/"))
	mtr := openMeter()

	if err := child.Set([]byte("k"), []byte("v"), mtr); err != nil {
		t.Fatal(err)
	}

	// the child key lands in the parent under its prefix
	v, ok, err := parent.Get([]byte("sub/k"), mtr)
	if err != nil || !ok {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}
	if !bytes.Equal(v, []byte("v")) {
		t.Fatalf("unexpected value %q, expected %q", v, "v")
	}

	v, ok, err = child.Get([]byte("k"), mtr)
	if err != nil || !ok {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}
	if !bytes.Equal(v, []byte("v")) {
		t.Fatalf("unexpected value %q, expected %q", v, "v")
	}
	if ok, err := child.Contains([]byte("k"), mtr); !ok || err != nil {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}

	if err := child.Remove([]byte("k"), mtr); err != nil {
		t.Fatal(err)
	}
	if ok, err := parent.Contains([]byte("sub/k"), mtr); ok || err != nil {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}
}

func TestChildKeysEntries(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	parent, err := New(ids.ID{0x1}, DefaultLimits(), db)
	if err != nil {
		t.Fatal(err)
	}
	child := NewChild(parent, []byte("sub/"))
	mtr := openMeter()

	if err := child.Set([]byte("a"), []byte("1"), mtr); err != nil {
		t.Fatal(err)
	}
	if err := child.Set([]byte("b"), []byte("2"), mtr); err != nil {
		t.Fatal(err)
	}
	// sibling outside the child prefix
	if err := parent.Set([]byte("other"), []byte("3"), mtr); err != nil {
		t.Fatal(err)
	}

	keys, err := child.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("unexpected %d keys, expected 2", len(keys))
	}
	for _, k := range keys {
		// child keys come back with the child prefix stripped
		if bytes.HasPrefix(k, []byte("sub/")) {
			t.Fatalf("unexpected unstripped key %q", k)
		}
	}

	entries, err := child.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("unexpected %d entries, expected 2", len(entries))
	}
}

func TestChildPrefixIter(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	parent, err := New(ids.ID{0x1}, DefaultLimits(), db)
	if err != nil {
		t.Fatal(err)
	}
	child := NewChild(parent, []byte("sub/"))
	mtr := openMeter()

	for _, k := range []string{"app/a", "app/b", "sys/a"} {
		if err := child.Set([]byte(k), []byte("v"), mtr); err != nil {
			t.Fatal(err)
		}
	}
	// sibling outside the child prefix that still shares the queried part
	if err := parent.Set([]byte("app/x"), []byte("v"), mtr); err != nil {
		t.Fatal(err)
	}

	kvs, err := child.PrefixIter([]byte("app/"))
	if err != nil {
		t.Fatal(err)
	}
	if len(kvs) != 2 {
		t.Fatalf("unexpected %d entries, expected 2", len(kvs))
	}
	for _, kv := range kvs {
		// keys come back relative to the child with the queried prefix kept
		if bytes.HasPrefix(kv.Key, []byte("sub/")) {
			t.Fatalf("unexpected unstripped key %q", kv.Key)
		}
		if !bytes.HasPrefix(kv.Key, []byte("app/")) {
			t.Fatalf("unexpected key %q, expected app/ prefix", kv.Key)
		}
	}
}

// Clearing through the child refunds each key's deposit; clearing the
// parent directly refunds nothing.
func TestChildClearRefunds(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	parent, err := New(ids.ID{0x1}, DefaultLimits(), db)
	if err != nil {
		t.Fatal(err)
	}
	child := NewChild(parent, []byte("sub/"))
	mtr := openMeter()
	rate := mtr.Costs().StorageDeposit.Byte

	if err := child.Set([]byte("a"), bytes.Repeat([]byte("x"), 5), mtr); err != nil {
		t.Fatal(err)
	}
	if err := child.Set([]byte("b"), bytes.Repeat([]byte("x"), 7), mtr); err != nil {
		t.Fatal(err)
	}
	if mtr.StorageDepositUsed() != 12*rate {
		t.Fatalf("unexpected deposit used %d, expected %d", mtr.StorageDepositUsed(), 12*rate)
	}

	before := mtr.StorageDepositRemaining()
	if err := child.Clear(mtr); err != nil {
		t.Fatal(err)
	}
	if got := mtr.StorageDepositRemaining() - before; got != 1_200_000 {
		t.Fatalf("unexpected freed deposit %d, expected 1200000", got)
	}
	entries, err := child.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("unexpected entries %v, expected none", entries)
	}
}

// Running out of gas mid-clear leaves the already-removed keys gone; the
// host treats the whole call as the atomicity unit.
func TestChildClearOutOfGas(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	parent, err := New(ids.ID{0x1}, DefaultLimits(), db)
	if err != nil {
		t.Fatal(err)
	}
	child := NewChild(parent, []byte("sub/"))

	seed := openMeter()
	if err := child.Set([]byte("a"), []byte("1"), seed); err != nil {
		t.Fatal(err)
	}
	if err := child.Set([]byte("b"), []byte("2"), seed); err != nil {
		t.Fatal(err)
	}

	// enough gas for exactly one delete at the default cost of 500
	mtr := metering.New(500, math.MaxUint64, math.MaxUint64)
	if err := child.Clear(mtr); err == nil {
		t.Fatal("expected clear to run out of gas")
	}
	entries, err := child.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("unexpected %d entries, expected 1", len(entries))
	}
}

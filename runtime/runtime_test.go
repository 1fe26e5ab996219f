// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metervm/metervm/metering"
	"github.com/metervm/metervm/storage"
)

func newTestRuntime(t *testing.T, gasLimit uint64) *Runtime {
	t.Helper()

	db := memdb.New()
	t.Cleanup(func() { db.Close() })

	store, err := storage.New(ids.ID{0x1}, storage.DefaultLimits(), db)
	require.NoError(t, err)

	mtr := metering.New(gasLimit, math.MaxUint64, math.MaxUint64)
	return New(Context{Address: ids.ID{0x1}, Caller: ids.ID{0x2}}, mtr, store)
}

func TestStorageRoundTrip(t *testing.T) {
	t.Parallel()

	r := newTestRuntime(t, math.MaxUint64)

	require.NoError(t, r.SetStorage([]byte("k"), []byte("v")))

	v, ok, err := r.GetStorage([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	ok, err = r.ContainsStorage([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.RemoveStorage([]byte("k")))
	_, ok, err = r.GetStorage([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmitEvent(t *testing.T) {
	t.Parallel()

	r := newTestRuntime(t, math.MaxUint64)

	topics := [][]byte{[]byte("transfer")}
	require.NoError(t, r.EmitEvent(topics, []byte("data")))
	require.Len(t, r.Events(), 1)
	assert.Equal(t, topics, r.Events()[0].Topics)
	assert.Equal(t, []byte("data"), r.Events()[0].Data)
}

// An event whose charge fails is not recorded.
func TestEmitEventOutOfGas(t *testing.T) {
	t.Parallel()

	r := newTestRuntime(t, 10)

	err := r.EmitEvent([][]byte{[]byte("t")}, []byte("data"))
	require.ErrorIs(t, err, metering.ErrOutOfGas)
	assert.Empty(t, r.Events())
}

func TestChildStore(t *testing.T) {
	t.Parallel()

	r := newTestRuntime(t, math.MaxUint64)

	child := r.ChildStore([]byte("sub/"))
	require.NoError(t, child.Set([]byte("k"), []byte("v"), r.Meter()))

	v, ok, err := r.GetStorage([]byte("sub/k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestReceipt(t *testing.T) {
	t.Parallel()

	r := newTestRuntime(t, 1_000_000)

	require.NoError(t, r.Step(40))
	require.NoError(t, r.Alloc(64))
	require.NoError(t, r.ChargeCall([]byte("in"), 1))
	require.NoError(t, r.EmitEvent(nil, []byte("d")))

	rec := r.Receipt()
	assert.Equal(t, r.Meter().GasUsed(), rec.GasUsed)
	assert.Equal(t, uint64(1_000_000), rec.GasLimit)
	assert.Equal(t, rec.GasLimit-rec.GasUsed, rec.GasRemaining())
	assert.Equal(t, uint64(40), rec.InstructionCount)
	assert.Len(t, rec.Events, 1)
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtime binds one call's context, meter, and storage together
// and exposes the host operations a contract body runs against.
package runtime

import (
	"github.com/metervm/metervm/metering"
	"github.com/metervm/metervm/storage"
)

// Event is an emitted contract event, recorded only after its charge
// succeeded.
type Event struct {
	Topics [][]byte `json:"topics"`
	Data   []byte   `json:"data"`
}

// Runtime is the execution environment of one in-flight call. It is
// single-threaded and exclusively owned; the host serializes calls that
// touch the same account.
type Runtime struct {
	ctx    Context
	mtr    *metering.Meter
	store  *storage.Storage
	events []Event
}

func New(ctx Context, mtr *metering.Meter, store *storage.Storage) *Runtime {
	return &Runtime{
		ctx:   ctx,
		mtr:   mtr,
		store: store,
	}
}

func (r *Runtime) Context() Context        { return r.ctx }
func (r *Runtime) Meter() *metering.Meter  { return r.mtr }
func (r *Runtime) Store() *storage.Storage { return r.store }

func (r *Runtime) SetStorage(key []byte, value []byte) error {
	return r.store.Set(key, value, r.mtr)
}

func (r *Runtime) GetStorage(key []byte) ([]byte, bool, error) {
	return r.store.Get(key, r.mtr)
}

func (r *Runtime) ContainsStorage(key []byte) (bool, error) {
	return r.store.Contains(key, r.mtr)
}

func (r *Runtime) RemoveStorage(key []byte) error {
	return r.store.Remove(key, r.mtr)
}

// ChildStore opens a prefix-scoped view bound to this call's meter via the
// returned storage's methods.
func (r *Runtime) ChildStore(prefix []byte) *storage.ChildStorage {
	return storage.NewChild(r.store, prefix)
}

// EmitEvent charges for the event and records it in the call's event log.
func (r *Runtime) EmitEvent(topics [][]byte, data []byte) error {
	if err := r.mtr.ChargeEvent(topics, data); err != nil {
		return err
	}
	r.events = append(r.events, Event{Topics: topics, Data: data})
	return nil
}

func (r *Runtime) Events() []Event { return r.events }

// ChargeCall meters an outgoing contract call carrying input and value.
func (r *Runtime) ChargeCall(input []byte, value uint64) error {
	return r.mtr.ChargeCall(input, value)
}

// Alloc meters a memory allocation of size bytes.
func (r *Runtime) Alloc(size uint64) error {
	return r.mtr.ChargeMemoryAlloc(size)
}

// Step meters the execution of count instructions.
func (r *Runtime) Step(count uint64) error {
	return r.mtr.ChargeInstructions(count)
}

// Receipt reads out the call's resource usage for the reporting layer.
func (r *Runtime) Receipt() *Receipt {
	return &Receipt{
		GasUsed:             r.mtr.GasUsed(),
		GasLimit:            r.mtr.GasLimit(),
		ProofSizeUsed:       r.mtr.ProofSizeUsed(),
		ProofSizeLimit:      r.mtr.ProofSizeLimit(),
		StorageDepositUsed:  r.mtr.StorageDepositUsed(),
		StorageDepositLimit: r.mtr.StorageDepositLimit(),
		InstructionCount:    r.mtr.InstructionCount(),
		Events:              r.events,
	}
}

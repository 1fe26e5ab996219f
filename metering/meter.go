// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metering tracks the three resource budgets of one contract call:
// gas, proof size, and storage deposit. A Meter is created with the call's
// limits, threaded through every resource-consuming operation, read out for
// the receipt, and discarded. It is never shared between calls.
package metering

// Meter accounts resource usage against fixed limits. Gas and proof size
// only ever grow; storage deposit alone can shrink (refund on delete).
//
// A failed charge leaves all counters untouched, and the budget stays
// exhausted for the remainder of the call.
type Meter struct {
	costs Costs

	gasLimit uint64
	gasUsed  uint64

	proofSizeLimit uint64
	proofSizeUsed  uint64

	storageDepositLimit uint64
	storageDepositUsed  uint64

	instructionCount uint64

	// last written value length per key, used only to compute deposit
	// deltas; not an authoritative data store
	storageSizes map[string]uint64
}

// New creates a Meter with the default cost model.
func New(gasLimit uint64, proofSizeLimit uint64, storageDepositLimit uint64) *Meter {
	return NewWithCosts(DefaultCosts(), gasLimit, proofSizeLimit, storageDepositLimit)
}

func NewWithCosts(costs Costs, gasLimit uint64, proofSizeLimit uint64, storageDepositLimit uint64) *Meter {
	return &Meter{
		costs:               costs,
		gasLimit:            gasLimit,
		proofSizeLimit:      proofSizeLimit,
		storageDepositLimit: storageDepositLimit,
		storageSizes:        map[string]uint64{},
	}
}

// ChargeGas consumes "amount" gas, or fails with ErrOutOfGas without
// consuming anything.
func (m *Meter) ChargeGas(amount uint64) error {
	if amount > m.gasLimit-saturateMin(m.gasUsed, m.gasLimit) {
		return ErrOutOfGas
	}
	m.gasUsed = saturateAdd(m.gasUsed, amount)
	return nil
}

// ChargeProofSize consumes "amount" proof size, or fails with
// ErrProofSizeLimitExceeded without consuming anything.
func (m *Meter) ChargeProofSize(amount uint64) error {
	if amount > m.proofSizeLimit-saturateMin(m.proofSizeUsed, m.proofSizeLimit) {
		return ErrProofSizeLimitExceeded
	}
	m.proofSizeUsed = saturateAdd(m.proofSizeUsed, amount)
	return nil
}

// ChargeStorageDeposit consumes "amount" deposit, or fails with
// ErrStorageDepositLimitExceeded without consuming anything.
func (m *Meter) ChargeStorageDeposit(amount uint64) error {
	if amount > m.storageDepositLimit-saturateMin(m.storageDepositUsed, m.storageDepositLimit) {
		return ErrStorageDepositLimitExceeded
	}
	m.storageDepositUsed = saturateAdd(m.storageDepositUsed, amount)
	return nil
}

// ChargeStorageRead charges gas and proof size for reading "key".
func (m *Meter) ChargeStorageRead(key []byte) error {
	if err := m.ChargeGas(m.costs.Gas.StorageRead); err != nil {
		return err
	}
	return m.ChargeProofSize(
		m.costs.ProofSize.StorageRead +
			uint64(len(key))*m.costs.ProofSize.StorageReadKeyByte,
	)
}

// ChargeStorageWrite charges gas, proof size, and any deposit delta for
// writing "value" under "key".
//
// Deposit is only charged for net growth over the last written length;
// shrinking a value is free at write time and is not refunded until delete.
// Gas and proof size here are charged before deposit: a deposit failure
// aborts the write but does not roll the earlier charges back.
func (m *Meter) ChargeStorageWrite(key []byte, value []byte) error {
	if err := m.ChargeGas(
		m.costs.Gas.StorageWrite +
			uint64(len(value))*m.costs.Gas.StorageWriteByte,
	); err != nil {
		return err
	}

	if err := m.ChargeProofSize(
		m.costs.ProofSize.StorageWrite +
			uint64(len(key))*m.costs.ProofSize.StorageWriteKeyByte +
			uint64(len(value))*m.costs.ProofSize.StorageWriteValueByte,
	); err != nil {
		return err
	}

	oldSize := m.storageSizes[string(key)]
	newSize := uint64(len(value))
	if newSize > oldSize {
		if err := m.ChargeStorageDeposit((newSize - oldSize) * m.costs.StorageDeposit.Byte); err != nil {
			return err
		}
	}
	m.storageSizes[string(key)] = newSize
	return nil
}

// ChargeStorageDelete charges gas and proof size for deleting "key" and
// refunds the deposit held for its last written length.
func (m *Meter) ChargeStorageDelete(key []byte) error {
	if err := m.ChargeGas(m.costs.Gas.StorageDelete); err != nil {
		return err
	}

	if err := m.ChargeProofSize(
		m.costs.ProofSize.StorageDelete +
			uint64(len(key))*m.costs.ProofSize.StorageDeleteKeyByte,
	); err != nil {
		return err
	}

	if oldSize, ok := m.storageSizes[string(key)]; ok {
		refund := oldSize * m.costs.StorageDeposit.Byte
		m.storageDepositUsed = saturateSub(m.storageDepositUsed, refund)
		delete(m.storageSizes, string(key))
	}
	return nil
}

// ChargeEvent charges gas and proof size for emitting an event, both
// priced on the total byte length of all topics plus the data.
func (m *Meter) ChargeEvent(topics [][]byte, data []byte) error {
	totalSize := uint64(len(data))
	for _, topic := range topics {
		totalSize += uint64(len(topic))
	}

	if err := m.ChargeGas(m.costs.Gas.Event + totalSize*m.costs.Gas.EventByte); err != nil {
		return err
	}
	return m.ChargeProofSize(m.costs.ProofSize.Event + totalSize*m.costs.ProofSize.EventByte)
}

// ChargeCall charges gas and proof size for a contract call with the given
// input. Calls moving value pay the value-transfer surcharge on top.
func (m *Meter) ChargeCall(input []byte, value uint64) error {
	callGas := m.costs.Gas.Call + uint64(len(input))*m.costs.Gas.InputByte
	if value > 0 {
		callGas += m.costs.Gas.ValueTransfer
	}
	if err := m.ChargeGas(callGas); err != nil {
		return err
	}
	return m.ChargeProofSize(m.costs.ProofSize.Call)
}

// ChargeMemoryAlloc charges gas for allocating "size" bytes. Allocation
// has no proof size or deposit impact.
func (m *Meter) ChargeMemoryAlloc(size uint64) error {
	return m.ChargeGas(m.costs.Gas.MemoryAlloc + size*m.costs.Gas.MemoryAllocByte)
}

// ChargeInstructions charges gas for executing "count" instructions and
// bumps the diagnostic instruction counter on success.
func (m *Meter) ChargeInstructions(count uint64) error {
	if err := m.ChargeGas(count * m.costs.Gas.Instruction); err != nil {
		return err
	}
	m.instructionCount += count
	return nil
}

func (m *Meter) Costs() Costs { return m.costs }

func (m *Meter) GasLimit() uint64 { return m.gasLimit }
func (m *Meter) GasUsed() uint64  { return m.gasUsed }
func (m *Meter) GasRemaining() uint64 {
	return m.gasLimit - saturateMin(m.gasUsed, m.gasLimit)
}

func (m *Meter) ProofSizeLimit() uint64 { return m.proofSizeLimit }
func (m *Meter) ProofSizeUsed() uint64  { return m.proofSizeUsed }
func (m *Meter) ProofSizeRemaining() uint64 {
	return m.proofSizeLimit - saturateMin(m.proofSizeUsed, m.proofSizeLimit)
}

func (m *Meter) StorageDepositLimit() uint64 { return m.storageDepositLimit }
func (m *Meter) StorageDepositUsed() uint64  { return m.storageDepositUsed }
func (m *Meter) StorageDepositRemaining() uint64 {
	return m.storageDepositLimit - saturateMin(m.storageDepositUsed, m.storageDepositLimit)
}

func (m *Meter) InstructionCount() uint64 { return m.instructionCount }

func saturateAdd(a uint64, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}
	return a + b
}

func saturateSub(a uint64, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// saturateMin clamps "used" to "limit" so that "limit - used" can never
// underflow even if the counter was saturated past the limit.
func saturateMin(used uint64, limit uint64) uint64 {
	if used > limit {
		return limit
	}
	return used
}

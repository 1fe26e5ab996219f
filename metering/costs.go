// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metering

// GasCosts prices the computational side of each operation.
type GasCosts struct {
	// Base cost for any execution
	Base uint64 `json:"base"`

	// Cost per byte of input data
	InputByte uint64 `json:"inputByte"`

	// Cost per byte of output data
	OutputByte uint64 `json:"outputByte"`

	StorageRead      uint64 `json:"storageRead"`
	StorageWrite     uint64 `json:"storageWrite"`
	StorageWriteByte uint64 `json:"storageWriteByte"`
	StorageDelete    uint64 `json:"storageDelete"`

	Event     uint64 `json:"event"`
	EventByte uint64 `json:"eventByte"`

	Call          uint64 `json:"call"`
	ValueTransfer uint64 `json:"valueTransfer"`

	MemoryAlloc     uint64 `json:"memoryAlloc"`
	MemoryAllocByte uint64 `json:"memoryAllocByte"`

	Instruction uint64 `json:"instruction"`
}

// ProofSizeCosts prices the verification-witness side of each operation.
// Tracked separately from gas because identical gas can produce very
// different witness sizes (e.g. large keys).
type ProofSizeCosts struct {
	Base       uint64 `json:"base"`
	InputByte  uint64 `json:"inputByte"`
	OutputByte uint64 `json:"outputByte"`

	StorageRead        uint64 `json:"storageRead"`
	StorageReadKeyByte uint64 `json:"storageReadKeyByte"`

	StorageWrite          uint64 `json:"storageWrite"`
	StorageWriteKeyByte   uint64 `json:"storageWriteKeyByte"`
	StorageWriteValueByte uint64 `json:"storageWriteValueByte"`

	StorageDelete        uint64 `json:"storageDelete"`
	StorageDeleteKeyByte uint64 `json:"storageDeleteKeyByte"`

	Event     uint64 `json:"event"`
	EventByte uint64 `json:"eventByte"`

	Call uint64 `json:"call"`

	MemoryAlloc uint64 `json:"memoryAlloc"`
}

// StorageDepositCosts prices permanent state growth.
type StorageDepositCosts struct {
	// Deposit per byte of stored state
	Byte uint64 `json:"byte"`
}

// Costs is the full cost model for one execution context. Built once per
// call and treated as immutable for the call's lifetime.
type Costs struct {
	Gas            GasCosts            `json:"gas"`
	ProofSize      ProofSizeCosts      `json:"proofSize"`
	StorageDeposit StorageDepositCosts `json:"storageDeposit"`
}

func DefaultGasCosts() GasCosts {
	return GasCosts{
		Base:             1_000,
		InputByte:        1,
		OutputByte:       1,
		StorageRead:      100,
		StorageWrite:     1_000,
		StorageWriteByte: 10,
		StorageDelete:    500,
		Event:            100,
		EventByte:        5,
		Call:             5_000,
		ValueTransfer:    10_000,
		MemoryAlloc:      10,
		MemoryAllocByte:  1,
		Instruction:      1,
	}
}

func DefaultProofSizeCosts() ProofSizeCosts {
	return ProofSizeCosts{
		Base:                  100,
		InputByte:             0,
		OutputByte:            0,
		StorageRead:           10,
		StorageReadKeyByte:    1,
		StorageWrite:          10,
		StorageWriteKeyByte:   1,
		StorageWriteValueByte: 1,
		StorageDelete:         10,
		StorageDeleteKeyByte:  1,
		Event:                 10,
		EventByte:             1,
		Call:                  500,
		MemoryAlloc:           0,
	}
}

func DefaultStorageDepositCosts() StorageDepositCosts {
	// 0.0001 token per byte
	return StorageDepositCosts{Byte: 100_000}
}

func DefaultCosts() Costs {
	return Costs{
		Gas:            DefaultGasCosts(),
		ProofSize:      DefaultProofSizeCosts(),
		StorageDeposit: DefaultStorageDepositCosts(),
	}
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metering

import (
	"testing"
)

// The default tables are a protocol constant; other implementations depend
// on these exact numbers for receipt parity.
func TestDefaultCosts(t *testing.T) {
	t.Parallel()

	gas := DefaultGasCosts()
	expGas := GasCosts{
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
	if gas != expGas {
		t.Fatalf("unexpected gas costs %+v, expected %+v", gas, expGas)
	}

	proof := DefaultProofSizeCosts()
	expProof := ProofSizeCosts{
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
	if proof != expProof {
		t.Fatalf("unexpected proof size costs %+v, expected %+v", proof, expProof)
	}

	if b := DefaultStorageDepositCosts().Byte; b != 100_000 {
		t.Fatalf("unexpected deposit byte cost %d, expected 100000", b)
	}
}

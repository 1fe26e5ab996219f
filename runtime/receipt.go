// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

// Receipt is the post-call usage summary read by the reporting layer. The
// meter it was read from is discarded with the call; the receipt is the
// only thing that outlives it.
type Receipt struct {
	GasUsed  uint64 `json:"gasUsed"`
	GasLimit uint64 `json:"gasLimit"`

	ProofSizeUsed  uint64 `json:"proofSizeUsed"`
	ProofSizeLimit uint64 `json:"proofSizeLimit"`

	StorageDepositUsed  uint64 `json:"storageDepositUsed"`
	StorageDepositLimit uint64 `json:"storageDepositLimit"`

	InstructionCount uint64 `json:"instructionCount"`

	Events []Event `json:"events,omitempty"`
}

func (r *Receipt) GasRemaining() uint64 {
	if r.GasUsed > r.GasLimit {
		return 0
	}
	return r.GasLimit - r.GasUsed
}

func (r *Receipt) ProofSizeRemaining() uint64 {
	if r.ProofSizeUsed > r.ProofSizeLimit {
		return 0
	}
	return r.ProofSizeLimit - r.ProofSizeUsed
}

func (r *Receipt) StorageDepositRemaining() uint64 {
	if r.StorageDepositUsed > r.StorageDepositLimit {
		return 0
	}
	return r.StorageDepositLimit - r.StorageDepositUsed
}

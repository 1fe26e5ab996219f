// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/metervm/metervm/storage"
)

type Config struct {
	GasLimit            uint64 `json:"gasLimit"`
	ProofSizeLimit      uint64 `json:"proofSizeLimit"`
	StorageDepositLimit uint64 `json:"storageDepositLimit"`

	StorageLimits storage.Limits `json:"storageLimits"`
}

func (c *Config) SetDefaults() {
	c.GasLimit = 10_000_000
	c.ProofSizeLimit = 1 << 20
	c.StorageDepositLimit = 1 << 40

	c.StorageLimits = storage.DefaultLimits()
}

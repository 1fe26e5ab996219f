// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Context carries the call-scoped environment a contract executes in.
type Context struct {
	// Address of the executing contract; also its storage owner id
	Address ids.ID `json:"address"`

	// Address of the caller
	Caller ids.ID `json:"caller"`

	// Value sent with the call, in smallest units
	Value uint64 `json:"value"`

	// Input data (calldata)
	Input []byte `json:"input"`

	BlockNumber    uint64 `json:"blockNumber"`
	BlockTimestamp uint64 `json:"blockTimestamp"`
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metering

import (
	"errors"
)

var (
	ErrOutOfGas                    = errors.New("out of gas")
	ErrProofSizeLimitExceeded      = errors.New("proof size limit exceeded")
	ErrStorageDepositLimitExceeded = errors.New("storage deposit limit exceeded")
)

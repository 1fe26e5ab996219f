// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"
)

var (
	ErrKeyTooLarge          = errors.New("key too large")
	ErrValueTooLarge        = errors.New("value too large")
	ErrStorageLimitExceeded = errors.New("storage limit exceeded")
)

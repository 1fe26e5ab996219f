// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "meter-cli" drives metered contract-call simulations from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/metervm/metervm/cmd/meter-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "meter-cli failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metervm/metervm/metering"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Prints the active cost model",
	RunE:  costsFunc,
}

func costsFunc(_ *cobra.Command, _ []string) error {
	b, err := json.MarshalIndent(metering.DefaultCosts(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metervm/metervm/version"
	"github.com/metervm/metervm/vm"
)

const (
	gasLimitKey            = "gas-limit"
	proofSizeLimitKey      = "proof-size-limit"
	storageDepositLimitKey = "storage-deposit-limit"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:        "meter-cli",
		Short:      "MeterVM simulation CLI",
		Version:    version.Version.String(),
		SuggestFor: []string{"meter-cli", "metercli", "meterctl"},
		PersistentPreRun: func(*cobra.Command, []string) {
			lvl := log.LvlInfo
			if verbose {
				lvl = log.LvlDebug
			}
			log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))
		},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		costsCmd,
		simulateCmd,
		serveCmd,
	)

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Uint64(gasLimitKey, 0, "gas limit per call (0 = default)")
	rootCmd.PersistentFlags().Uint64(proofSizeLimitKey, 0, "proof size limit per call (0 = default)")
	rootCmd.PersistentFlags().Uint64(storageDepositLimitKey, 0, "storage deposit limit per call (0 = default)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func newVM() *vm.VM {
	var config vm.Config
	config.SetDefaults()
	if v := viper.GetUint64(gasLimitKey); v > 0 {
		config.GasLimit = v
	}
	if v := viper.GetUint64(proofSizeLimitKey); v > 0 {
		config.ProofSizeLimit = v
	}
	if v := viper.GetUint64(storageDepositLimitKey); v > 0 {
		config.StorageDepositLimit = v
	}
	return vm.New(memdb.New(), config)
}

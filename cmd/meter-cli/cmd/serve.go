// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"net/http"

	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [options]",
	Short: "Serves the reporting JSON-RPC API over a fresh VM",
	RunE:  serveFunc,
}

func init() {
	serveCmd.PersistentFlags().StringVar(
		&serveAddr,
		"listen",
		"127.0.0.1:9090",
		"address to serve the JSON-RPC API on",
	)
}

func serveFunc(_ *cobra.Command, _ []string) error {
	mvm := newVM()
	handler, err := mvm.CreateHandlers()
	if err != nil {
		return err
	}
	log.Info("serving", "addr", serveAddr)
	return http.ListenAndServe(serveAddr, handler)
}

// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	log "github.com/inconshreveable/log15"

	"github.com/metervm/metervm/metering"
	"github.com/metervm/metervm/storage"
)

// Name is the JSON-RPC namespace the public service registers under.
const Name = "metervm"

// PublicService exposes the reporting surface: committed state queries
// and the usage of the last finished call. Nothing here is metered.
type PublicService struct {
	vm *VM
}

// CreateHandlers returns the HTTP handler serving the public service.
func (vm *VM) CreateHandlers() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&PublicService{vm: vm}, Name); err != nil {
		return nil, err
	}
	return server, nil
}

type PingReply struct {
	Success bool `json:"success"`
}

func (svc *PublicService) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	log.Info("ping")
	reply.Success = true
	return nil
}

type UsageReply struct {
	GasUsed            uint64 `json:"gasUsed"`
	ProofSizeUsed      uint64 `json:"proofSizeUsed"`
	StorageDepositUsed uint64 `json:"storageDepositUsed"`
	InstructionCount   uint64 `json:"instructionCount"`
	HasReceipt         bool   `json:"hasReceipt"`
}

func (svc *PublicService) Usage(_ *http.Request, _ *struct{}, reply *UsageReply) error {
	rec := svc.vm.LastReceipt()
	if rec == nil {
		return nil
	}
	reply.GasUsed = rec.GasUsed
	reply.ProofSizeUsed = rec.ProofSizeUsed
	reply.StorageDepositUsed = rec.StorageDepositUsed
	reply.InstructionCount = rec.InstructionCount
	reply.HasReceipt = true
	return nil
}

type CostsReply struct {
	Costs metering.Costs `json:"costs"`
}

func (svc *PublicService) Costs(_ *http.Request, _ *struct{}, reply *CostsReply) error {
	reply.Costs = svc.vm.Costs()
	return nil
}

type ResolveArgs struct {
	Owner ids.ID `json:"owner"`
	Key   []byte `json:"key"`
}

type ResolveReply struct {
	Exists bool   `json:"exists"`
	Value  []byte `json:"value"`
}

func (svc *PublicService) Resolve(_ *http.Request, args *ResolveArgs, reply *ResolveReply) error {
	v, exists, err := svc.vm.Resolve(args.Owner, args.Key)
	if err != nil {
		return err
	}
	reply.Exists = exists
	reply.Value = v
	return nil
}

type EntriesArgs struct {
	Owner ids.ID `json:"owner"`
}

type EntriesReply struct {
	Entries []storage.KeyValue `json:"entries"`
}

func (svc *PublicService) Entries(_ *http.Request, args *EntriesArgs, reply *EntriesReply) error {
	entries, err := svc.vm.Entries(args.Owner)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

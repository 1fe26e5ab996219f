// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	"github.com/metervm/metervm/runtime"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [options] <scenario file>",
	Short: "Runs a scenario of metered operations and prints the receipt",
	Long: `
Executes the operations of a JSON scenario file as one metered contract
call against a fresh in-memory VM, then prints the call receipt.

$ meter-cli simulate --gas-limit 1000000 scenario.json

Scenario format:

{
  "owner": "alice",
  "ops": [
    {"op": "set", "key": "greeting", "value": "hello"},
    {"op": "get", "key": "greeting"},
    {"op": "event", "topics": ["greeted"], "data": "hello"},
    {"op": "step", "count": 100},
    {"op": "remove", "key": "greeting"}
  ]
}
`,
	RunE: simulateFunc,
	Args: cobra.ExactArgs(1),
}

type scenario struct {
	Owner string       `json:"owner"`
	Ops   []scenarioOp `json:"ops"`
}

type scenarioOp struct {
	Op string `json:"op"`

	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`

	Topics []string `json:"topics,omitempty"`
	Data   string   `json:"data,omitempty"`

	Input  string `json:"input,omitempty"`
	Amount uint64 `json:"amount,omitempty"`

	Size  uint64 `json:"size,omitempty"`
	Count uint64 `json:"count,omitempty"`
}

func simulateFunc(_ *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var sc scenario
	if err := json.Unmarshal(b, &sc); err != nil {
		return err
	}

	owner, err := ownerID(sc.Owner)
	if err != nil {
		return err
	}

	mvm := newVM()
	rec, callErr := mvm.Call(runtime.Context{Address: owner}, func(r *runtime.Runtime) error {
		for i, op := range sc.Ops {
			if err := applyOp(r, op); err != nil {
				return fmt.Errorf("op #%d (%s): %w", i, op.Op, err)
			}
		}
		return nil
	})
	if callErr != nil {
		log.Error("call aborted", "err", callErr)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return callErr
}

func applyOp(r *runtime.Runtime, op scenarioOp) error {
	switch op.Op {
	case "set":
		return r.SetStorage([]byte(op.Key), []byte(op.Value))
	case "get":
		v, ok, err := r.GetStorage([]byte(op.Key))
		if err != nil {
			return err
		}
		log.Info("get", "key", op.Key, "exists", ok, "value", string(v))
		return nil
	case "contains":
		ok, err := r.ContainsStorage([]byte(op.Key))
		if err != nil {
			return err
		}
		log.Info("contains", "key", op.Key, "exists", ok)
		return nil
	case "remove":
		return r.RemoveStorage([]byte(op.Key))
	case "event":
		topics := make([][]byte, 0, len(op.Topics))
		for _, topic := range op.Topics {
			topics = append(topics, []byte(topic))
		}
		return r.EmitEvent(topics, []byte(op.Data))
	case "call":
		return r.ChargeCall([]byte(op.Input), op.Amount)
	case "alloc":
		return r.Alloc(op.Size)
	case "step":
		return r.Step(op.Count)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

// ownerID pads a human-readable name into a fixed-width owner id.
func ownerID(name string) (ids.ID, error) {
	if len(name) == 0 {
		return ids.ID{}, errors.New("owner cannot be empty")
	}
	if len(name) > len(ids.ID{}) {
		return ids.ID{}, fmt.Errorf("owner %q longer than %d bytes", name, len(ids.ID{}))
	}
	var owner ids.ID
	copy(owner[:], name)
	return owner, nil
}

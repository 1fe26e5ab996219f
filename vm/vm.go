// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm hosts metered contract calls over a shared physical database.
// Each call runs against a fresh meter and a versioned view of the state;
// the call, not the individual operation, is the atomicity unit.
package vm

import (
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"

	"github.com/metervm/metervm/metering"
	"github.com/metervm/metervm/runtime"
	"github.com/metervm/metervm/storage"
)

var stateBucket = []byte("state")

type VM struct {
	config Config
	costs  metering.Costs

	db      database.Database
	stateDB database.Database

	mu          sync.Mutex
	accounts    map[ids.ID]*sync.Mutex
	lastReceipt *runtime.Receipt
}

func New(db database.Database, config Config) *VM {
	return &VM{
		config:   config,
		costs:    metering.DefaultCosts(),
		db:       db,
		stateDB:  prefixdb.New(stateBucket, db),
		accounts: map[ids.ID]*sync.Mutex{},
	}
}

func (vm *VM) Config() Config { return vm.config }
func (vm *VM) Costs() metering.Costs { return vm.costs }

// accountLock serializes calls touching the same account. Budgets are
// never shared: every call still gets its own meter.
func (vm *VM) accountLock(owner ids.ID) *sync.Mutex {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	l, ok := vm.accounts[owner]
	if !ok {
		l = &sync.Mutex{}
		vm.accounts[owner] = l
	}
	return l
}

// Call runs fn as one metered contract call for ctx.Address. State is
// staged in a versioned view and committed only if fn succeeds; any error
// discards every mutation of the call, though the returned receipt still
// reports what the failed call consumed.
func (vm *VM) Call(ctx runtime.Context, fn func(*runtime.Runtime) error) (*runtime.Receipt, error) {
	l := vm.accountLock(ctx.Address)
	l.Lock()
	defer l.Unlock()

	vdb := versiondb.New(vm.stateDB)
	store, err := storage.New(ctx.Address, vm.config.StorageLimits, vdb)
	if err != nil {
		return nil, err
	}
	mtr := metering.NewWithCosts(vm.costs, vm.config.GasLimit, vm.config.ProofSizeLimit, vm.config.StorageDepositLimit)
	r := runtime.New(ctx, mtr, store)

	if err := fn(r); err != nil {
		vdb.Abort()
		rec := r.Receipt()
		vm.setLastReceipt(rec)
		log.Debug("call aborted",
			"address", ctx.Address,
			"gasUsed", rec.GasUsed,
			"err", err,
		)
		return rec, err
	}

	if err := vdb.Commit(); err != nil {
		return nil, err
	}
	rec := r.Receipt()
	vm.setLastReceipt(rec)
	log.Debug("call accepted",
		"address", ctx.Address,
		"gasUsed", rec.GasUsed,
		"proofSizeUsed", rec.ProofSizeUsed,
		"storageDepositUsed", rec.StorageDepositUsed,
		"instructions", rec.InstructionCount,
	)
	return rec, nil
}

func (vm *VM) setLastReceipt(rec *runtime.Receipt) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.lastReceipt = rec
}

// LastReceipt returns the receipt of the most recently finished call, or
// nil before the first call.
func (vm *VM) LastReceipt() *runtime.Receipt {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastReceipt
}

// Resolve reads one committed value without metering, for the reporting
// layer.
func (vm *VM) Resolve(owner ids.ID, key []byte) ([]byte, bool, error) {
	v, err := vm.stateDB.Get(storage.PhysicalKey(owner, key))
	if err == database.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Entries lists an account's committed state without metering.
func (vm *VM) Entries(owner ids.ID) ([]storage.KeyValue, error) {
	store, err := storage.New(owner, vm.config.StorageLimits, vm.stateDB)
	if err != nil {
		return nil, err
	}
	return store.Entries()
}

// Import seeds an account's state without metering, for test harnesses.
func (vm *VM) Import(owner ids.ID, entries []storage.KeyValue) error {
	l := vm.accountLock(owner)
	l.Lock()
	defer l.Unlock()

	store, err := storage.New(owner, vm.config.StorageLimits, vm.stateDB)
	if err != nil {
		return err
	}
	return store.Import(entries)
}

// Destroy drops every committed entry of an account, unmetered and with
// no deposit refund.
func (vm *VM) Destroy(owner ids.ID) error {
	l := vm.accountLock(owner)
	l.Lock()
	defer l.Unlock()

	store, err := storage.New(owner, vm.config.StorageLimits, vm.stateDB)
	if err != nil {
		return err
	}
	log.Debug("destroying account state", "address", owner, "items", store.Len())
	return store.Clear()
}

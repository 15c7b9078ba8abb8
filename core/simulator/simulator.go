// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package simulator provides an in-memory execution engine backed by the
// go-ethereum EVM. Every operation runs against a single state database on a
// fixed block environment; there is no mining, no signing and no gas payment.
//
// simulator 包提供基于 go-ethereum EVM 的内存执行引擎。所有操作在同一个状态数据库和固定的区块环境上运行，
// 没有出块、签名或 gas 支付。
//
// 只读调用在快照上执行后回滚；交易与部署在执行后通过 Finalise 落定，日志按交易哈希收集。
package simulator

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/simbind/accounts/abi/bind"
)

// ErrNoCode is returned by calls and transactions to an address that holds no
// contract code.
// ErrNoCode 在调用或交易的目标地址没有合约代码时返回。
var ErrNoCode = errors.New("no contract code at given address")

// RevertError is an execution that ended in REVERT. Reason holds the decoded
// Error(string) message when the return data carries one.
// RevertError 表示以 REVERT 结束的执行，若返回数据为 Error(string) 则 Reason 为解码后的信息。
type RevertError struct {
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s", vm.ErrExecutionReverted, e.Reason)
	}
	if len(e.Data) > 0 {
		return fmt.Sprintf("%v: %s", vm.ErrExecutionReverted, hexutil.Encode(e.Data))
	}
	return vm.ErrExecutionReverted.Error()
}

func (e *RevertError) Unwrap() error { return vm.ErrExecutionReverted }

// Simulator is a bind.Engine executing on go-ethereum's EVM. All operations
// are serialized, so a Simulator may be shared between goroutines.
// Simulator 是在 go-ethereum EVM 上执行的 bind.Engine，所有操作串行执行，可在多个 goroutine 间共享。
type Simulator struct {
	mu    sync.Mutex
	cfg   Config
	state *state.StateDB
	txs   uint64 // number of state-changing operations executed
	log   log.Logger
}

var _ bind.Engine = (*Simulator)(nil)

// New creates a simulator with an empty state.
func New(cfg Config) (*Simulator, error) {
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	if err != nil {
		return nil, err
	}
	cfg = cfg.sanitize()
	s := &Simulator{
		cfg:   cfg,
		state: statedb,
		log:   log.New("engine", "simulator"),
	}
	s.log.Debug("Created simulator", "gaslimit", cfg.GasLimit, "number", cfg.BlockNumber, "time", cfg.Time)
	return s, nil
}

// Config returns the block environment of the simulator.
func (s *Simulator) Config() Config {
	return s.cfg
}

// runtimeConfig builds the EVM environment for one execution.
func (s *Simulator) runtimeConfig(origin common.Address, value *uint256.Int) *runtime.Config {
	return &runtime.Config{
		Origin:      origin,
		Coinbase:    s.cfg.Coinbase,
		BlockNumber: s.cfg.blockNumber(),
		Time:        s.cfg.Time,
		GasLimit:    s.cfg.GasLimit,
		Value:       toBig(value),
		BaseFee:     new(big.Int).SetUint64(s.cfg.BaseFee),
		State:       s.state,
	}
}

// beginTx assigns the next transaction hash so emitted logs can be collected.
func (s *Simulator) beginTx() common.Hash {
	thash := common.BigToHash(new(big.Int).SetUint64(s.txs + 1))
	s.state.SetTxContext(thash, int(s.txs))
	return thash
}

// endTx settles the changes of the current operation.
func (s *Simulator) endTx() {
	s.state.Finalise(true)
	s.txs++
}

// CreateAccount creates addr if needed and sets its balance.
func (s *Simulator) CreateAccount(addr common.Address, balance *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Exist(addr) {
		s.state.CreateAccount(addr)
	}
	if balance == nil {
		balance = new(uint256.Int)
	}
	s.state.SetBalance(addr, balance, tracing.BalanceChangeUnspecified)
	s.state.Finalise(true)
	s.log.Trace("Created account", "address", addr, "balance", balance)
	return nil
}

// GetBalance returns the balance of addr.
func (s *Simulator) GetBalance(addr common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.GetBalance(addr).Clone()
}

// Code returns the contract code stored at addr.
func (s *Simulator) Code(addr common.Address) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return common.CopyBytes(s.state.GetCode(addr))
}

// Nonce returns the nonce of addr.
func (s *Simulator) Nonce(addr common.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.GetNonce(addr)
}

// Transfer moves amount from one account to another, running the code of the
// receiver if it has any.
// Transfer 在账户间转账，如果接收方有代码则执行之。
func (s *Simulator) Transfer(from, to common.Address, amount *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == nil {
		amount = new(uint256.Int)
	}
	if have := s.state.GetBalance(from); have.Lt(amount) {
		return fmt.Errorf("%w: address %v have %v want %v", vm.ErrInsufficientBalance, from, have, amount)
	}
	s.beginTx()
	ret, _, err := runtime.Call(to, nil, s.runtimeConfig(from, amount))
	s.endTx()
	if err != nil {
		return executionError(ret, err)
	}
	s.log.Trace("Transferred value", "from", from, "to", to, "amount", amount)
	return nil
}

// Deploy runs creation code and stores the returned runtime code at the
// created address. The caller's nonce is bumped on success and failure.
// Deploy 执行创建代码并在新地址保存返回的运行时代码。
func (s *Simulator) Deploy(caller common.Address, code []byte, value *uint256.Int) (common.Address, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.beginTx()
	ret, addr, left, err := runtime.Create(code, s.runtimeConfig(caller, value))
	s.endTx()

	used := s.cfg.GasLimit - left
	if err != nil {
		s.log.Debug("Contract creation failed", "caller", caller, "gas", used, "err", err)
		return common.Address{}, used, executionError(ret, err)
	}
	s.log.Trace("Deployed contract", "caller", caller, "address", addr, "gas", used)
	return addr, used, nil
}

// Call executes input against addr on a snapshot that is discarded afterwards.
// Call 在快照上针对 addr 执行输入，执行后丢弃快照。
func (s *Simulator) Call(caller, addr common.Address, input []byte) (*bind.ExecutionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GetCodeSize(addr) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoCode, addr)
	}
	snapshot := s.state.Snapshot()
	ret, left, err := runtime.Call(addr, input, s.runtimeConfig(caller, nil))
	s.state.RevertToSnapshot(snapshot)

	if err != nil {
		return nil, executionError(ret, err)
	}
	return &bind.ExecutionResult{
		ReturnData: ret,
		UsedGas:    s.cfg.GasLimit - left,
		Logs:       []*types.Log{},
	}, nil
}

// Transact executes input against addr and commits the resulting state.
// Transact 针对 addr 执行输入并提交状态变更。
func (s *Simulator) Transact(caller, addr common.Address, input []byte, value *uint256.Int) (*bind.ExecutionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GetCodeSize(addr) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoCode, addr)
	}
	thash := s.beginTx()
	ret, left, err := runtime.Call(addr, input, s.runtimeConfig(caller, value))
	logs := s.state.GetLogs(thash, s.cfg.BlockNumber, common.Hash{})
	s.endTx()

	used := s.cfg.GasLimit - left
	if err != nil {
		s.log.Debug("Transaction failed", "caller", caller, "to", addr, "gas", used, "err", err)
		return nil, executionError(ret, err)
	}
	if logs == nil {
		logs = []*types.Log{}
	}
	s.log.Trace("Executed transaction", "caller", caller, "to", addr, "gas", used, "logs", len(logs))
	return &bind.ExecutionResult{ReturnData: ret, UsedGas: used, Logs: logs}, nil
}

// executionError attaches the revert reason to reverted executions.
func executionError(ret []byte, err error) error {
	if !errors.Is(err, vm.ErrExecutionReverted) {
		return err
	}
	revert := &RevertError{Data: common.CopyBytes(ret)}
	if reason, uerr := abi.UnpackRevert(ret); uerr == nil {
		revert.Reason = reason
	}
	return revert
}

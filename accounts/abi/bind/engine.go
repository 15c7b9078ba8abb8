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

package bind

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// ExecutionResult is what the engine reports for a call or transaction.
// ExecutionResult 是引擎对一次调用或交易返回的结果。
type ExecutionResult struct {
	ReturnData []byte       // raw returned bytes, ABI encoded
	UsedGas    uint64       // gas consumed by the execution
	Logs       []*types.Log // logs emitted, empty for read-only calls
}

// Engine is the execution backend contracts are dispatched to. It owns the
// ledger: balances, contract code and storage, execution and gas accounting.
// Implementations decide whether concurrent use is allowed.
// Engine 是合约调用被分派到的执行后端，负责账本状态、余额、合约代码与存储、执行以及 gas 计量。
type Engine interface {
	// CreateAccount creates an account with the given balance.
	// CreateAccount 创建一个具有给定余额的账户。
	CreateAccount(addr common.Address, balance *uint256.Int) error

	// GetBalance returns the balance of an account, zero if it does not exist.
	GetBalance(addr common.Address) *uint256.Int

	// Transfer moves value between accounts. It fails if the sender cannot
	// cover the amount.
	// Transfer 在账户之间转账，发送方余额不足时失败。
	Transfer(from, to common.Address, amount *uint256.Int) error

	// Deploy runs creation code and returns the new contract address together
	// with the gas used.
	// Deploy 执行合约创建代码，返回新合约地址及消耗的 gas。
	Deploy(caller common.Address, code []byte, value *uint256.Int) (common.Address, uint64, error)

	// Call executes input against a contract without persisting any change.
	// Call 以只读方式针对合约执行输入，不持久化任何状态变更。
	Call(caller, addr common.Address, input []byte) (*ExecutionResult, error)

	// Transact executes input against a contract and commits the changes.
	// Transact 针对合约执行输入并提交状态变更。
	Transact(caller, addr common.Address, input []byte, value *uint256.Int) (*ExecutionResult, error)
}

// Codec encodes arguments, decodes results and derives function selectors.
// Type lists hold canonical Solidity type names such as "uint256".
// Codec 负责参数编码、结果解码以及函数选择器派生。
type Codec interface {
	Encode(types []string, values []interface{}) ([]byte, error)
	Decode(types []string, data []byte) ([]interface{}, error)
	Selector(signature string) [4]byte
}

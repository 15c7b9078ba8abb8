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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// Provider is a thin adapter over an Engine. Every engine failure it passes
// on is wrapped in an ExecutionError, everything else is forwarded as is.
// Provider 是 Engine 之上的薄适配层，引擎失败统一包装为 ExecutionError，其余原样转发。
type Provider struct {
	engine Engine
}

// NewProvider creates a provider dispatching to the given engine.
func NewProvider(engine Engine) *Provider {
	return &Provider{engine: engine}
}

// Engine returns the underlying execution engine.
func (p *Provider) Engine() Engine {
	return p.engine
}

// CreateAccount creates an account at a freshly generated address and funds
// it with balance.
// CreateAccount 在新生成的地址上创建账户并注入余额。
func (p *Provider) CreateAccount(balance *uint256.Int) (common.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	if err := p.CreateAccountAt(addr, balance); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

// CreateAccountAt creates an account at addr.
func (p *Provider) CreateAccountAt(addr common.Address, balance *uint256.Int) error {
	if balance == nil {
		balance = new(uint256.Int)
	}
	if err := p.engine.CreateAccount(addr, balance); err != nil {
		return &ExecutionError{Op: "create account", Err: err}
	}
	return nil
}

// CreateAccounts creates n funded accounts.
func (p *Provider) CreateAccounts(n int, balance *uint256.Int) ([]common.Address, error) {
	addrs := make([]common.Address, 0, n)
	for i := 0; i < n; i++ {
		addr, err := p.CreateAccount(balance)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// BalanceOf returns the balance of addr.
func (p *Provider) BalanceOf(addr common.Address) *uint256.Int {
	return p.engine.GetBalance(addr)
}

// Transfer sends amount from one account to another.
func (p *Provider) Transfer(from, to common.Address, amount *uint256.Int) error {
	if err := p.engine.Transfer(from, to, orZero(amount)); err != nil {
		return &ExecutionError{Op: "transfer", Err: err}
	}
	return nil
}

// Deploy forwards creation code to the engine.
func (p *Provider) Deploy(caller common.Address, code []byte, value *uint256.Int) (common.Address, uint64, error) {
	addr, gas, err := p.engine.Deploy(caller, code, orZero(value))
	if err != nil {
		return common.Address{}, gas, &ExecutionError{Op: "deploy", Err: err}
	}
	return addr, gas, nil
}

// Call forwards a read-only call to the engine.
func (p *Provider) Call(caller, addr common.Address, input []byte) (*ExecutionResult, error) {
	res, err := p.engine.Call(caller, addr, input)
	if err != nil {
		return nil, &ExecutionError{Op: "call", Err: err}
	}
	return res, nil
}

// Transact forwards a state-changing call to the engine.
func (p *Provider) Transact(caller, addr common.Address, input []byte, value *uint256.Int) (*ExecutionResult, error) {
	res, err := p.engine.Transact(caller, addr, input, orZero(value))
	if err != nil {
		return nil, &ExecutionError{Op: "transact", Err: err}
	}
	return res, nil
}

// Ether converts a whole number of ether to wei.
// Ether 将以太数量转换为 wei。
func Ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(params.Ether))
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

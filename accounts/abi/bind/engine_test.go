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
	"bytes"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/simbind/accounts/abi/codec"
)

// spyEngine records every engine invocation and returns canned results.
type spyEngine struct {
	ops    []string
	inputs [][]byte
	err    error
	ret    []byte
	addr   common.Address
}

func (e *spyEngine) record(op string, input []byte) {
	e.ops = append(e.ops, op)
	e.inputs = append(e.inputs, input)
}

func (e *spyEngine) CreateAccount(addr common.Address, balance *uint256.Int) error {
	e.record("create", nil)
	return e.err
}

func (e *spyEngine) GetBalance(addr common.Address) *uint256.Int {
	e.record("balance", nil)
	return new(uint256.Int)
}

func (e *spyEngine) Transfer(from, to common.Address, amount *uint256.Int) error {
	e.record("transfer", nil)
	return e.err
}

func (e *spyEngine) Deploy(caller common.Address, code []byte, value *uint256.Int) (common.Address, uint64, error) {
	e.record("deploy", code)
	if e.err != nil {
		return common.Address{}, 0, e.err
	}
	return e.addr, 21000, nil
}

func (e *spyEngine) Call(caller, addr common.Address, input []byte) (*ExecutionResult, error) {
	e.record("call", input)
	if e.err != nil {
		return nil, e.err
	}
	return &ExecutionResult{ReturnData: e.ret}, nil
}

func (e *spyEngine) Transact(caller, addr common.Address, input []byte, value *uint256.Int) (*ExecutionResult, error) {
	e.record("transact", input)
	if e.err != nil {
		return nil, e.err
	}
	return &ExecutionResult{ReturnData: e.ret, UsedGas: 30000}, nil
}

// program is the behaviour of a fake contract. Code deployed with a matching
// prefix runs it; the bytes after the prefix are the constructor arguments.
type program struct {
	prefix []byte
	handle func(ct *fakeContract, caller common.Address, input []byte) ([]byte, error)
}

type fakeContract struct {
	program *program
	args    []byte
	storage map[string]interface{}
}

type fakeCall struct {
	op     string
	caller common.Address
	addr   common.Address
}

// ledgerEngine is a minimal in-memory ledger executing fake programs.
type ledgerEngine struct {
	balances  map[common.Address]*uint256.Int
	contracts map[common.Address]*fakeContract
	programs  []*program
	nonce     uint64
	calls     []fakeCall
}

func newLedgerEngine(programs ...*program) *ledgerEngine {
	return &ledgerEngine{
		balances:  make(map[common.Address]*uint256.Int),
		contracts: make(map[common.Address]*fakeContract),
		programs:  programs,
	}
}

func (e *ledgerEngine) CreateAccount(addr common.Address, balance *uint256.Int) error {
	e.balances[addr] = balance.Clone()
	return nil
}

func (e *ledgerEngine) GetBalance(addr common.Address) *uint256.Int {
	if b, ok := e.balances[addr]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

func (e *ledgerEngine) Transfer(from, to common.Address, amount *uint256.Int) error {
	have := e.GetBalance(from)
	if have.Lt(amount) {
		return errors.New("insufficient balance for transfer")
	}
	e.balances[from] = have.Sub(have, amount)
	to256 := e.GetBalance(to)
	e.balances[to] = to256.Add(to256, amount)
	return nil
}

func (e *ledgerEngine) Deploy(caller common.Address, code []byte, value *uint256.Int) (common.Address, uint64, error) {
	e.calls = append(e.calls, fakeCall{op: "deploy", caller: caller})
	for _, p := range e.programs {
		if bytes.HasPrefix(code, p.prefix) {
			addr := crypto.CreateAddress(caller, e.nonce)
			e.nonce++
			e.contracts[addr] = &fakeContract{
				program: p,
				args:    code[len(p.prefix):],
				storage: make(map[string]interface{}),
			}
			return addr, 50000 + uint64(len(code)), nil
		}
	}
	return common.Address{}, 0, errors.New("invalid code")
}

func (e *ledgerEngine) run(op string, caller, addr common.Address, input []byte) (*ExecutionResult, error) {
	e.calls = append(e.calls, fakeCall{op: op, caller: caller, addr: addr})
	ct, ok := e.contracts[addr]
	if !ok {
		return nil, errors.New("no code at address")
	}
	ret, err := ct.program.handle(ct, caller, input)
	if err != nil {
		return nil, err
	}
	return &ExecutionResult{ReturnData: ret, UsedGas: 21000 + uint64(len(input))}, nil
}

func (e *ledgerEngine) Call(caller, addr common.Address, input []byte) (*ExecutionResult, error) {
	return e.run("call", caller, addr, input)
}

func (e *ledgerEngine) Transact(caller, addr common.Address, input []byte, value *uint256.Int) (*ExecutionResult, error) {
	res, err := e.run("transact", caller, addr, input)
	if err != nil {
		return nil, err
	}
	res.Logs = []*types.Log{{Address: addr}}
	return res, nil
}

var testCodec = codec.New()

func selectorOf(sig string) []byte {
	sel := testCodec.Selector(sig)
	return sel[:]
}

// counterProgram mimics the classic Counter contract.
var counterProgram = &program{
	prefix: []byte("counter"),
	handle: func(ct *fakeContract, caller common.Address, input []byte) ([]byte, error) {
		number, _ := ct.storage["number"].(*big.Int)
		if number == nil {
			number = new(big.Int)
		}
		switch {
		case bytes.HasPrefix(input, selectorOf("increment()")):
			ct.storage["number"] = new(big.Int).Add(number, big.NewInt(1))
			return nil, nil
		case bytes.HasPrefix(input, selectorOf("setNumber(uint256)")):
			args, err := testCodec.Decode([]string{"uint256"}, input[4:])
			if err != nil {
				return nil, err
			}
			ct.storage["number"] = args[0].(*big.Int)
			return nil, nil
		case bytes.HasPrefix(input, selectorOf("number()")):
			return testCodec.Encode([]string{"uint256"}, []interface{}{number})
		}
		return nil, errors.New("execution reverted")
	},
}

// tokenProgram returns the name it was constructed with.
var tokenProgram = &program{
	prefix: []byte("token"),
	handle: func(ct *fakeContract, caller common.Address, input []byte) ([]byte, error) {
		args, err := testCodec.Decode([]string{"string", "string", "uint8"}, ct.args)
		if err != nil {
			return nil, err
		}
		switch {
		case bytes.HasPrefix(input, selectorOf("name()")):
			return testCodec.Encode([]string{"string"}, []interface{}{args[0]})
		case bytes.HasPrefix(input, selectorOf("symbol()")):
			return testCodec.Encode([]string{"string"}, []interface{}{args[1]})
		case bytes.HasPrefix(input, selectorOf("decimals()")):
			return testCodec.Encode([]string{"uint8"}, []interface{}{args[2]})
		}
		return nil, errors.New("execution reverted")
	},
}

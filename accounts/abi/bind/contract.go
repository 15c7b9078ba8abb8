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

// Package bind turns a parsed contract interface into callable bindings that
// are dispatched to an execution engine.
//
// A Contract owns the address and the deployment logic of one contract
// instance, and exposes one Function per declared function:
//
//	contract := bind.NewContract(provider, iface.MustParseHumanReadable(
//		"function setNumber(uint256)",
//		"function number() view returns (uint256)",
//	), code)
//	contract.Deploy(&bind.CallOpts{From: deployer})
//	contract.Call(&bind.CallOpts{From: deployer}, "setNumber", 42)
//	out, err := contract.Call(nil, "number")
//
// bind 包将解析后的合约接口转换为可调用的绑定，并分派到执行引擎。
package bind

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/sunyihoo/simbind/accounts/abi/codec"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
)

// Option configures a Contract at construction.
type Option func(*Contract)

// WithCodec replaces the default go-ethereum backed codec.
func WithCodec(c Codec) Option {
	return func(contract *Contract) { contract.codec = c }
}

// WithName sets the name the contract is logged under.
func WithName(name string) Option {
	return func(contract *Contract) { contract.name = name }
}

// Contract is the handle of one contract instance: its interface, optional
// creation bytecode, the address it is bound to and the function bindings.
// Contract 是单个合约实例的句柄：接口、可选的创建字节码、绑定的地址以及函数绑定。
type Contract struct {
	name     string
	provider *Provider
	abi      *iface.Interface
	codec    Codec
	bytecode []byte

	functions map[string]*Function
	order     []*Function

	address atomic.Pointer[common.Address] // nil until Deploy or At
	log     log.Logger
}

// NewContract creates an unbound contract handle. Bytecode is only needed to
// deploy and may be nil for contracts attached with At.
// NewContract 创建一个未绑定地址的合约句柄。字节码仅在部署时需要，通过 At 绑定的合约可传 nil。
func NewContract(provider *Provider, abi *iface.Interface, bytecode []byte, opts ...Option) *Contract {
	c := &Contract{
		provider:  provider,
		abi:       abi,
		bytecode:  slices.Clone(bytecode),
		functions: make(map[string]*Function, abi.Len()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.codec == nil {
		c.codec = codec.New()
	}
	if c.name == "" {
		c.name = "contract"
	}
	c.log = log.New("contract", c.name)

	for _, desc := range abi.Functions() {
		fn := newFunction(c, desc)
		c.functions[desc.Name] = fn
		c.order = append(c.order, fn)
	}
	return c
}

// DeployContract creates a contract handle and deploys it in one step.
// DeployContract 一步完成合约句柄的创建与部署。
func DeployContract(provider *Provider, abi *iface.Interface, bytecode []byte, opts *CallOpts, args ...interface{}) (*Contract, error) {
	c := NewContract(provider, abi, bytecode)
	if _, _, err := c.Deploy(opts, args...); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the name the contract is logged under.
func (c *Contract) Name() string { return c.name }

// Interface returns the parsed interface of the contract.
func (c *Contract) Interface() *iface.Interface { return c.abi }

// Provider returns the provider the contract dispatches to.
func (c *Contract) Provider() *Provider { return c.provider }

// Address returns the current contract address and whether one is set.
func (c *Contract) Address() (common.Address, bool) {
	if addr := c.address.Load(); addr != nil {
		return *addr, true
	}
	return common.Address{}, false
}

// At binds the contract to addr, replacing any previous address. Existing
// function bindings use the new address from their next invocation on.
// At 将合约绑定到 addr 并替换原地址，已有函数绑定从下一次调用起使用新地址。
func (c *Contract) At(addr common.Address) *Contract {
	c.address.Store(&addr)
	c.log.Debug("Bound contract", "address", addr)
	return c
}

// Deploy runs the creation bytecode with the ABI encoded constructor arguments
// appended and binds the contract to the created address. It returns the
// address and the gas used.
// Deploy 执行附加了 ABI 编码构造参数的创建字节码，并将合约绑定到新地址，返回地址和 gas 消耗。
func (c *Contract) Deploy(opts *CallOpts, args ...interface{}) (common.Address, uint64, error) {
	if len(c.bytecode) == 0 {
		return common.Address{}, 0, ErrNoBytecode
	}
	if !opts.hasCaller() {
		return common.Address{}, 0, fmt.Errorf("deploy: %w", ErrMissingCaller)
	}
	ctor, ok := c.abi.Constructor()
	if !ok && len(args) > 0 {
		return common.Address{}, 0, ErrNoConstructor
	}
	if len(args) != len(ctor.Inputs) {
		return common.Address{}, 0, &ArityError{Name: "constructor", Expected: len(ctor.Inputs), Actual: len(args), constructor: true}
	}
	code := slices.Clone(c.bytecode)
	if len(args) > 0 {
		encoded, err := c.codec.Encode(ctor.Inputs, args)
		if err != nil {
			return common.Address{}, 0, fmt.Errorf("constructor: %w", err)
		}
		code = append(code, encoded...)
	}
	deployMeter.Mark(1)
	start := time.Now()
	addr, gas, err := c.provider.Deploy(opts.from(), code, opts.value())
	deployTimer.UpdateSince(start)
	if err != nil {
		failureMeter.Mark(1)
		return common.Address{}, gas, err
	}
	c.address.Store(&addr)
	c.log.Debug("Deployed contract", "address", addr, "gas", gas, "size", len(code))
	return addr, gas, nil
}

// Function returns the binding of the named function.
// Function 返回指定名称函数的绑定。
func (c *Contract) Function(name string) (*Function, error) {
	fn, ok := c.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn, nil
}

// Functions returns all bindings in declaration order.
func (c *Contract) Functions() []*Function {
	return slices.Clone(c.order)
}

// Call looks up the named function and calls it.
func (c *Contract) Call(opts *CallOpts, name string, args ...interface{}) ([]interface{}, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	return fn.Call(opts, args...)
}

// Invoke looks up the named function and invokes it.
func (c *Contract) Invoke(opts *CallOpts, name string, args ...interface{}) (*Result, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	return fn.Invoke(opts, args...)
}

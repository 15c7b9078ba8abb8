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
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
)

// Result is the full outcome of a function invocation.
// Result 是一次函数调用的完整结果。
type Result struct {
	Values  []interface{} // decoded outputs in declaration order
	UsedGas uint64
	Logs    []*types.Log
}

// Function is a callable binding of one contract function. It never caches
// the contract address: every invocation reads the owning contract's current
// address, so rebinding with Contract.At applies to existing bindings.
// Function 是合约单个函数的可调用绑定。它不缓存合约地址，每次调用都读取所属合约的当前地址，
// 因此 Contract.At 重新绑定后对已有绑定立即生效。
type Function struct {
	desc     iface.Function
	selector [4]byte
	contract *Contract
}

func newFunction(c *Contract, desc iface.Function) *Function {
	return &Function{
		desc:     desc,
		selector: c.codec.Selector(desc.Signature()),
		contract: c,
	}
}

// Name returns the function name.
func (f *Function) Name() string { return f.desc.Name }

// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
func (f *Function) Signature() string { return f.desc.Signature() }

// Selector returns the 4-byte function selector.
func (f *Function) Selector() [4]byte { return f.selector }

// Descriptor returns a copy of the function's descriptor.
func (f *Function) Descriptor() iface.Function {
	desc := f.desc
	desc.Inputs = slices.Clone(f.desc.Inputs)
	desc.Outputs = slices.Clone(f.desc.Outputs)
	return desc
}

// Pack validates the argument count and returns selector || encoded arguments.
// Pack 校验参数个数并返回 selector || 编码后的参数。
func (f *Function) Pack(args ...interface{}) ([]byte, error) {
	if len(args) != len(f.desc.Inputs) {
		return nil, &ArityError{Name: f.desc.Name, Expected: len(f.desc.Inputs), Actual: len(args)}
	}
	encoded, err := f.contract.codec.Encode(f.desc.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.desc.Name, err)
	}
	input := make([]byte, 0, len(f.selector)+len(encoded))
	input = append(input, f.selector[:]...)
	return append(input, encoded...), nil
}

// Call invokes the function and returns its decoded outputs.
// Call 调用函数并返回解码后的输出。
func (f *Function) Call(opts *CallOpts, args ...interface{}) ([]interface{}, error) {
	res, err := f.Invoke(opts, args...)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// Invoke invokes the function and returns the decoded outputs together with
// the gas used and the emitted logs.
//
// Read-only functions are executed as calls that persist nothing; opts.From
// is optional and opts.Value is ignored. State-changing functions are sent as
// transactions and require opts.From. Argument and binding errors are reported
// before the engine is contacted.
// Invoke 调用函数，返回解码输出以及消耗的 gas 和日志。
// 只读函数以不持久化的调用执行，From 可选，Value 被忽略；改变状态的函数以交易发送，必须提供 From。
// 参数与绑定错误在联系引擎之前报告。
func (f *Function) Invoke(opts *CallOpts, args ...interface{}) (*Result, error) {
	addr, ok := f.contract.Address()
	if !ok {
		return nil, fmt.Errorf("%s: %w", f.desc.Name, ErrUnbound)
	}
	input, err := f.Pack(args...)
	if err != nil {
		return nil, err
	}
	readOnly := f.desc.ReadOnly()
	if !readOnly && !opts.hasCaller() {
		return nil, fmt.Errorf("%s: %w", f.desc.Name, ErrMissingCaller)
	}
	f.contract.log.Trace("Invoking contract function", "fn", f.desc.Signature(), "address", addr, "readonly", readOnly, "input", hexutil.Bytes(input))

	var (
		start = time.Now()
		res   *ExecutionResult
	)
	if readOnly {
		callMeter.Mark(1)
		res, err = f.contract.provider.Call(opts.from(), addr, input)
		callTimer.UpdateSince(start)
	} else {
		transactMeter.Mark(1)
		res, err = f.contract.provider.Transact(opts.from(), addr, input, opts.value())
		transactTimer.UpdateSince(start)
	}
	if err != nil {
		failureMeter.Mark(1)
		f.contract.log.Debug("Contract function failed", "fn", f.desc.Name, "address", addr, "err", err)
		return nil, err
	}
	values, err := f.contract.codec.Decode(f.desc.Outputs, res.ReturnData)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to decode result: %w", f.desc.Name, err)
	}
	if values == nil {
		values = make([]interface{}, 0)
	}
	return &Result{Values: values, UsedGas: res.UsedGas, Logs: res.Logs}, nil
}

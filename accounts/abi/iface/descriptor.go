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

// Package iface describes the callable surface of a contract: its functions,
// their canonical signatures and its constructor. Descriptors are produced by
// Parse from compiler JSON, structured entries or human-readable signatures.
// iface 包描述合约的可调用接口：函数、规范签名以及构造函数。
package iface

import (
	"slices"
	"strings"
)

// Mutability tells whether invoking a function may alter contract state.
// Mutability 表示调用函数是否可能修改合约状态。
type Mutability uint8

const (
	// StateChanging functions are executed as transactions and commit their effects.
	StateChanging Mutability = iota
	// ReadOnly functions (view/pure) are executed as calls and never commit.
	ReadOnly
)

func (m Mutability) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case StateChanging:
		return "state-changing"
	default:
		return "unknown"
	}
}

// FormatSignature builds the canonical signature used for selector derivation:
// the name followed by the comma separated input types, without whitespace.
// For example FormatSignature("transfer", []string{"address", "uint256"})
// returns "transfer(address,uint256)".
// FormatSignature 构造用于派生选择器的规范签名，例如 transfer(address,uint256)。
func FormatSignature(name string, types []string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(types, ","))
	b.WriteByte(')')
	return b.String()
}

// Function describes a single callable contract function.
// Function 描述合约中的一个可调用函数。
type Function struct {
	Name       string     // 函数名称
	Inputs     []string   // 输入参数类型，按声明顺序
	Outputs    []string   // 输出参数类型，按声明顺序
	Mutability Mutability // 是否只读
	Payable    bool       // 是否可以接收以太
}

// Signature returns the canonical signature of the function, e.g. "setNumber(uint256)".
func (f Function) Signature() string {
	return FormatSignature(f.Name, f.Inputs)
}

// ReadOnly reports whether the function is declared view or pure.
func (f Function) ReadOnly() bool {
	return f.Mutability == ReadOnly
}

func (f Function) clone() Function {
	f.Inputs = slices.Clone(f.Inputs)
	f.Outputs = slices.Clone(f.Outputs)
	return f
}

// Constructor describes the inputs of a contract's creation code.
// Constructor 描述合约创建代码所需的输入参数。
type Constructor struct {
	Inputs  []string
	Payable bool
}

// Signature returns "constructor(<inputs>)".
func (c Constructor) Signature() string {
	return FormatSignature("constructor", c.Inputs)
}

func (c Constructor) clone() Constructor {
	c.Inputs = slices.Clone(c.Inputs)
	return c
}

// Interface is the parsed, immutable description of a contract interface. The
// accessors hand out copies, so callers may not alter a parsed Interface.
// Interface 是解析后不可变的合约接口描述。访问器返回副本。
type Interface struct {
	functions   []Function
	index       map[string]int
	constructor *Constructor
}

func newInterface() *Interface {
	return &Interface{index: make(map[string]int)}
}

// Len returns the number of functions declared in the interface.
func (i *Interface) Len() int {
	return len(i.functions)
}

// Functions returns all functions in declaration order.
func (i *Interface) Functions() []Function {
	fns := make([]Function, 0, len(i.functions))
	for _, fn := range i.functions {
		fns = append(fns, fn.clone())
	}
	return fns
}

// Function looks up a function by name.
func (i *Interface) Function(name string) (Function, bool) {
	idx, ok := i.index[name]
	if !ok {
		return Function{}, false
	}
	return i.functions[idx].clone(), true
}

// Constructor returns the constructor descriptor. The boolean is false if the
// interface declares no constructor, in which case deployment takes no arguments.
func (i *Interface) Constructor() (Constructor, bool) {
	if i.constructor == nil {
		return Constructor{}, false
	}
	return i.constructor.clone(), true
}

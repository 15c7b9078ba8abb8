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

package simulator

import (
	"slices"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/program"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sunyihoo/simbind/accounts/abi/codec"
)

var testCodec = codec.New()

// incrementedTopic is the topic logged by the counter on increment.
var incrementedTopic = crypto.Keccak256Hash([]byte("Incremented(uint256)"))

// assembler wraps program.Program with named jump targets. Jumps use PUSH2
// placeholders that link patches once all labels are known.
type assembler struct {
	p      *program.Program
	labels map[string]int
	fixups map[int]fixup
}

type fixup struct {
	label  string
	offset int
}

func newAssembler() *assembler {
	return &assembler{
		p:      program.New(),
		labels: make(map[string]int),
		fixups: make(map[int]fixup),
	}
}

// push2 emits PUSH2 with the position of label plus offset.
func (a *assembler) push2(label string, offset int) *assembler {
	a.p.Op(vm.PUSH2)
	a.fixups[a.p.Size()] = fixup{label, offset}
	a.p.Append([]byte{0, 0})
	return a
}

func (a *assembler) mark(label string) *assembler {
	a.labels[label] = a.p.Size()
	return a
}

func (a *assembler) jumpdest(label string) *assembler {
	_, pc := a.p.Jumpdest()
	a.labels[label] = int(pc)
	return a
}

// dispatch jumps to label if the selector on the stack matches sig.
func (a *assembler) dispatch(sig, label string) *assembler {
	sel := testCodec.Selector(sig)
	a.p.Op(vm.DUP1).Op(vm.PUSH4).Append(sel[:]).Op(vm.EQ)
	a.push2(label, 0)
	a.p.Op(vm.JUMPI)
	return a
}

// selector leaves the first four calldata bytes on the stack.
func (a *assembler) selector() *assembler {
	a.p.Push(0).Op(vm.CALLDATALOAD).Push(0xe0).Op(vm.SHR)
	return a
}

func (a *assembler) revert() *assembler {
	a.p.Push(0).Op(vm.DUP1).Op(vm.REVERT)
	return a
}

func (a *assembler) link() []byte {
	code := slices.Clone(a.p.Bytes())
	for pos, f := range a.fixups {
		target, ok := a.labels[f.label]
		if !ok {
			panic("undefined label " + f.label)
		}
		target += f.offset
		code[pos] = byte(target >> 8)
		code[pos+1] = byte(target)
	}
	return code
}

// counterRuntime implements
//
//	function increment()                       // emits Incremented(number)
//	function setNumber(uint256)
//	function number() view returns (uint256)
//	function fail()                            // reverts with "counter: failed"
func counterRuntime() []byte {
	reason, err := testCodec.Encode([]string{"string"}, []interface{}{"counter: failed"})
	if err != nil {
		panic(err)
	}
	sel := testCodec.Selector("Error(string)")
	revertData := append(sel[:], reason...)

	a := newAssembler().selector().
		dispatch("increment()", "increment").
		dispatch("setNumber(uint256)", "setNumber").
		dispatch("number()", "number").
		dispatch("fail()", "fail").
		revert()

	a.jumpdest("increment")
	a.p.Push(0).Op(vm.SLOAD).Push(1).Op(vm.ADD).Op(vm.DUP1).Push(0).Op(vm.SSTORE)
	a.p.Push(0).Op(vm.MSTORE)
	a.p.Push(incrementedTopic).Push(32).Push(0).Op(vm.LOG1).Op(vm.STOP)

	a.jumpdest("setNumber")
	a.p.Push(4).Op(vm.CALLDATALOAD).Push(0).Op(vm.SSTORE).Op(vm.STOP)

	a.jumpdest("number")
	a.p.Push(0).Op(vm.SLOAD).Push(0).Op(vm.MSTORE).Return(0, 32)

	a.jumpdest("fail")
	a.p.Mstore(revertData, 0)
	a.p.Push(len(revertData)).Push(0).Op(vm.REVERT)
	return a.link()
}

// counterInitcode deploys counterRuntime.
func counterInitcode() []byte {
	return program.New().ReturnViaCodeCopy(counterRuntime()).Bytes()
}

// tokenRuntime serves name() and decimals() straight from the ABI encoded
// (string,string,uint8) constructor arguments appended to its own code.
// Names are limited to 32 bytes.
func tokenRuntime() []byte {
	a := newAssembler().selector().
		dispatch("name()", "name").
		dispatch("decimals()", "decimals").
		revert()

	// the first string of the arguments is at offset 0x60: [len][data]
	a.jumpdest("name")
	a.p.Push(0x20).Push(0).Op(vm.MSTORE)
	a.p.Push(0x40)
	a.push2("end", 0x60)
	a.p.Push(0x20).Op(vm.CODECOPY).Return(0, 0x60)

	a.jumpdest("decimals")
	a.p.Push(0x20)
	a.push2("end", 0x40)
	a.p.Push(0).Op(vm.CODECOPY).Return(0, 0x20)

	a.mark("end")
	return a.link()
}

// argsInitcode deploys runtime together with whatever follows the initcode,
// i.e. the appended constructor arguments.
func argsInitcode(runtime []byte) []byte {
	a := newAssembler()
	a.push2("init", 0)
	a.p.Op(vm.CODESIZE).Op(vm.SUB).Op(vm.DUP1)
	a.push2("init", 0)
	a.p.Push(0).Op(vm.CODECOPY).Push(0).Op(vm.RETURN)
	a.mark("init")
	return append(a.link(), runtime...)
}

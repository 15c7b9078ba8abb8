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

package iface

import "slices"

// Param is a single input or output of a JSON ABI entry.
type Param struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	InternalType string  `json:"internalType,omitempty"`
	Components   []Param `json:"components,omitempty"`
}

// Entry mirrors one element of a Solidity JSON ABI. Only function and
// constructor entries are interpreted, everything else is skipped.
// Entry 对应 Solidity JSON ABI 中的一个元素，只解释 function 和 constructor 条目。
type Entry struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Inputs          []Param `json:"inputs"`
	Outputs         []Param `json:"outputs"`
	StateMutability string  `json:"stateMutability,omitempty"`

	// Pre solidity 0.5 mutability flags.
	Constant bool `json:"constant,omitempty"`
	Payable  bool `json:"payable,omitempty"`
}

// SourceKind tags the shape of an interface source.
type SourceKind uint8

const (
	UnknownSource       SourceKind = iota
	EntriesSource                  // structured list of Entry values
	HumanReadableSource            // structured list of signature lines
	JSONSource                     // raw JSON text
)

func (k SourceKind) String() string {
	switch k {
	case EntriesSource:
		return "entries"
	case HumanReadableSource:
		return "human-readable"
	case JSONSource:
		return "json"
	default:
		return "unknown"
	}
}

// Source is the tagged input handed to Parse. The zero value is not a valid
// source and is rejected with ErrUnrecognizedFormat.
// Source 是传给 Parse 的带标签输入，零值不是有效来源。
type Source struct {
	kind    SourceKind
	entries []Entry
	lines   []string
	raw     []byte
}

// FromEntries wraps an already structured ABI.
func FromEntries(entries []Entry) Source {
	return Source{kind: EntriesSource, entries: slices.Clone(entries)}
}

// FromHumanReadable wraps signature lines such as
// "function balanceOf(address) view returns (uint256)".
func FromHumanReadable(lines ...string) Source {
	return Source{kind: HumanReadableSource, lines: slices.Clone(lines)}
}

// FromJSON wraps a JSON document: either a bare ABI array or a compiler
// artifact object carrying an "abi" member.
func FromJSON(data []byte) Source {
	return Source{kind: JSONSource, raw: slices.Clone(data)}
}

// Kind returns the tag of the source.
func (s Source) Kind() SourceKind {
	return s.kind
}

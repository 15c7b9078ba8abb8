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

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// typeRegex splits an elementary type into base, size and array suffixes.
var typeRegex = regexp.MustCompile(`^([a-z]+)([0-9]*)((?:\[[0-9]*\])*)$`)

// Parse turns an interface source into an immutable Interface.
// Parse 将接口来源解析为不可变的 Interface。
func Parse(src Source) (*Interface, error) {
	switch src.kind {
	case EntriesSource:
		return parseEntries(src.entries)
	case HumanReadableSource:
		return parseHumanReadable(src.lines)
	case JSONSource:
		entries, err := decodeJSON(src.raw)
		if err != nil {
			return nil, err
		}
		return parseEntries(entries)
	default:
		return nil, ErrUnrecognizedFormat
	}
}

// JSON parses a JSON ABI (or compiler artifact) from the reader.
// JSON 从 reader 中解析 JSON ABI（或编译产物）。
func JSON(reader io.Reader) (*Interface, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return Parse(FromJSON(data))
}

// MustParseHumanReadable is like Parse on human-readable lines but panics on error.
// It simplifies the declaration of well known interfaces.
func MustParseHumanReadable(lines ...string) *Interface {
	i, err := Parse(FromHumanReadable(lines...))
	if err != nil {
		panic(err)
	}
	return i
}

func decodeJSON(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	input := abbreviate(string(trimmed))

	// Compiler artifacts wrap the ABI in an object.
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var artifact struct {
			ABI []Entry `json:"abi"`
		}
		if err := json.Unmarshal(trimmed, &artifact); err != nil {
			return nil, &ParseError{Input: input, Err: err}
		}
		if artifact.ABI == nil {
			return nil, parseErrorf(input, "object has no abi member")
		}
		return artifact.ABI, nil
	}
	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &ParseError{Input: input, Err: err}
	}
	if entries == nil {
		return nil, parseErrorf(input, "not an abi array")
	}
	return entries, nil
}

func abbreviate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// builder accumulates descriptors and enforces the uniqueness rules.
type builder struct {
	iface *Interface
	names mapset.Set[string]
}

func newBuilder() *builder {
	return &builder{
		iface: newInterface(),
		names: mapset.NewThreadUnsafeSet[string](),
	}
}

func (b *builder) addFunction(input string, fn Function) error {
	if !b.names.Add(fn.Name) {
		return &ParseError{Input: input, Err: fmt.Errorf("%w: %s", ErrDuplicateFunction, fn.Name)}
	}
	b.iface.index[fn.Name] = len(b.iface.functions)
	b.iface.functions = append(b.iface.functions, fn)
	return nil
}

func (b *builder) setConstructor(input string, c Constructor) error {
	if b.iface.constructor != nil {
		return &ParseError{Input: input, Err: ErrDuplicateConstructor}
	}
	b.iface.constructor = &c
	return nil
}

func parseEntries(entries []Entry) (*Interface, error) {
	b := newBuilder()
	for _, entry := range entries {
		switch entry.Type {
		case "function", "":
			fn, err := entryFunction(entry)
			if err != nil {
				return nil, err
			}
			if err := b.addFunction(entry.Name, fn); err != nil {
				return nil, err
			}
		case "constructor":
			inputs, err := entryParams("constructor", entry.Inputs)
			if err != nil {
				return nil, err
			}
			c := Constructor{Inputs: inputs, Payable: entryPayable(entry)}
			if err := b.setConstructor("constructor", c); err != nil {
				return nil, err
			}
		default:
			// events, errors, fallback and receive carry nothing callable by name
		}
	}
	return b.iface, nil
}

func entryFunction(entry Entry) (Function, error) {
	if entry.Name == "" {
		return Function{}, parseErrorf("function", "missing function name")
	}
	inputs, err := entryParams(entry.Name, entry.Inputs)
	if err != nil {
		return Function{}, err
	}
	outputs, err := entryParams(entry.Name, entry.Outputs)
	if err != nil {
		return Function{}, err
	}
	fn := Function{
		Name:       entry.Name,
		Inputs:     inputs,
		Outputs:    outputs,
		Mutability: StateChanging,
		Payable:    entryPayable(entry),
	}
	switch entry.StateMutability {
	case "view", "pure":
		fn.Mutability = ReadOnly
	case "":
		if entry.Constant {
			fn.Mutability = ReadOnly
		}
	}
	return fn, nil
}

func entryPayable(entry Entry) bool {
	if entry.StateMutability != "" {
		return entry.StateMutability == "payable"
	}
	return entry.Payable
}

func entryParams(owner string, params []Param) ([]string, error) {
	types := make([]string, 0, len(params))
	for _, p := range params {
		typ, err := normalizeType(p.Type)
		if err != nil {
			return nil, &ParseError{Input: owner, Err: err}
		}
		types = append(types, typ)
	}
	return types, nil
}

// normalizeType validates an elementary type and expands the uint/int aliases
// to their canonical 256-bit spelling.
// normalizeType 校验基本类型，并将 uint/int 别名展开为规范的 256 位写法。
func normalizeType(typ string) (string, error) {
	if strings.HasPrefix(typ, "tuple") || strings.HasPrefix(typ, "(") {
		return "", fmt.Errorf("unsupported tuple type %q", typ)
	}
	matches := typeRegex.FindStringSubmatch(typ)
	if matches == nil {
		return "", fmt.Errorf("invalid type %q", typ)
	}
	base, size, arrays := matches[1], matches[2], matches[3]
	if err := checkArrays(arrays); err != nil {
		return "", fmt.Errorf("invalid type %q: %v", typ, err)
	}
	switch base {
	case "address", "bool", "string":
		if size != "" {
			return "", fmt.Errorf("invalid type %q", typ)
		}
	case "bytes":
		if size != "" {
			n, err := strconv.Atoi(size)
			if err != nil || n < 1 || n > 32 {
				return "", fmt.Errorf("invalid type %q: bytes size must be 1..32", typ)
			}
		}
	case "uint", "int":
		if size == "" {
			size = "256"
			break
		}
		n, err := strconv.Atoi(size)
		if err != nil || n < 8 || n > 256 || n%8 != 0 {
			return "", fmt.Errorf("invalid type %q: integer size must be a multiple of 8 in 8..256", typ)
		}
	default:
		return "", fmt.Errorf("unsupported type %q", typ)
	}
	return base + size + arrays, nil
}

func checkArrays(suffix string) error {
	for suffix != "" {
		end := strings.IndexByte(suffix, ']')
		if dim := suffix[1:end]; dim != "" {
			n, err := strconv.Atoi(dim)
			if err != nil || n == 0 {
				return errors.New("array length must be positive")
			}
		}
		suffix = suffix[end+1:]
	}
	return nil
}

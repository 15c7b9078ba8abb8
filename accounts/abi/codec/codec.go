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

// Package codec implements the byte level contract ABI encoding on top of
// go-ethereum's accounts/abi package: argument packing, result unpacking and
// 4-byte selector derivation.
// codec 包基于 go-ethereum 的 accounts/abi 实现字节级 ABI 编解码以及 4 字节选择器派生。
package codec

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/crypto"
)

// cacheSize is the number of distinct type lists kept compiled.
const cacheSize = 512

// Codec packs and unpacks values according to lists of Solidity type names.
// Compiled type lists are cached, so a Codec should be shared. It is safe for
// concurrent use.
// Codec 按 Solidity 类型名列表打包和解包数值。已编译的类型列表会被缓存，可并发使用。
type Codec struct {
	cache *lru.Cache[string, abi.Arguments]
}

// New creates a codec with an empty type cache.
func New() *Codec {
	return &Codec{cache: lru.NewCache[string, abi.Arguments](cacheSize)}
}

// Selector returns the first four bytes of the keccak256 hash of the
// canonical signature, e.g. Selector("transfer(address,uint256)") = a9059cbb.
// Selector 返回规范签名 keccak256 哈希的前四个字节。
func (c *Codec) Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// Encode packs values as the ABI encoding of the given type list. Values are
// converted to the Go representation expected by go-ethereum first, so plain
// integers, decimal strings and hex strings are accepted where unambiguous.
// Encode 将数值按给定类型列表进行 ABI 编码，会先把数值转换为 go-ethereum 期望的 Go 表示。
func (c *Codec) Encode(types []string, values []interface{}) ([]byte, error) {
	args, err := c.arguments(types)
	if err != nil {
		return nil, err
	}
	if len(values) != len(args) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(values), len(args))
	}
	converted := make([]interface{}, len(values))
	for i, v := range values {
		if converted[i], err = convert(args[i].Type, v); err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, types[i], err)
		}
	}
	return args.Pack(converted...)
}

// Decode unpacks data into one value per type. Numbers wider than 64 bits are
// returned as *big.Int, addresses as common.Address and fixed bytes as arrays.
// An empty type list yields an empty slice.
// Decode 将数据按类型解包为值列表，空类型列表返回空切片。
func (c *Codec) Decode(types []string, data []byte) ([]interface{}, error) {
	args, err := c.arguments(types)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// arguments compiles a type list into abi.Arguments, consulting the cache.
func (c *Codec) arguments(types []string) (abi.Arguments, error) {
	key := strings.Join(types, ",")
	if args, ok := c.cache.Get(key); ok {
		return args, nil
	}
	args := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("invalid type %q: %w", t, err)
		}
		if err := checkWidth(typ); err != nil {
			return nil, fmt.Errorf("invalid type %q: %w", t, err)
		}
		args = append(args, abi.Argument{Type: typ})
	}
	c.cache.Add(key, args)
	return args, nil
}

// checkWidth rejects integer widths that abi.NewType tolerates but are not
// valid Solidity types, such as uint7.
func checkWidth(t abi.Type) error {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		if t.Size < 8 || t.Size > 256 || t.Size%8 != 0 {
			return fmt.Errorf("unsupported integer width %d", t.Size)
		}
	case abi.SliceTy, abi.ArrayTy:
		return checkWidth(*t.Elem)
	}
	return nil
}

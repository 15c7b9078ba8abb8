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

package codec

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

var errNegativeUnsigned = errors.New("negative value for unsigned integer")

// convert maps a caller supplied value onto the Go type abi.Arguments.Pack
// expects for t. Values already of the right type pass through unchanged.
// convert 将调用者提供的值转换为 Pack 对类型 t 所期望的 Go 类型。
func convert(t abi.Type, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, errors.New("nil value")
	}
	want := t.GetType()
	if reflect.TypeOf(v) == want {
		return v, nil
	}
	switch t.T {
	case abi.IntTy, abi.UintTy:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		return fitInteger(t, want, n)

	case abi.BoolTy:
		if s, ok := v.(string); ok {
			return strconv.ParseBool(s)
		}

	case abi.AddressTy:
		switch a := v.(type) {
		case *common.Address:
			return *a, nil
		case string:
			if !common.IsHexAddress(a) {
				return nil, fmt.Errorf("invalid address %q", a)
			}
			return common.HexToAddress(a), nil
		}

	case abi.StringTy:
		if b, ok := v.([]byte); ok {
			return string(b), nil
		}

	case abi.BytesTy:
		if s, ok := v.(string); ok {
			return hexutil.Decode(s)
		}

	case abi.FixedBytesTy:
		return fixedBytes(t, want, v)

	case abi.SliceTy, abi.ArrayTy:
		return sequence(t, want, v)
	}
	return v, nil
}

// toBig reads any integer representation into a big.Int.
func toBig(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case big.Int:
		return &n, nil
	case *uint256.Int:
		return n.ToBig(), nil
	case uint256.Int:
		return n.ToBig(), nil
	case string:
		if len(n) > 0 && n[0] == '-' {
			abs, ok := math.ParseBig256(n[1:])
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", n)
			}
			return abs.Neg(abs), nil
		}
		b, ok := math.ParseBig256(n)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n)
		}
		return b, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, fmt.Errorf("cannot use %T as integer", v)
}

// fitInteger range checks n against the type width and converts it to the
// sized Go integer used for widths up to 64 bits.
func fitInteger(t abi.Type, want reflect.Type, n *big.Int) (interface{}, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, errNegativeUnsigned
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %v overflows uint%d", n, t.Size)
		}
	} else {
		// two's complement range: -2^(size-1) <= n < 2^(size-1)
		bound := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(bound) >= 0 || n.Cmp(new(big.Int).Neg(bound)) < 0 {
			return nil, fmt.Errorf("value %v overflows int%d", n, t.Size)
		}
	}
	if want == reflect.TypeOf((*big.Int)(nil)) {
		return new(big.Int).Set(n), nil
	}
	out := reflect.New(want).Elem()
	if t.T == abi.UintTy {
		out.SetUint(n.Uint64())
	} else {
		out.SetInt(n.Int64())
	}
	return out.Interface(), nil
}

// fixedBytes copies a byte array, slice or hex string into [size]byte.
func fixedBytes(t abi.Type, want reflect.Type, v interface{}) (interface{}, error) {
	var raw []byte
	switch b := v.(type) {
	case []byte:
		raw = b
	case string:
		decoded, err := hexutil.Decode(b)
		if err != nil {
			return nil, err
		}
		raw = decoded
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
			return v, nil
		}
		raw = make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(raw), rv)
	}
	if len(raw) > t.Size {
		return nil, fmt.Errorf("%d bytes do not fit bytes%d", len(raw), t.Size)
	}
	out := reflect.New(want).Elem()
	reflect.Copy(out, reflect.ValueOf(raw))
	return out.Interface(), nil
}

// sequence converts every element of a slice or array value.
func sequence(t abi.Type, want reflect.Type, v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot use %T as %s", v, t.String())
	}
	var out reflect.Value
	if t.T == abi.ArrayTy {
		if rv.Len() != t.Size {
			return nil, fmt.Errorf("array length mismatch: got %d, want %d", rv.Len(), t.Size)
		}
		out = reflect.New(want).Elem()
	} else {
		out = reflect.MakeSlice(want, rv.Len(), rv.Len())
	}
	for i := 0; i < rv.Len(); i++ {
		elem, err := convert(*t.Elem, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(elem))
	}
	return out.Interface(), nil
}

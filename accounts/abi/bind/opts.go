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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CallOpts is the collection of options to fine tune a contract call or
// deployment. A nil *CallOpts is valid and means no caller and no value.
// CallOpts 是用于微调合约调用或部署的选项集合，nil 表示无调用者且不转账。
type CallOpts struct {
	From  common.Address // caller, the zero address means none was given
	Value *uint256.Int   // wei sent along, nil means zero; ignored by read-only calls
}

func (opts *CallOpts) from() common.Address {
	if opts == nil {
		return common.Address{}
	}
	return opts.From
}

func (opts *CallOpts) hasCaller() bool {
	return opts.from() != (common.Address{})
}

func (opts *CallOpts) value() *uint256.Int {
	if opts == nil || opts.Value == nil {
		return new(uint256.Int)
	}
	return opts.Value
}

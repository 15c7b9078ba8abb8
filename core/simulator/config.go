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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// Config is the block environment every execution of the simulator sees.
// Config 是模拟器每次执行所见的区块环境。
type Config struct {
	GasLimit    uint64         // gas available to each deployment, call and transaction
	BlockNumber uint64         // block.number
	Time        uint64         // block.timestamp
	Coinbase    common.Address // block.coinbase
	BaseFee     uint64         // block.basefee in wei
}

// DefaultConfig contains the default settings used when no configuration is
// given or a field is left zero.
var DefaultConfig = Config{
	GasLimit:    30_000_000,
	BlockNumber: 1,
	Time:        1_700_000_000,
	BaseFee:     params.InitialBaseFee,
}

// sanitize fills zero fields the EVM cannot run with from DefaultConfig.
func (c Config) sanitize() Config {
	if c.GasLimit == 0 {
		c.GasLimit = DefaultConfig.GasLimit
	}
	if c.BaseFee == 0 {
		c.BaseFee = DefaultConfig.BaseFee
	}
	return c
}

func (c Config) blockNumber() *big.Int {
	return new(big.Int).SetUint64(c.BlockNumber)
}

func toBig(v *uint256.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v.ToBig()
}

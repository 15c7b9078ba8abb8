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
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/simbind/accounts/abi/bind"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
	"golang.org/x/sync/errgroup"
)

var counterABI = iface.MustParseHumanReadable(
	"function increment()",
	"function setNumber(uint256)",
	"function number() view returns (uint256)",
	"function fail()",
)

var tokenABI = iface.MustParseHumanReadable(
	"constructor(string,string,uint8)",
	"function name() view returns (string)",
	"function decimals() view returns (uint8)",
)

func newTestProvider(t *testing.T) (*Simulator, *bind.Provider, common.Address) {
	sim, err := New(DefaultConfig)
	require.NoError(t, err)
	provider := bind.NewProvider(sim)
	deployer, err := provider.CreateAccount(bind.Ether(100))
	require.NoError(t, err)
	return sim, provider, deployer
}

func TestDefaults(t *testing.T) {
	sim, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig.GasLimit, sim.Config().GasLimit)
	assert.Equal(t, DefaultConfig.BaseFee, sim.Config().BaseFee)
}

func TestCounterEndToEnd(t *testing.T) {
	sim, provider, deployer := newTestProvider(t)
	counter := bind.NewContract(provider, counterABI, counterInitcode(), bind.WithName("Counter"))

	addr, gas, err := counter.Deploy(&bind.CallOpts{From: deployer})
	require.NoError(t, err)
	assert.NotZero(t, gas)
	assert.Equal(t, counterRuntime(), sim.Code(addr))
	assert.Equal(t, uint64(1), sim.Nonce(deployer))

	_, err = counter.Call(&bind.CallOpts{From: deployer}, "setNumber", 42)
	require.NoError(t, err)

	out, err := counter.Call(&bind.CallOpts{From: deployer}, "number")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].(*big.Int).Cmp(big.NewInt(42)))

	res, err := counter.Invoke(&bind.CallOpts{From: deployer}, "increment")
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.NotZero(t, res.UsedGas)
	require.Len(t, res.Logs, 1)
	assert.Equal(t, addr, res.Logs[0].Address)
	assert.Equal(t, incrementedTopic, res.Logs[0].Topics[0])
	assert.Equal(t, uint64(43), new(big.Int).SetBytes(res.Logs[0].Data).Uint64())

	out, err = counter.Call(nil, "number")
	require.NoError(t, err)
	assert.Equal(t, uint64(43), out[0].(*big.Int).Uint64())
}

func TestTokenEndToEnd(t *testing.T) {
	_, provider, deployer := newTestProvider(t)
	token, err := bind.DeployContract(provider, tokenABI, argsInitcode(tokenRuntime()), &bind.CallOpts{From: deployer}, "tok", "TKN", 18)
	require.NoError(t, err)

	out, err := token.Call(nil, "name")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"tok"}, out)

	out, err = token.Call(nil, "decimals")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint8(18)}, out)
}

func TestRebindEndToEnd(t *testing.T) {
	_, provider, deployer := newTestProvider(t)
	opts := &bind.CallOpts{From: deployer}

	counter := bind.NewContract(provider, counterABI, counterInitcode())
	first, _, err := counter.Deploy(opts)
	require.NoError(t, err)
	_, err = counter.Call(opts, "setNumber", 1)
	require.NoError(t, err)

	second, _, err := counter.Deploy(opts)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	number, err := counter.Function("number")
	require.NoError(t, err)
	out, err := number.Call(nil)
	require.NoError(t, err)
	assert.Zero(t, out[0].(*big.Int).Sign(), "fresh deployment")

	counter.At(first)
	out, err = number.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out[0].(*big.Int).Uint64())
}

func TestReadOnlyCallDiscardsState(t *testing.T) {
	sim, provider, deployer := newTestProvider(t)
	counter := bind.NewContract(provider, counterABI, counterInitcode())
	addr, _, err := counter.Deploy(&bind.CallOpts{From: deployer})
	require.NoError(t, err)

	fn, err := counter.Function("increment")
	require.NoError(t, err)
	input, err := fn.Pack()
	require.NoError(t, err)

	// increment executed through the read path leaves no trace
	res, err := sim.Call(deployer, addr, input)
	require.NoError(t, err)
	assert.Empty(t, res.Logs)

	out, err := counter.Call(nil, "number")
	require.NoError(t, err)
	assert.Zero(t, out[0].(*big.Int).Sign())
}

func TestRevertReason(t *testing.T) {
	_, provider, deployer := newTestProvider(t)
	counter, err := bind.DeployContract(provider, counterABI, counterInitcode(), &bind.CallOpts{From: deployer})
	require.NoError(t, err)

	_, err = counter.Call(&bind.CallOpts{From: deployer}, "fail")
	require.ErrorIs(t, err, bind.ErrExecutionFailed)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
	var revert *RevertError
	require.ErrorAs(t, err, &revert)
	assert.Equal(t, "counter: failed", revert.Reason)
	assert.Contains(t, err.Error(), "counter: failed")
}

func TestUnknownSelectorReverts(t *testing.T) {
	sim, provider, deployer := newTestProvider(t)
	counter, err := bind.DeployContract(provider, counterABI, counterInitcode(), &bind.CallOpts{From: deployer})
	require.NoError(t, err)
	addr, _ := counter.Address()

	_, err = sim.Transact(deployer, addr, []byte{1, 2, 3, 4}, nil)
	var revert *RevertError
	require.ErrorAs(t, err, &revert)
	assert.Empty(t, revert.Reason)
	assert.Equal(t, vm.ErrExecutionReverted.Error(), revert.Error())
}

func TestNoCode(t *testing.T) {
	sim, provider, deployer := newTestProvider(t)
	counter := bind.NewContract(provider, counterABI, nil).At(common.HexToAddress("0xdead"))

	_, err := counter.Call(nil, "number")
	require.ErrorIs(t, err, ErrNoCode)
	require.ErrorIs(t, err, bind.ErrExecutionFailed)

	_, err = sim.Transact(deployer, common.HexToAddress("0xdead"), nil, nil)
	require.ErrorIs(t, err, ErrNoCode)
}

func TestValueTransfers(t *testing.T) {
	sim, provider, deployer := newTestProvider(t)
	receiver, err := provider.CreateAccount(nil)
	require.NoError(t, err)

	require.NoError(t, provider.Transfer(deployer, receiver, bind.Ether(30)))
	assert.Equal(t, bind.Ether(70), provider.BalanceOf(deployer))
	assert.Equal(t, bind.Ether(30), provider.BalanceOf(receiver))

	err = provider.Transfer(receiver, deployer, bind.Ether(31))
	require.ErrorIs(t, err, bind.ErrExecutionFailed)
	require.ErrorIs(t, err, vm.ErrInsufficientBalance)
	assert.Equal(t, bind.Ether(30), sim.GetBalance(receiver))

	// value sent along a transaction ends up with the contract
	counter, err := bind.DeployContract(provider, counterABI, counterInitcode(), &bind.CallOpts{From: deployer})
	require.NoError(t, err)
	addr, _ := counter.Address()
	_, err = counter.Call(&bind.CallOpts{From: receiver, Value: bind.Ether(5)}, "increment")
	require.NoError(t, err)
	assert.Equal(t, bind.Ether(5), provider.BalanceOf(addr))
	assert.Equal(t, bind.Ether(25), provider.BalanceOf(receiver))

	// and is refunded when the transaction reverts
	_, err = counter.Call(&bind.CallOpts{From: receiver, Value: bind.Ether(5)}, "fail")
	require.Error(t, err)
	assert.Equal(t, bind.Ether(25), provider.BalanceOf(receiver))

	_, err = counter.Call(&bind.CallOpts{From: receiver, Value: bind.Ether(500)}, "increment")
	require.ErrorIs(t, err, vm.ErrInsufficientBalance)
}

func TestDeployFailure(t *testing.T) {
	_, provider, deployer := newTestProvider(t)
	// initcode that reverts straight away
	code := []byte{byte(vm.PUSH1), 0, byte(vm.DUP1), byte(vm.REVERT)}
	c := bind.NewContract(provider, counterABI, code)
	_, _, err := c.Deploy(&bind.CallOpts{From: deployer})
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
	_, ok := c.Address()
	assert.False(t, ok)
}

func TestConcurrentReads(t *testing.T) {
	_, provider, deployer := newTestProvider(t)
	counter, err := bind.DeployContract(provider, counterABI, counterInitcode(), &bind.CallOpts{From: deployer})
	require.NoError(t, err)
	_, err = counter.Call(&bind.CallOpts{From: deployer}, "setNumber", 9)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			out, err := counter.Call(nil, "number")
			if err != nil {
				return err
			}
			if n := out[0].(*big.Int).Uint64(); n != 9 {
				return fmt.Errorf("wrong number %d", n)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestCreateAccountSetsBalance(t *testing.T) {
	sim, _, deployer := newTestProvider(t)
	require.NoError(t, sim.CreateAccount(deployer, uint256.NewInt(7)))
	assert.Equal(t, uint256.NewInt(7), sim.GetBalance(deployer))
}

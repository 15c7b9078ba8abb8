// Copyright 2025 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/sunyihoo/simbind/accounts/abi/bind"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
	"github.com/sunyihoo/simbind/common/compiler"
	"github.com/sunyihoo/simbind/core/simulator"
	"github.com/sunyihoo/simbind/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Scenario TOML file",
		Category: flags.ScenarioCategory,
	}
	gasLimitFlag = &cli.Uint64Flag{
		Name:     "gaslimit",
		Usage:    "Gas limit of every execution, overrides the scenario file",
		Category: flags.VMCategory,
	}
	blockNumberFlag = &cli.Uint64Flag{
		Name:     "block.number",
		Usage:    "Block number seen by contracts, overrides the scenario file",
		Category: flags.VMCategory,
	}

	runCommand = &cli.Command{
		Action:    runScenario,
		Name:      "run",
		Usage:     "Deploy contracts and execute the steps of a scenario",
		ArgsUsage: "[<scenario.toml>]",
		Flags:     []cli.Flag{configFileFlag, gasLimitFlag, blockNumberFlag, verbosityFlag, logColorFlag},
		Description: `
The run command creates the accounts of a scenario file on a fresh in-memory
EVM, deploys its contracts and executes the steps in order, printing decoded
results and gas. The scenario may be given as argument or with --config.`,
	}
)

func runScenario(ctx *cli.Context) error {
	file := ctx.String(configFileFlag.Name)
	if ctx.Args().Len() > 0 {
		file = ctx.Args().First()
	}
	if file == "" {
		return errors.New("no scenario file given")
	}
	sc, err := loadScenario(file)
	if err != nil {
		return err
	}
	if ctx.IsSet(gasLimitFlag.Name) {
		sc.Simulator.GasLimit = ctx.Uint64(gasLimitFlag.Name)
	}
	if ctx.IsSet(blockNumberFlag.Name) {
		sc.Simulator.BlockNumber = ctx.Uint64(blockNumberFlag.Name)
	}
	metrics.Enable()
	before := bind.ReadStats()
	if err := newRunner(ctx.App.Writer).run(sc); err != nil {
		return err
	}
	printStats(ctx.App.Writer, bind.ReadStats().Sub(before))
	return nil
}

// printStats reports the invocation counts and mean durations of a run.
func printStats(w io.Writer, s bind.Stats) {
	fmt.Fprintf(w, "summary  calls=%d transactions=%d deployments=%d failures=%d\n",
		s.Calls, s.Transactions, s.Deployments, s.Failures)
	fmt.Fprintf(w, "timing   call=%v transact=%v deploy=%v\n",
		s.CallTime.Round(time.Microsecond), s.TransactTime.Round(time.Microsecond), s.DeployTime.Round(time.Microsecond))
}

// runner executes a scenario and reports every step to out.
type runner struct {
	out       io.Writer
	provider  *bind.Provider
	accounts  map[string]common.Address
	contracts map[string]*bind.Contract
}

func newRunner(out io.Writer) *runner {
	return &runner{
		out:       out,
		accounts:  make(map[string]common.Address),
		contracts: make(map[string]*bind.Contract),
	}
}

func (r *runner) run(sc *scenario) error {
	sim, err := simulator.New(sc.Simulator)
	if err != nil {
		return err
	}
	r.provider = bind.NewProvider(sim)

	for _, acc := range sc.Accounts {
		addr, err := r.provider.CreateAccount(bind.Ether(acc.Ether))
		if err != nil {
			return fmt.Errorf("account %s: %w", acc.Name, err)
		}
		r.accounts[acc.Name] = addr
		fmt.Fprintf(r.out, "account  %-10s %s %d ether\n", acc.Name, addr.Hex(), acc.Ether)
	}
	for _, cfg := range sc.Contracts {
		if err := r.setupContract(cfg); err != nil {
			return fmt.Errorf("contract %s: %w", cfg.Name, err)
		}
	}
	for i, step := range sc.Steps {
		if err := r.runStep(step); err != nil {
			return fmt.Errorf("step %d (%s.%s): %w", i, step.Contract, step.Function, err)
		}
	}
	return nil
}

func (r *runner) setupContract(cfg contractConfig) error {
	var (
		abi      *iface.Interface
		bytecode []byte
		err      error
	)
	if cfg.Artifact != "" {
		artifact, err := compiler.LoadArtifact(cfg.Artifact)
		if err != nil {
			return err
		}
		bytecode = artifact.Bytecode
		if len(cfg.ABI) == 0 {
			if abi, err = artifact.Interface(); err != nil {
				return err
			}
		}
	}
	if len(cfg.ABI) > 0 {
		if abi, err = iface.Parse(iface.FromHumanReadable(cfg.ABI...)); err != nil {
			return err
		}
	}
	contract := bind.NewContract(r.provider, abi, bytecode, bind.WithName(cfg.Name))
	r.contracts[cfg.Name] = contract

	if cfg.Address != "" {
		if !common.IsHexAddress(cfg.Address) {
			return fmt.Errorf("invalid address %q", cfg.Address)
		}
		contract.At(common.HexToAddress(cfg.Address))
		fmt.Fprintf(r.out, "contract %-10s %s (attached)\n", cfg.Name, cfg.Address)
		return nil
	}
	ctor, _ := abi.Constructor()
	opts := &bind.CallOpts{From: r.accounts[cfg.Deployer], Value: bind.Ether(cfg.Ether)}
	addr, gas, err := contract.Deploy(opts, r.resolveArgs(cfg.Args, ctor.Inputs)...)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "contract %-10s %s gas=%d\n", cfg.Name, addr.Hex(), gas)
	return nil
}

func (r *runner) runStep(step stepConfig) error {
	contract := r.contracts[step.Contract]
	fn, err := contract.Function(step.Function)
	if err != nil {
		return err
	}
	opts := &bind.CallOpts{Value: bind.Ether(step.Ether)}
	if step.From != "" {
		opts.From = r.accounts[step.From]
	}
	args := r.resolveArgs(step.Args, fn.Descriptor().Inputs)
	call := fmt.Sprintf("%s.%s(%s)", step.Contract, step.Function, strings.Join(step.Args, ", "))

	res, err := fn.Invoke(opts, args...)
	if step.Fails {
		if err == nil {
			return errors.New("expected failure, step succeeded")
		}
		fmt.Fprintf(r.out, "%s failed as expected: %v\n", call, err)
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug("Executed step", "fn", fn.Signature(), "gas", res.UsedGas, "logs", len(res.Logs))
	fmt.Fprintf(r.out, "%s -> %s gas=%d logs=%d\n", call, formatValues(res.Values), res.UsedGas, len(res.Logs))
	return nil
}

// resolveArgs replaces account and contract names given for address
// parameters with their addresses. Other arguments are passed on verbatim.
func (r *runner) resolveArgs(args []string, types []string) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		if i >= len(types) || types[i] != "address" {
			out[i] = arg
			continue
		}
		if addr, ok := r.accounts[arg]; ok {
			out[i] = addr
			continue
		}
		if c, ok := r.contracts[arg]; ok {
			if addr, bound := c.Address(); bound {
				out[i] = addr
				continue
			}
		}
		out[i] = arg
	}
	return out
}

func formatValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case common.Address:
			parts[i] = v.Hex()
		case []byte:
			parts[i] = fmt.Sprintf("%#x", v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

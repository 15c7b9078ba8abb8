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
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sunyihoo/simbind/accounts/abi/codec"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
	"github.com/sunyihoo/simbind/common/compiler"
	"github.com/sunyihoo/simbind/internal/flags"
	"github.com/urfave/cli/v2"
)

var inspectCommand = &cli.Command{
	Action:    inspect,
	Name:      "inspect",
	Usage:     "Print the functions, signatures and selectors of a contract interface",
	ArgsUsage: "<artifact.json | abi.json>",
	Description: `
The inspect command reads a compiler artifact or a plain JSON ABI and lists the
constructor and every function with its canonical signature, 4-byte selector
and mutability.`,
}

func inspect(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("need exactly one interface file")
	}
	data, err := os.ReadFile(flags.ExpandPath(ctx.Args().First()))
	if err != nil {
		return err
	}
	abi, code, err := readInterface(data)
	if err != nil {
		return err
	}
	printInterface(ctx.App.Writer, abi, code)
	return nil
}

// readInterface accepts an artifact with bytecode or a bare ABI.
func readInterface(data []byte) (*iface.Interface, []byte, error) {
	if artifact, err := compiler.ParseArtifact(data); err == nil {
		abi, err := artifact.Interface()
		return abi, artifact.Bytecode, err
	}
	abi, err := iface.Parse(iface.FromJSON(data))
	return abi, nil, err
}

func printInterface(w io.Writer, abi *iface.Interface, code []byte) {
	c := codec.New()
	if ctor, ok := abi.Constructor(); ok {
		payable := ""
		if ctor.Payable {
			payable = " payable"
		}
		fmt.Fprintf(w, "%-10s %s%s\n", "", ctor.Signature(), payable)
	}
	for _, fn := range abi.Functions() {
		sel := c.Selector(fn.Signature())
		var tags []string
		if fn.ReadOnly() {
			tags = append(tags, "view")
		}
		if fn.Payable {
			tags = append(tags, "payable")
		}
		if len(fn.Outputs) > 0 {
			tags = append(tags, "returns ("+strings.Join(fn.Outputs, ",")+")")
		}
		line := fmt.Sprintf("%-10s %s", hexutil.Encode(sel[:]), fn.Signature())
		if len(tags) > 0 {
			line += " " + strings.Join(tags, " ")
		}
		fmt.Fprintln(w, line)
	}
	if len(code) > 0 {
		fmt.Fprintf(w, "bytecode   %d bytes\n", len(code))
	}
}

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

// simbind inspects contract interfaces and runs contract scenarios on an
// in-memory EVM.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/simbind/internal/flags"
	"github.com/sunyihoo/simbind/version"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logColorFlag = &cli.BoolFlag{
		Name:     "log.color",
		Usage:    "Force colored terminal output",
		Category: flags.LoggingCategory,
	}
)

var app = flags.NewApp("contract interface binding and scenario runner")

func init() {
	app.Version = version.WithCommit()
	app.Flags = []cli.Flag{verbosityFlag, logColorFlag}
	app.Commands = []*cli.Command{
		inspectCommand,
		runCommand,
	}
	prev := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := prev(ctx); err != nil {
			return err
		}
		setupLogging(ctx, os.Stderr)
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs the terminal log handler at the requested verbosity.
func setupLogging(ctx *cli.Context, stderr *os.File) {
	var (
		output   io.Writer = stderr
		useColor           = ctx.Bool(logColorFlag.Name)
	)
	if !useColor {
		useColor = (isatty.IsTerminal(stderr.Fd()) || isatty.IsCygwinTerminal(stderr.Fd())) && os.Getenv("TERM") != "dumb"
	}
	if useColor {
		output = colorable.NewColorable(stderr)
	}
	handler := log.NewTerminalHandlerWithLevel(output, log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), useColor)
	log.SetDefault(log.NewLogger(handler))
}

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

package flags

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	home := HomeDir()
	var tests map[string]string

	if runtime.GOOS == "windows" {
		tests = map[string]string{
			`/home/someuser/tmp`: `\home\someuser\tmp`,
			`~/tmp`:              home + `\tmp`,
			`$DDDXXX/a/b`:        `\tmp\a\b`,
		}
	} else {
		tests = map[string]string{
			`/home/someuser/tmp`: "/home/someuser/tmp",
			`~/tmp`:              home + "/tmp",
			`~thisOtherUser/b/`:  "~thisOtherUser/b",
			`$DDDXXX/a/b`:        "/tmp/a/b",
			`/a/b/`:              "/a/b",
		}
	}

	os.Setenv(`DDDXXX`, `/tmp`)
	for test, expected := range tests {
		assert.Equal(t, expected, ExpandPath(test), test)
	}
}

func TestGlobalFlagsReachCommands(t *testing.T) {
	var got int
	app := NewApp("test")
	app.Flags = []cli.Flag{&cli.IntFlag{Name: "verbosity", Value: 3}}
	app.Commands = []*cli.Command{{
		Name:  "run",
		Flags: []cli.Flag{&cli.IntFlag{Name: "verbosity", Value: 3}},
		Action: func(ctx *cli.Context) error {
			got = ctx.Int("verbosity")
			return nil
		},
	}}
	assert.NoError(t, app.Run([]string{"simbind", "--verbosity", "5", "run"}))
	assert.Equal(t, 5, got)
}

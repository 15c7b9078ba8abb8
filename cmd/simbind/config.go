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
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/simbind/core/simulator"
	"github.com/sunyihoo/simbind/internal/flags"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// scenario is the content of a scenario file:
//
//	[Simulator]
//	GasLimit = 30000000
//
//	[[Accounts]]
//	Name = "alice"
//	Ether = 100
//
//	[[Contracts]]
//	Name = "token"
//	Artifact = "out/Token.sol/Token.json"
//	Deployer = "alice"
//	Args = ["Token", "TKN", "18"]
//
//	[[Steps]]
//	Contract = "token"
//	Function = "transfer"
//	From = "alice"
//	Args = ["bob", "1000"]
type scenario struct {
	Simulator simulator.Config
	Accounts  []accountConfig
	Contracts []contractConfig
	Steps     []stepConfig
}

type accountConfig struct {
	Name  string
	Ether uint64
}

// contractConfig either deploys an artifact or, when Address is set, binds
// the interface to an existing contract.
type contractConfig struct {
	Name     string
	Artifact string   // compiler artifact holding abi and bytecode
	ABI      []string // human-readable signatures, replaces the artifact abi
	Address  string
	Deployer string
	Args     []string
	Ether    uint64
}

type stepConfig struct {
	Contract string
	Function string
	From     string
	Args     []string
	Ether    uint64
	Fails    bool // the step is expected to fail
}

func defaultScenario() scenario {
	return scenario{Simulator: simulator.DefaultConfig}
}

// loadScenario reads a scenario file. Artifact paths are resolved relative to
// the directory of the file.
func loadScenario(file string) (*scenario, error) {
	file = flags.ExpandPath(file)
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaultScenario()
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(file)
	for i := range cfg.Contracts {
		p := cfg.Contracts[i].Artifact
		if p == "" {
			continue
		}
		if p = flags.ExpandPath(p); !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		cfg.Contracts[i].Artifact = p
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return &cfg, nil
}

// validate checks that names are unique and every reference resolves.
func (s *scenario) validate() error {
	names := make(map[string]bool)
	for _, acc := range s.Accounts {
		if acc.Name == "" {
			return errors.New("account without name")
		}
		if names[acc.Name] {
			return fmt.Errorf("duplicate name %q", acc.Name)
		}
		names[acc.Name] = true
	}
	isAccount := func(name string) bool {
		for _, acc := range s.Accounts {
			if acc.Name == name {
				return true
			}
		}
		return false
	}
	contracts := make(map[string]bool)
	for _, c := range s.Contracts {
		switch {
		case c.Name == "":
			return errors.New("contract without name")
		case names[c.Name]:
			return fmt.Errorf("duplicate name %q", c.Name)
		case c.Artifact == "" && len(c.ABI) == 0:
			return fmt.Errorf("contract %q: no artifact or abi", c.Name)
		case c.Address == "" && c.Artifact == "":
			return fmt.Errorf("contract %q: no artifact to deploy", c.Name)
		case c.Address == "" && !isAccount(c.Deployer):
			return fmt.Errorf("contract %q: unknown deployer %q", c.Name, c.Deployer)
		}
		names[c.Name] = true
		contracts[c.Name] = true
	}
	for i, step := range s.Steps {
		if !contracts[step.Contract] {
			return fmt.Errorf("step %d: unknown contract %q", i, step.Contract)
		}
		if step.Function == "" {
			return fmt.Errorf("step %d: no function", i)
		}
		if step.From != "" && !isAccount(step.From) {
			return fmt.Errorf("step %d: unknown account %q", i, step.From)
		}
	}
	return nil
}

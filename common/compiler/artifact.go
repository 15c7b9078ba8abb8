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

// Package compiler reads the output of Solidity toolchains: the JSON
// artifacts foundry and hardhat write for every compiled contract.
// compiler 包读取 Solidity 工具链的输出，即 foundry 与 hardhat 为每个编译合约生成的 JSON 产物。
package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sunyihoo/simbind/accounts/abi/iface"
)

var (
	errNoABI      = errors.New("artifact has no abi")
	errNoBytecode = errors.New("artifact has no bytecode")
)

// Artifact is a compiled contract: its ABI definition and creation bytecode.
// Artifact 是编译后的合约：ABI 定义和创建字节码。
type Artifact struct {
	ABI      json.RawMessage
	Bytecode []byte
}

// artifactJSON covers both artifact layouts:
//
//	foundry: {"abi": [...], "bytecode": {"object": "0x..."}}
//	hardhat: {"abi": [...], "bytecode": "0x..."}
type artifactJSON struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

// LoadArtifact reads and parses the artifact file at path.
// LoadArtifact 读取并解析 path 处的产物文件。
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artifact, nil
}

// ParseArtifact parses an artifact document. Artifacts of abstract contracts
// and interfaces carry an empty bytecode, which is accepted.
// ParseArtifact 解析产物文档。抽象合约与接口的产物字节码为空，也会被接受。
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw artifactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.ABI) == 0 || bytes.Equal(raw.ABI, []byte("null")) {
		return nil, errNoABI
	}
	if len(raw.Bytecode) == 0 {
		return nil, errNoBytecode
	}
	code, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, err
	}
	return &Artifact{ABI: raw.ABI, Bytecode: code}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	var hex string
	if raw[0] == '{' {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		hex = obj.Object
	} else if err := json.Unmarshal(raw, &hex); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(hex, "0x") && !strings.HasPrefix(hex, "0X") {
		hex = "0x" + hex
	}
	if hex == "0x" {
		return []byte{}, nil
	}
	code, err := hexutil.Decode(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}

// Interface parses the ABI of the artifact.
// Interface 解析产物中的 ABI。
func (a *Artifact) Interface() (*iface.Interface, error) {
	return iface.Parse(iface.FromJSON(a.ABI))
}

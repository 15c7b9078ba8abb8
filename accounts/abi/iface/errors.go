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

package iface

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when the interface source is neither a
	// structured list nor raw text.
	// ErrUnrecognizedFormat 在接口来源既不是结构化列表也不是原始文本时返回。
	ErrUnrecognizedFormat = errors.New("unrecognized abi format")

	// ErrDuplicateFunction is raised when two functions share the same name.
	// Overloads are not supported.
	ErrDuplicateFunction = errors.New("duplicate function name")

	// ErrDuplicateConstructor is raised when more than one constructor is declared.
	ErrDuplicateConstructor = errors.New("duplicate constructor")
)

// ParseError is returned for any input that could not be turned into an
// interface description. Input holds the offending line, entry or document.
// ParseError 表示输入无法解析为接口描述，Input 保存出错的行、条目或文档。
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("abi: failed to parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(input string, format string, args ...interface{}) error {
	return &ParseError{Input: input, Err: fmt.Errorf(format, args...)}
}

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
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch is returned when a function is invoked with a different
	// number of arguments than it declares.
	// ErrArityMismatch 在调用函数时参数个数与声明不一致时返回。
	ErrArityMismatch = errors.New("argument count mismatch")

	// ErrConstructorArityMismatch is returned when a deployment supplies a
	// different number of arguments than the constructor declares.
	ErrConstructorArityMismatch = errors.New("constructor argument count mismatch")

	// ErrNoConstructor is returned when deployment arguments are supplied for an
	// interface that declares no constructor.
	// ErrNoConstructor 在接口未声明构造函数却提供了部署参数时返回。
	ErrNoConstructor = errors.New("interface declares no constructor")

	// ErrMissingCaller is returned by state-changing calls and deployments that
	// were not given a caller address.
	ErrMissingCaller = errors.New("no caller given for state-changing call")

	// ErrUnbound is returned when a function of a contract without an address
	// is invoked. Bind the contract with Deploy or At first.
	// ErrUnbound 在合约尚未绑定地址时调用函数返回。请先调用 Deploy 或 At。
	ErrUnbound = errors.New("contract is not bound to an address")

	// ErrUnknownFunction is returned when looking up a function name the
	// interface does not declare.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrExecutionFailed marks every failure reported by the execution engine.
	// The concrete error is available through ExecutionError.
	// ErrExecutionFailed 标记执行引擎报告的所有失败，具体错误可通过 ExecutionError 获取。
	ErrExecutionFailed = errors.New("execution failed")

	// ErrNoBytecode is returned when deploying a contract created without code.
	ErrNoBytecode = errors.New("no bytecode to deploy")
)

// ArityError reports an argument count mismatch of a function or constructor.
// It matches ErrArityMismatch, or ErrConstructorArityMismatch for deployments.
// ArityError 报告函数或构造函数的参数个数不匹配。
type ArityError struct {
	Name     string // function name, "constructor" for deployments
	Expected int
	Actual   int

	constructor bool
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d arguments, got %d", e.Name, e.Expected, e.Actual)
}

func (e *ArityError) Is(target error) bool {
	if e.constructor {
		return target == ErrConstructorArityMismatch
	}
	return target == ErrArityMismatch
}

// ExecutionError wraps an error returned by the execution engine. The engine's
// error is kept unmodified so its reason, e.g. a revert message, stays visible.
// ExecutionError 包装执行引擎返回的错误，原始错误保持不变以保留失败原因（如 revert 信息）。
type ExecutionError struct {
	Op  string // engine operation: deploy, call, transact, transfer
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Is(target error) bool { return target == ErrExecutionFailed }

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
	"time"

	"github.com/ethereum/go-ethereum/metrics"
)

var (
	callMeter     = metrics.NewRegisteredMeter("bind/call", nil)
	transactMeter = metrics.NewRegisteredMeter("bind/transact", nil)
	deployMeter   = metrics.NewRegisteredMeter("bind/deploy", nil)
	failureMeter  = metrics.NewRegisteredMeter("bind/failure", nil) // engine failures only

	callTimer     = metrics.NewRegisteredTimer("bind/call/time", nil)
	transactTimer = metrics.NewRegisteredTimer("bind/transact/time", nil)
	deployTimer   = metrics.NewRegisteredTimer("bind/deploy/time", nil)
)

// Stats is a snapshot of the invocation metrics shared by all contracts of the
// process.
// Stats 是进程内所有合约共享的调用指标快照。
type Stats struct {
	Calls        int64
	Transactions int64
	Deployments  int64
	Failures     int64 // engine failures, validation errors are not counted

	// Mean durations, only sampled once metrics.Enable has been called.
	CallTime     time.Duration
	TransactTime time.Duration
	DeployTime   time.Duration
}

// ReadStats reads the current invocation metrics.
func ReadStats() Stats {
	return Stats{
		Calls:        callMeter.Snapshot().Count(),
		Transactions: transactMeter.Snapshot().Count(),
		Deployments:  deployMeter.Snapshot().Count(),
		Failures:     failureMeter.Snapshot().Count(),
		CallTime:     time.Duration(callTimer.Snapshot().Mean()),
		TransactTime: time.Duration(transactTimer.Snapshot().Mean()),
		DeployTime:   time.Duration(deployTimer.Snapshot().Mean()),
	}
}

// Sub returns the counts recorded since prev. Mean durations are kept as is.
func (s Stats) Sub(prev Stats) Stats {
	s.Calls -= prev.Calls
	s.Transactions -= prev.Transactions
	s.Deployments -= prev.Deployments
	s.Failures -= prev.Failures
	return s
}

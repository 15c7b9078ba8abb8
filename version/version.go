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

// Package version reports the release of simbind.
package version

import (
	"fmt"
	"runtime/debug"
)

const (
	Major = 0          // Major version component of the current release 当前发布版本的主要版本组成部分
	Minor = 3          // Minor version component of the current release 当前发布版本的次要版本组成部分
	Patch = 0          // Patch version component of the current release 当前发布版本的补丁版本组成部分
	Meta  = "unstable" // Version metadata to append to the version string 附加到版本字符串的版本元数据
)

// Semantic holds the textual version string for major.minor.patch.
var Semantic = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)

// WithMeta holds the textual version string including the metadata.
var WithMeta = func() string {
	v := Semantic
	if Meta != "" {
		v += "-" + Meta
	}
	return v
}()

// WithCommit returns the version string with the abbreviated commit hash, if
// the binary was built from a git checkout.
// WithCommit 返回附带缩写提交哈希的版本字符串（如果二进制从 git 检出构建）。
func WithCommit() string {
	v := WithMeta
	if commit := vcsCommit(); len(commit) >= 8 {
		v += "-" + commit[:8]
	}
	return v
}

// vcsCommit reads the revision embedded by the go toolchain.
func vcsCommit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}

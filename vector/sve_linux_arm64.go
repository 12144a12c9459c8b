// Copyright 2025 go-vector Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux && arm64

package vector

import "golang.org/x/sys/unix"

// sveVectorBits asks the kernel for the current SVE vector length.
// The length can differ between implementations (128 to 2048 bits) and is
// only observable at runtime.
func sveVectorBits() int {
	vl, err := unix.PrctlRetInt(unix.PR_SVE_GET_VL, 0, 0, 0, 0)
	if err != nil {
		return 0
	}
	return (vl & unix.PR_SVE_VL_LEN_MASK) * 8
}

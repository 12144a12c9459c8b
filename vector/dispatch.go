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

package vector

import "github.com/xyproto/env/v2"

// minMaxBits is the smallest width the MAX shape may resolve to.
const minMaxBits = 512

// platformInfo describes the SIMD hardware detected at startup.
type platformInfo struct {
	// bits is the native register width in bits, 0 if unknown.
	bits int
	name string
}

// platform is detected once by the per-architecture detectHardware.
var platform = detectPlatform()

// maxBits is the width of ShapeMax. It is resolved during package
// initialization, before any species constant is built, and never changes.
var maxBits = resolveMaxBits(platform, maxBitsOverride())

// NoSimdEnv reports whether VECTOR_NO_SIMD is set. When set, detected
// hardware is ignored and MAX resolves to 512 bits (unless overridden by
// VECTOR_MAX_BITS).
func NoSimdEnv() bool {
	return env.Bool("VECTOR_NO_SIMD")
}

func detectPlatform() platformInfo {
	if NoSimdEnv() {
		return platformInfo{name: "scalar"}
	}
	bits, name := detectHardware()
	return platformInfo{bits: bits, name: name}
}

// maxBitsOverride returns VECTOR_MAX_BITS, or 0 when it is unset or not
// a number.
func maxBitsOverride() int {
	return env.Int("VECTOR_MAX_BITS", 0)
}

// resolveMaxBits picks the MAX width for platform p. A valid override wins
// over the detected width.
func resolveMaxBits(p platformInfo, override int) int {
	if validMaxOverride(override) {
		return override
	}
	return max(p.bits, minMaxBits)
}

// validMaxOverride accepts widths that every element type divides evenly.
func validMaxOverride(bits int) bool {
	return bits >= minMaxBits && bits%128 == 0
}

// MaxBits returns the bit width of ShapeMax.
func MaxBits() int {
	return maxBits
}

// HardwareBits returns the widest native SIMD register width in bits, or 0
// when it could not be determined.
func HardwareBits() int {
	return platform.bits
}

// PlatformName returns a human-readable name for the detected SIMD target,
// e.g. "avx512", "neon", "sve" or "scalar".
func PlatformName() string {
	return platform.name
}

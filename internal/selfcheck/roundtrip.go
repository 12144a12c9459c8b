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

package selfcheck

import (
	"context"

	"github.com/ajroetker/go-vector/vector"
)

// RoundTrip checks that reinterpreting between species of equal width and
// back restores every bit, and that converting a vector to its own species
// is the identity.
func RoundTrip(ctx context.Context, opts Options) (Report, error) {
	rec := newRecorder("roundtrip", opts.logger())
	all := vector.AllSpecies()
	parallel(ctx, opts.Workers, len(all), func(i int) {
		s := all[i]
		v := randomVector(opts.rand(uint64(i)), s)

		for name, conv := range map[string]func(vector.Species) (vector.Vector, error){
			"Convert":     v.Convert,
			"Reinterpret": v.Reinterpret,
		} {
			got, err := conv(s)
			if err != nil {
				rec.fail("%s identity %s: %v", name, s, err)
			} else if !got.Equal(v) {
				rec.fail("%s identity %s: %v, want %v", name, s, got, v)
			} else {
				rec.pass(1)
			}
		}

		for _, d := range all {
			if d.TotalBits() != s.TotalBits() {
				continue
			}
			there, err := v.Reinterpret(d)
			if err != nil {
				rec.fail("reinterpret %s -> %s: %v", s, d, err)
				continue
			}
			back, err := there.Reinterpret(s)
			if err != nil {
				rec.fail("reinterpret %s -> %s: %v", d, s, err)
				continue
			}
			if !back.Equal(v) {
				rec.fail("reinterpret %s -> %s -> %s changed bits", s, d, s)
				continue
			}
			rec.pass(1)
		}
	})
	return rec.done(ctx)
}

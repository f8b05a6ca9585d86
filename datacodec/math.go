// Copyright 2021 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datacodec

import (
	"math"
)

// overflowCheckedOp wraps a 64-bit arithmetic operation with an overflow flag, the shape shared
// by addExact and multiplyExact below; time and date codecs use both to detect when a conversion
// would silently wrap.
type overflowCheckedOp func(x, y int64) (int64, bool)

// addExact returns x+y and whether the addition overflowed int64.
var addExact overflowCheckedOp = func(x, y int64) (int64, bool) {
	r := x + y
	if ((x ^ r) & (y ^ r)) < 0 {
		return 0, true
	}
	return r, false
}

// multiplyExact returns x*y and whether the multiplication overflowed int64.
var multiplyExact overflowCheckedOp = func(x, y int64) (int64, bool) {
	if x == 0 || y == 0 || x == 1 || y == 1 {
		return x * y, false
	}
	if x == math.MinInt64 || y == math.MinInt64 {
		return 0, true
	}
	r := x * y
	if r/y != x {
		return 0, true
	}
	return r, false
}

// floorDiv returns the quotient of x/y rounded toward negative infinity rather than toward zero,
// so it disagrees with Go's own / operator exactly when the exact result is negative and inexact.
func floorDiv(x, y int64) int64 {
	r := x / y
	if (x^y) < 0 && (r*y != x) {
		r--
	}
	return r
}

// floorMod returns x - floorDiv(x, y)*y: the remainder that carries the sign of y, in (-|y|, |y|).
func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}

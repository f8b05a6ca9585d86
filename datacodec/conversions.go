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
	"errors"
	"math"
	"math/big"
	"strconv"
	"time"
)

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// narrowSigned converts val to the narrower signed type T, rejecting anything outside [lo, hi].
// Every intXXToIntYY helper below is an instance of this with YY's own range as bounds.
func narrowSigned[T signedInt](val int64, lo, hi int64) (T, error) {
	if val < lo || val > hi {
		return 0, errValueOutOfRange(val)
	}
	return T(val), nil
}

// toUnsigned converts a signed val to unsigned type T. hi bounds the result from above; pass -1
// when T's own width is the only limit (e.g. converting into a uint64).
func toUnsigned[T unsignedInt](val int64, hi int64) (T, error) {
	if val < 0 || (hi >= 0 && val > hi) {
		return 0, errValueOutOfRange(val)
	}
	return T(val), nil
}

// toSignedFromUnsigned converts an unsigned val to signed type T, rejecting values above hi.
func toSignedFromUnsigned[T signedInt](val uint64, hi uint64) (T, error) {
	if val > hi {
		return 0, errValueOutOfRange(val)
	}
	return T(val), nil
}

// narrowBigInt converts a *big.Int to signed type T, requiring it to fit in an int64 first and
// then in [lo, hi].
func narrowBigInt[T signedInt](val *big.Int, lo, hi int64) (T, error) {
	if !val.IsInt64() || val.Int64() < lo || val.Int64() > hi {
		return 0, errValueOutOfRange(val)
	}
	return T(val.Int64()), nil
}

// narrowBigUint converts a *big.Int to unsigned type T, requiring it to fit in a uint64 first
// and then at or below hi.
func narrowBigUint[T unsignedInt](val *big.Int, hi uint64) (T, error) {
	if !val.IsUint64() || val.Uint64() > hi {
		return 0, errValueOutOfRange(val)
	}
	return T(val.Uint64()), nil
}

func int64ToInt(val int64, intSize int) (int, error) {
	if intSize == 32 {
		return narrowSigned[int](val, math.MinInt32, math.MaxInt32)
	}
	return int(val), nil
}

func int64ToInt32(val int64) (int32, error) { return narrowSigned[int32](val, math.MinInt32, math.MaxInt32) }
func int64ToInt16(val int64) (int16, error) { return narrowSigned[int16](val, math.MinInt16, math.MaxInt16) }
func int64ToInt8(val int64) (int8, error)   { return narrowSigned[int8](val, math.MinInt8, math.MaxInt8) }

func int64ToUint64(val int64) (uint64, error) { return toUnsigned[uint64](val, -1) }

func int64ToUint(val int64, intSize int) (uint, error) {
	if intSize == 32 {
		return toUnsigned[uint](val, math.MaxUint32)
	}
	return toUnsigned[uint](val, -1)
}

func int64ToUint32(val int64) (uint32, error) { return toUnsigned[uint32](val, math.MaxUint32) }
func int64ToUint16(val int64) (uint16, error) { return toUnsigned[uint16](val, math.MaxUint16) }
func int64ToUint8(val int64) (uint8, error)   { return toUnsigned[uint8](val, math.MaxUint8) }

func intToInt32(val int) (int32, error) { return narrowSigned[int32](int64(val), math.MinInt32, math.MaxInt32) }
func intToInt16(val int) (int16, error) { return narrowSigned[int16](int64(val), math.MinInt16, math.MaxInt16) }
func intToInt8(val int) (int8, error)   { return narrowSigned[int8](int64(val), math.MinInt8, math.MaxInt8) }

func int32ToInt16(val int32) (int16, error) { return narrowSigned[int16](int64(val), math.MinInt16, math.MaxInt16) }
func int32ToInt8(val int32) (int8, error)   { return narrowSigned[int8](int64(val), math.MinInt8, math.MaxInt8) }

func int32ToUint64(val int32) (uint64, error) { return toUnsigned[uint64](int64(val), -1) }
func int32ToUint(val int32) (uint, error)     { return toUnsigned[uint](int64(val), -1) }
func int32ToUint32(val int32) (uint32, error) { return toUnsigned[uint32](int64(val), -1) }
func int32ToUint16(val int32) (uint16, error) { return toUnsigned[uint16](int64(val), math.MaxUint16) }
func int32ToUint8(val int32) (uint8, error)   { return toUnsigned[uint8](int64(val), math.MaxUint8) }

func int16ToInt8(val int16) (int8, error) { return narrowSigned[int8](int64(val), math.MinInt8, math.MaxInt8) }

func int16ToUint64(val int16) (uint64, error) { return toUnsigned[uint64](int64(val), -1) }
func int16ToUint(val int16) (uint, error)     { return toUnsigned[uint](int64(val), -1) }
func int16ToUint32(val int16) (uint32, error) { return toUnsigned[uint32](int64(val), -1) }
func int16ToUint16(val int16) (uint16, error) { return toUnsigned[uint16](int64(val), -1) }
func int16ToUint8(val int16) (uint8, error)   { return toUnsigned[uint8](int64(val), math.MaxUint8) }

func int8ToUint64(val int8) (uint64, error) { return toUnsigned[uint64](int64(val), -1) }
func int8ToUint(val int8) (uint, error)     { return toUnsigned[uint](int64(val), -1) }
func int8ToUint32(val int8) (uint32, error) { return toUnsigned[uint32](int64(val), -1) }
func int8ToUint16(val int8) (uint16, error) { return toUnsigned[uint16](int64(val), -1) }
func int8ToUint8(val int8) (uint8, error)   { return toUnsigned[uint8](int64(val), -1) }

func uint64ToInt64(val uint64) (int64, error) { return toSignedFromUnsigned[int64](val, math.MaxInt64) }
func uint64ToInt32(val uint64) (int32, error) { return toSignedFromUnsigned[int32](val, math.MaxInt32) }
func uint64ToInt16(val uint64) (int16, error) { return toSignedFromUnsigned[int16](val, math.MaxInt16) }
func uint64ToInt8(val uint64) (int8, error)   { return toSignedFromUnsigned[int8](val, math.MaxInt8) }

func uintToInt64(val uint) (int64, error) { return toSignedFromUnsigned[int64](uint64(val), math.MaxInt64) }
func uintToInt32(val uint) (int32, error) { return toSignedFromUnsigned[int32](uint64(val), math.MaxInt32) }
func uintToInt16(val uint) (int16, error) { return toSignedFromUnsigned[int16](uint64(val), math.MaxInt16) }
func uintToInt8(val uint) (int8, error)   { return toSignedFromUnsigned[int8](uint64(val), math.MaxInt8) }

func uint32ToInt32(val uint32) (int32, error) { return toSignedFromUnsigned[int32](uint64(val), math.MaxInt32) }
func uint32ToInt16(val uint32) (int16, error) { return toSignedFromUnsigned[int16](uint64(val), math.MaxInt16) }
func uint32ToInt8(val uint32) (int8, error)   { return toSignedFromUnsigned[int8](uint64(val), math.MaxInt8) }

func uint16ToInt16(val uint16) (int16, error) { return toSignedFromUnsigned[int16](uint64(val), math.MaxInt16) }
func uint16ToInt8(val uint16) (int8, error)   { return toSignedFromUnsigned[int8](uint64(val), math.MaxInt8) }

func uint8ToInt8(val uint8) (int8, error) { return toSignedFromUnsigned[int8](uint64(val), math.MaxInt8) }

func stringToInt64(val string) (int64, error) {
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, errCannotParseString(val, err)
	}
	return parsed, nil
}

func stringToInt32(val string) (int32, error) {
	parsed, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return 0, errCannotParseString(val, err)
	}
	return int32(parsed), nil
}

func stringToInt16(val string) (int16, error) {
	parsed, err := strconv.ParseInt(val, 10, 16)
	if err != nil {
		return 0, errCannotParseString(val, err)
	}
	return int16(parsed), nil
}

func stringToInt8(val string) (int8, error) {
	parsed, err := strconv.ParseInt(val, 10, 8)
	if err != nil {
		return 0, errCannotParseString(val, err)
	}
	return int8(parsed), nil
}

func stringToBigInt(val string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(val, 10)
	if !ok {
		return nil, errCannotParseString(val, errors.New("big.Int.SetString(text, 10) failed"))
	}
	return i, nil
}

func stringToEpochMillis(val string, layout string, location *time.Location) (int64, error) {
	parsed, err := time.ParseInLocation(layout, val, location)
	if err != nil {
		return 0, err
	}
	return ConvertTimeToEpochMillis(parsed)
}

func stringToNanosOfDay(val string, layout string) (int64, error) {
	parsed, err := time.Parse(layout, val)
	if err != nil {
		return 0, err
	}
	return ConvertTimeToNanosOfDay(parsed), nil
}

func stringToEpochDays(val string, layout string) (int32, error) {
	parsed, err := time.Parse(layout, val)
	if err != nil {
		return 0, err
	}
	return ConvertTimeToEpochDays(parsed)
}

func bigIntToInt64(val *big.Int) (int64, error) {
	if !val.IsInt64() {
		return 0, errValueOutOfRange((*val).String())
	}
	return val.Int64(), nil
}

func bigIntToInt(val *big.Int, intSize int) (int, error) {
	if intSize == 32 {
		return narrowBigInt[int](val, math.MinInt32, math.MaxInt32)
	}
	return narrowBigInt[int](val, math.MinInt64, math.MaxInt64)
}

func bigIntToInt32(val *big.Int) (int32, error) { return narrowBigInt[int32](val, math.MinInt32, math.MaxInt32) }
func bigIntToInt16(val *big.Int) (int16, error) { return narrowBigInt[int16](val, math.MinInt16, math.MaxInt16) }
func bigIntToInt8(val *big.Int) (int8, error)   { return narrowBigInt[int8](val, math.MinInt8, math.MaxInt8) }

func bigIntToUint64(val *big.Int) (uint64, error) {
	if !val.IsUint64() {
		return 0, errValueOutOfRange(val)
	}
	return val.Uint64(), nil
}

func bigIntToUint(val *big.Int, intSize int) (uint, error) {
	if intSize == 32 {
		return narrowBigUint[uint](val, math.MaxUint32)
	}
	if !val.IsUint64() {
		return 0, errValueOutOfRange(val)
	}
	return uint(val.Uint64()), nil
}

func bigIntToUint32(val *big.Int) (uint32, error) { return narrowBigUint[uint32](val, math.MaxUint32) }
func bigIntToUint16(val *big.Int) (uint16, error) { return narrowBigUint[uint16](val, math.MaxUint16) }
func bigIntToUint8(val *big.Int) (uint8, error)   { return narrowBigUint[uint8](val, math.MaxUint8) }

func bigFloatToFloat64(val *big.Float) (float64, error) {
	f64, accuracy := val.Float64()
	if accuracy != big.Exact {
		return 0, errValueOutOfRange(val)
	}
	return f64, nil
}

func float64ToBigFloat(val float64, dest *big.Float) error {
	if math.IsNaN(val) {
		return errValueOutOfRange(val)
	}
	dest.SetFloat64(val)
	return nil
}

func float64ToFloat32(val float64) (float32, error) {
	// this is the best we can do: convert from float64 to float32 is inherently lossy
	if float64(float32(val)) != val {
		return 0, errValueOutOfRange(val)
	}
	return float32(val), nil
}

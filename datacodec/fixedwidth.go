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
	"github.com/coldspire/cqlwire/datatype"
	"github.com/coldspire/cqlwire/primitive"
)

// Every fixed-width numeric codec (bigint, int, smallint, float, double, ...) shares the same
// three-step shape: convert the caller's value to the wire-native Go type, render it to bytes
// (or the reverse on decode), and wrap any failure with the data type and protocol version. The
// helpers below capture that shape once via generics so each codec file only supplies its
// conversion and wire functions.

// encodeFixed drives the encode side of a fixed-width codec: convert source to T, then render T
// to wire bytes. A nil source (wasNil) encodes to a nil byte slice, signalling CQL NULL.
func encodeFixed[T any](
	dt datatype.DataType,
	version primitive.ProtocolVersion,
	source interface{},
	convert func(interface{}) (T, bool, error),
	write func(T) []byte,
) ([]byte, error) {
	val, wasNil, err := convert(source)
	if err != nil {
		return nil, errCannotEncode(source, dt, version, err)
	}
	if wasNil {
		return nil, nil
	}
	return write(val), nil
}

// decodeFixed drives the decode side of a fixed-width codec: parse the wire bytes into T, then
// assign T (or its zero value, if the wire value was CQL NULL) into dest.
func decodeFixed[T any](
	dt datatype.DataType,
	version primitive.ProtocolVersion,
	source []byte,
	dest interface{},
	read func([]byte) (T, bool, error),
	assign func(T, bool, interface{}) error,
) (bool, error) {
	val, wasNull, err := read(source)
	if err == nil {
		err = assign(val, wasNull, dest)
	}
	if err != nil {
		return wasNull, errCannotDecode(dest, dt, version, err)
	}
	return wasNull, nil
}

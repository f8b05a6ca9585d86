// Copyright 2020 DataStax
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

package primitive

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Byte widths of the fixed-size integer primitives defined by the CQL binary protocol.
const (
	LengthOfByte  = 1
	LengthOfShort = 2
	LengthOfInt   = 4
	LengthOfLong  = 8
)

// readFixed reads exactly len(buf) bytes from source, wrapping short reads with kind
// for error context. The fixed-width integer readers below each decode buf themselves
// rather than going through binary.Read, avoiding its reflection-based dispatch.
func readFixed(source io.Reader, buf []byte, kind string) error {
	if _, err := io.ReadFull(source, buf); err != nil {
		return fmt.Errorf("cannot read [%s]: %w", kind, err)
	}
	return nil
}

func writeFixed(dest io.Writer, buf []byte, kind string) error {
	if _, err := dest.Write(buf); err != nil {
		return fmt.Errorf("cannot write [%s]: %w", kind, err)
	}
	return nil
}

// ReadByte decodes a CQL [byte]; this primitive is not defined by the protocol spec
// itself but is used internally by other primitives (e.g. collection element counts).
func ReadByte(source io.Reader) (uint8, error) {
	var buf [LengthOfByte]byte
	if err := readFixed(source, buf[:], "byte"); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func WriteByte(b uint8, dest io.Writer) error {
	return writeFixed(dest, []byte{b}, "byte")
}

func ReadShort(source io.Reader) (uint16, error) {
	var buf [LengthOfShort]byte
	if err := readFixed(source, buf[:], "short"); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteShort(i uint16, dest io.Writer) error {
	var buf [LengthOfShort]byte
	binary.BigEndian.PutUint16(buf[:], i)
	return writeFixed(dest, buf[:], "short")
}

func ReadInt(source io.Reader) (int32, error) {
	var buf [LengthOfInt]byte
	if err := readFixed(source, buf[:], "int"); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteInt(i int32, dest io.Writer) error {
	var buf [LengthOfInt]byte
	binary.BigEndian.PutUint32(buf[:], uint32(i))
	return writeFixed(dest, buf[:], "int")
}

func ReadLong(source io.Reader) (int64, error) {
	var buf [LengthOfLong]byte
	if err := readFixed(source, buf[:], "long"); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteLong(l int64, dest io.Writer) error {
	var buf [LengthOfLong]byte
	binary.BigEndian.PutUint64(buf[:], uint64(l))
	return writeFixed(dest, buf[:], "long")
}

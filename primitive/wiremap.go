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
	"fmt"
	"io"
)

// readMapGeneric reads a [short]-prefixed sequence of [string] key / V value pairs, the shape
// shared by [string map], [string multimap] and [bytes map] — they differ only in how the value
// half of each entry is read.
func readMapGeneric[V any](source io.Reader, desc string, readValue func(io.Reader) (V, error)) (map[string]V, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [%s] length: %w", desc, err)
	}
	decoded := make(map[string]V, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [%s] entry %d key: %w", desc, i, err)
		}
		value, err := readValue(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [%s] entry %d value: %w", desc, i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func writeMapGeneric[V any](m map[string]V, dest io.Writer, desc string, writeValue func(V, io.Writer) error) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [%s] length: %w", desc, err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [%s] entry '%v' key: %w", desc, key, err)
		}
		if err := writeValue(value, dest); err != nil {
			return fmt.Errorf("cannot write [%s] entry '%v' value: %w", desc, key, err)
		}
	}
	return nil
}

func lengthOfMapGeneric[V any](m map[string]V, lengthOfValue func(V) int) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + lengthOfValue(value)
	}
	return length
}

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

import "io"

// [bytes map]

func ReadBytesMap(source io.Reader) (map[string][]byte, error) {
	return readMapGeneric(source, "bytes map", ReadBytes)
}

func WriteBytesMap(m map[string][]byte, dest io.Writer) error {
	return writeMapGeneric(m, dest, "bytes map", func(v []byte, w io.Writer) error { return WriteBytes(v, w) })
}

func LengthOfBytesMap(m map[string][]byte) int {
	return lengthOfMapGeneric(m, LengthOfBytes)
}

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

// ReadBytes decodes a CQL [bytes]: an [int] length (negative means null) followed by
// that many raw bytes.
func ReadBytes(source io.Reader) ([]byte, error) {
	length, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes] length: %w", err)
	}
	if length < 0 {
		return nil, nil
	}
	content := make([]byte, length)
	if _, err := io.ReadFull(source, content); err != nil {
		return nil, fmt.Errorf("cannot read [bytes] content: %w", err)
	}
	return content, nil
}

func WriteBytes(b []byte, dest io.Writer) error {
	if b == nil {
		if err := WriteInt(-1, dest); err != nil {
			return fmt.Errorf("cannot write null [bytes]: %w", err)
		}
		return nil
	}
	if err := WriteInt(int32(len(b)), dest); err != nil {
		return fmt.Errorf("cannot write [bytes] length: %w", err)
	}
	if _, err := dest.Write(b); err != nil {
		return fmt.Errorf("cannot write [bytes] content: %w", err)
	}
	return nil
}

func LengthOfBytes(b []byte) int {
	return LengthOfInt + len(b)
}

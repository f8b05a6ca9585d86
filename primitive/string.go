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

// ReadString decodes a CQL [string]: a [short] byte length followed by UTF-8 content.
func ReadString(source io.Reader) (string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return "", fmt.Errorf("cannot read [string] length: %w", err)
	}
	content := make([]byte, length)
	if _, err := io.ReadFull(source, content); err != nil {
		return "", fmt.Errorf("cannot read [string] content: %w", err)
	}
	return string(content), nil
}

func WriteString(s string, dest io.Writer) error {
	if err := WriteShort(uint16(len(s)), dest); err != nil {
		return fmt.Errorf("cannot write [string] length: %w", err)
	}
	if _, err := io.WriteString(dest, s); err != nil {
		return fmt.Errorf("cannot write [string] content: %w", err)
	}
	return nil
}

func LengthOfString(s string) int {
	return LengthOfShort + len(s)
}

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

package snappy

import (
	"fmt"
	"io"

	"github.com/coldspire/cqlwire/compression/internal"
	"github.com/golang/snappy"
)

// BodyCompressor satisfies frame.BodyCompressor for the SNAPPY algorithm.
type BodyCompressor struct{}

func (l BodyCompressor) Algorithm() string {
	return "SNAPPY"
}

func (l BodyCompressor) Compress(source io.Reader, dest io.Writer) error {
	uncompressedMessage, err := internal.Drain(source, "uncompressed body")
	if err != nil {
		return err
	}
	compressedMessage := snappy.Encode(nil, uncompressedMessage.Bytes())
	if _, err := dest.Write(compressedMessage); err != nil {
		return fmt.Errorf("cannot write compressed body: %w", err)
	}
	return nil
}

func (l BodyCompressor) Decompress(source io.Reader, dest io.Writer) error {
	compressedMessage, err := internal.Drain(source, "compressed body")
	if err != nil {
		return err
	}
	decompressedMessage, err := snappy.Decode(nil, compressedMessage.Bytes())
	if err != nil {
		return fmt.Errorf("cannot decompress body: %w", err)
	}
	if _, err := dest.Write(decompressedMessage); err != nil {
		return fmt.Errorf("cannot write decompressed body: %w", err)
	}
	return nil
}

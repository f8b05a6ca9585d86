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

package client

import (
	"github.com/coldspire/cqlwire/compression/lz4"
	"github.com/coldspire/cqlwire/compression/snappy"
	"github.com/coldspire/cqlwire/frame"
	"github.com/coldspire/cqlwire/primitive"
)

// NewBodyCompressor returns the frame.BodyCompressor for the given negotiated algorithm, or nil for
// primitive.CompressionNone.
func NewBodyCompressor(c primitive.Compression) frame.BodyCompressor {
	switch c {
	case primitive.CompressionLz4:
		return &lz4.BodyCompressor{}
	case primitive.CompressionSnappy:
		return &snappy.BodyCompressor{}
	default:
		return nil
	}
}

// ChooseCompression picks the preferred algorithm if the server's SUPPORTED options advertise it, falling back to
// the other supported algorithm, then to no compression: lz4 > snappy > none.
func ChooseCompression(preferred primitive.Compression, serverSupported []string) primitive.Compression {
	supports := func(name string) bool {
		for _, s := range serverSupported {
			if s == name {
				return true
			}
		}
		return false
	}
	if preferred == primitive.CompressionLz4 && supports(string(primitive.CompressionLz4)) {
		return primitive.CompressionLz4
	}
	if preferred == primitive.CompressionSnappy && supports(string(primitive.CompressionSnappy)) {
		return primitive.CompressionSnappy
	}
	if supports(string(primitive.CompressionLz4)) {
		return primitive.CompressionLz4
	}
	if supports(string(primitive.CompressionSnappy)) {
		return primitive.CompressionSnappy
	}
	return primitive.CompressionNone
}

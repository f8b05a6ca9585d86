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
	"io"
)

// EventStreamId is the reserved stream id for server-initiated EVENT frames. It is never allocated to a request.
const EventStreamId int16 = -1

// MaxStreamId is the highest stream id a request may use; the stream-id space is 15 bits wide, [0, MaxStreamId].
const MaxStreamId int16 = 1<<15 - 1

// ReadStreamId reads a stream id from the given source. The stream id is a signed 16-bit big-endian integer.
func ReadStreamId(source io.Reader, version ProtocolVersion) (int16, error) {
	id, err := ReadShort(source)
	return int16(id), err
}

// WriteStreamId writes the given stream id to the given destination, as a signed 16-bit big-endian integer.
func WriteStreamId(streamId int16, dest io.Writer, version ProtocolVersion) error {
	return WriteShort(uint16(streamId), dest)
}

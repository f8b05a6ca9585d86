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

package message

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/coldspire/cqlwire/primitive"
)

// Execute runs a statement previously cached via Prepare, referencing it by the id
// the server returned.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type Execute struct {
	QueryId []byte
	// ResultMetadataId pins down which result-schema generation the client last saw;
	// only meaningful once the server supports result metadata ids (protocol v5 / DSE v2).
	ResultMetadataId []byte
	Options          *QueryOptions
}

func (m *Execute) IsResponse() bool { return false }

func (m *Execute) GetOpCode() primitive.OpCode { return primitive.OpCodeExecute }

func (m *Execute) String() string {
	return "EXECUTE " + hex.EncodeToString(m.QueryId)
}

func (m *Execute) Clone() Message {
	return &Execute{
		QueryId:          primitive.CloneByteSlice(m.QueryId),
		ResultMetadataId: primitive.CloneByteSlice(m.ResultMetadataId),
		Options:          m.Options.Clone(),
	}
}

type executeCodec struct{}

func (c *executeCodec) GetOpCode() primitive.OpCode { return primitive.OpCodeExecute }

func (c *executeCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	execute, ok := msg.(*Execute)
	if !ok {
		return unexpectedMessageType(execute, msg)
	}
	if len(execute.QueryId) == 0 {
		return errors.New("EXECUTE missing query id")
	}
	if err := primitive.WriteShortBytes(execute.QueryId, dest); err != nil {
		return fmt.Errorf("cannot write EXECUTE query id: %w", err)
	}
	if version.SupportsResultMetadataId() {
		if len(execute.ResultMetadataId) == 0 {
			return errors.New("EXECUTE missing result metadata id")
		}
		if err := primitive.WriteShortBytes(execute.ResultMetadataId, dest); err != nil {
			return fmt.Errorf("cannot write EXECUTE result metadata id: %w", err)
		}
	}
	if err := EncodeQueryOptions(execute.Options, dest, version); err != nil {
		return fmt.Errorf("cannot write EXECUTE options: %w", err)
	}
	return nil
}

func (c *executeCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	execute, ok := msg.(*Execute)
	if !ok {
		return -1, unexpectedMessageType(execute, msg)
	}
	size := primitive.LengthOfShortBytes(execute.QueryId)
	if version.SupportsResultMetadataId() {
		size += primitive.LengthOfShortBytes(execute.ResultMetadataId)
	}
	optionsLen, err := LengthOfQueryOptions(execute.Options, version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute size EXECUTE query options: %w", err)
	}
	return size + optionsLen, nil
}

func (c *executeCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	queryId, err := primitive.ReadShortBytes(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read EXECUTE query id: %w", err)
	}
	if len(queryId) == 0 {
		return nil, errors.New("EXECUTE missing query id")
	}
	execute := &Execute{QueryId: queryId}
	if version.SupportsResultMetadataId() {
		execute.ResultMetadataId, err = primitive.ReadShortBytes(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read EXECUTE result metadata id: %w", err)
		}
		if len(execute.ResultMetadataId) == 0 {
			return nil, errors.New("EXECUTE missing result metadata id")
		}
	}
	if execute.Options, err = DecodeQueryOptions(source, version); err != nil {
		return nil, fmt.Errorf("cannot read EXECUTE query options: %w", err)
	}
	return execute, nil
}

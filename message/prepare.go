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
	"errors"
	"fmt"
	"io"

	"github.com/coldspire/cqlwire/primitive"
)

// Prepare asks the server to parse and cache a CQL statement, returning an id that
// Execute can later reference instead of resending the full query text.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type Prepare struct {
	Query string
	// Keyspace overrides the connection's current keyspace for this one statement.
	// Requires a server supporting PREPARE flags (protocol v5 / DSE v2); on a v4
	// connection a non-empty value here is simply never put on the wire.
	Keyspace string
}

func (m *Prepare) IsResponse() bool { return false }

func (m *Prepare) GetOpCode() primitive.OpCode { return primitive.OpCodePrepare }

func (m *Prepare) String() string {
	if m.Keyspace == "" {
		return fmt.Sprintf("PREPARE (%v)", m.Query)
	}
	return fmt.Sprintf("PREPARE (%v, %v)", m.Query, m.Keyspace)
}

func (m *Prepare) flags() primitive.PrepareFlag {
	if m.Keyspace == "" {
		return 0
	}
	return primitive.PrepareFlag(0).Add(primitive.PrepareFlagWithKeyspace)
}

type prepareCodec struct{}

func (c *prepareCodec) GetOpCode() primitive.OpCode { return primitive.OpCodePrepare }

func (c *prepareCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	prepare, ok := msg.(*Prepare)
	if !ok {
		return unexpectedMessageType(prepare, msg)
	}
	if prepare.Query == "" {
		return errors.New("cannot write PREPARE empty query string")
	}
	if err := primitive.WriteLongString(prepare.Query, dest); err != nil {
		return fmt.Errorf("cannot write PREPARE query string: %w", err)
	}
	if !version.SupportsPrepareFlags() {
		return nil
	}
	flags := prepare.flags()
	if err := primitive.WriteInt(int32(flags), dest); err != nil {
		return fmt.Errorf("cannot write PREPARE flags: %w", err)
	}
	if !flags.Contains(primitive.PrepareFlagWithKeyspace) {
		return nil
	}
	if prepare.Keyspace == "" {
		return errors.New("cannot write empty keyspace")
	}
	if err := primitive.WriteString(prepare.Keyspace, dest); err != nil {
		return fmt.Errorf("cannot write PREPARE keyspace: %w", err)
	}
	return nil
}

func (c *prepareCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	prepare, ok := msg.(*Prepare)
	if !ok {
		return -1, unexpectedMessageType(prepare, msg)
	}
	size := primitive.LengthOfLongString(prepare.Query)
	if !version.SupportsPrepareFlags() {
		return size, nil
	}
	size += primitive.LengthOfInt
	if prepare.Keyspace != "" {
		size += primitive.LengthOfString(prepare.Keyspace)
	}
	return size, nil
}

func (c *prepareCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	query, err := primitive.ReadLongString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read PREPARE query: %w", err)
	}
	prepare := &Prepare{Query: query}
	if !version.SupportsPrepareFlags() {
		return prepare, nil
	}
	rawFlags, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read PREPARE flags: %w", err)
	}
	flags := primitive.PrepareFlag(rawFlags)
	if flags.Contains(primitive.PrepareFlagWithKeyspace) {
		if prepare.Keyspace, err = primitive.ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read PREPARE keyspace: %w", err)
		}
	}
	return prepare, nil
}

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

// Register subscribes the connection to server-pushed EVENT frames for the listed
// event types (schema, topology, or node status changes).
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type Register struct {
	EventTypes []primitive.EventType
}

func (m *Register) IsResponse() bool { return false }

func (m *Register) GetOpCode() primitive.OpCode { return primitive.OpCodeRegister }

func (m *Register) String() string {
	return fmt.Sprint("REGISTER ", m.EventTypes)
}

func eventTypesToStrings(types []primitive.EventType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToEventTypes(raw []string) []primitive.EventType {
	out := make([]primitive.EventType, len(raw))
	for i, s := range raw {
		out[i] = primitive.EventType(s)
	}
	return out
}

type registerCodec struct{}

func (c *registerCodec) GetOpCode() primitive.OpCode { return primitive.OpCodeRegister }

func (c *registerCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	register, ok := msg.(*Register)
	if !ok {
		return unexpectedMessageType(register, msg)
	}
	if len(register.EventTypes) == 0 {
		return errors.New("REGISTER messages must have at least one event type")
	}
	for _, t := range register.EventTypes {
		if err := primitive.CheckValidEventType(t); err != nil {
			return err
		}
	}
	return primitive.WriteStringList(eventTypesToStrings(register.EventTypes), dest)
}

func (c *registerCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	register, ok := msg.(*Register)
	if !ok {
		return -1, unexpectedMessageType(register, msg)
	}
	return primitive.LengthOfStringList(eventTypesToStrings(register.EventTypes)), nil
}

func (c *registerCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	raw, err := primitive.ReadStringList(source)
	if err != nil {
		return nil, err
	}
	types := stringsToEventTypes(raw)
	for _, t := range types {
		if err := primitive.CheckValidEventType(t); err != nil {
			return nil, err
		}
	}
	return &Register{EventTypes: types}, nil
}

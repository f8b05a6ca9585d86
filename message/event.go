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
	"fmt"
	"io"

	"github.com/coldspire/cqlwire/primitive"
)

type Event interface {
	Message
	GetEventType() primitive.EventType
}

// SCHEMA CHANGE EVENT

// SchemaChangeEvent is a response sent when a schema change event occurs.
// Note: this struct is identical to SchemaChangeResult.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type SchemaChangeEvent struct {
	// The schema change type.
	ChangeType primitive.SchemaChangeType
	// The schema change target, that is, the kind of schema object affected by the change.
	Target primitive.SchemaChangeTarget
	// The name of the keyspace affected by the change.
	Keyspace string
	// If the schema object affected by the change is not the keyspace itself, this field contains its name. Otherwise,
	// this field is irrelevant and should be empty.
	Object string
	// If the schema object affected by the change is a function or an aggregate, this field contains its arguments.
	// Otherwise, this field is irrelevant.
	Arguments []string
}

func (m *SchemaChangeEvent) IsResponse() bool {
	return true
}

func (m *SchemaChangeEvent) GetOpCode() primitive.OpCode {
	return primitive.OpCodeEvent
}

func (m *SchemaChangeEvent) GetEventType() primitive.EventType {
	return primitive.EventTypeSchemaChange
}

func (m *SchemaChangeEvent) String() string {
	return fmt.Sprintf("EVENT SCHEMA CHANGE (type=%v target=%v keyspace=%v object=%v args=%v)",
		m.ChangeType,
		m.Target,
		m.Keyspace,
		m.Object,
		m.Arguments)
}

func (m *SchemaChangeEvent) Clone() Message {
	return &SchemaChangeEvent{
		ChangeType: m.ChangeType,
		Target:     m.Target,
		Keyspace:   m.Keyspace,
		Object:     m.Object,
		Arguments:  primitive.CloneStringSlice(m.Arguments),
	}
}

// requiresObject reports whether the given schema change target carries an
// Object field (and, for functions/aggregates, an Arguments list) on the wire.
func (m *SchemaChangeEvent) requiresArguments() bool {
	return m.Target == primitive.SchemaChangeTargetAggregate || m.Target == primitive.SchemaChangeTargetFunction
}

// STATUS CHANGE EVENT

// StatusChangeEvent is a response sent when a node status change event occurs.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type StatusChangeEvent struct {
	ChangeType primitive.StatusChangeType
	Address    *primitive.Inet
}

func (m *StatusChangeEvent) IsResponse() bool {
	return true
}

func (m *StatusChangeEvent) GetOpCode() primitive.OpCode {
	return primitive.OpCodeEvent
}

func (m *StatusChangeEvent) GetEventType() primitive.EventType {
	return primitive.EventTypeStatusChange
}

func (m *StatusChangeEvent) String() string {
	return fmt.Sprintf("EVENT STATUS CHANGE (type=%v address=%v)", m.ChangeType, m.Address)
}

func (m *StatusChangeEvent) Clone() Message {
	return &StatusChangeEvent{
		ChangeType: m.ChangeType,
		Address:    primitive.CloneInet(m.Address),
	}
}

// TOPOLOGY CHANGE EVENT

// TopologyChangeEvent is a response sent when a topology change event occurs.
// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=github.com/coldspire/cqlwire/message.Message
type TopologyChangeEvent struct {
	ChangeType primitive.TopologyChangeType
	Address    *primitive.Inet
}

func (m *TopologyChangeEvent) IsResponse() bool {
	return true
}

func (m *TopologyChangeEvent) GetOpCode() primitive.OpCode {
	return primitive.OpCodeEvent
}

func (m *TopologyChangeEvent) GetEventType() primitive.EventType {
	return primitive.EventTypeTopologyChange
}

func (m *TopologyChangeEvent) String() string {
	return fmt.Sprintf("EVENT TOPOLOGY CHANGE (type=%v address=%v)", m.ChangeType, m.Address)
}

func (m *TopologyChangeEvent) Clone() Message {
	return &TopologyChangeEvent{
		ChangeType: m.ChangeType,
		Address:    primitive.CloneInet(m.Address),
	}
}

// EVENT CODEC
//
// All three event shapes are fixed on a v4 wire (the pre-v3 SchemaChange layout and
// the v5 "keyspace implies target" inference are both out of scope), so encode/decode
// here follow one layout per event type rather than branching on protocol version.

type eventCodec struct{}

func (c *eventCodec) encodeSchemaChange(sce *SchemaChangeEvent, dest io.Writer, version primitive.ProtocolVersion) error {
	if err := primitive.CheckValidSchemaChangeType(sce.ChangeType); err != nil {
		return err
	}
	if err := primitive.WriteString(string(sce.ChangeType), dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeEvent.ChangeType: %w", err)
	}
	if err := primitive.CheckValidSchemaChangeTarget(sce.Target, version); err != nil {
		return err
	}
	if err := primitive.WriteString(string(sce.Target), dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeEvent.Target: %w", err)
	}
	if sce.Keyspace == "" {
		return fmt.Errorf("EVENT SchemaChange: cannot write empty keyspace")
	}
	if err := primitive.WriteString(sce.Keyspace, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeEvent.Keyspace: %w", err)
	}
	if sce.Target == primitive.SchemaChangeTargetKeyspace {
		return nil
	}
	if sce.Object == "" {
		return fmt.Errorf("EVENT SchemaChange: cannot write empty object")
	}
	if err := primitive.WriteString(sce.Object, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeEvent.Object: %w", err)
	}
	if !sce.requiresArguments() {
		return nil
	}
	if err := primitive.WriteStringList(sce.Arguments, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeEvent.Arguments: %w", err)
	}
	return nil
}

func (c *eventCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	event, ok := msg.(Event)
	if !ok {
		return fmt.Errorf("expected message.Event, got %T", msg)
	}
	if err := primitive.CheckValidEventType(event.GetEventType()); err != nil {
		return err
	}
	if err := primitive.WriteString(string(event.GetEventType()), dest); err != nil {
		return fmt.Errorf("cannot write EVENT type: %w", err)
	}
	switch event.GetEventType() {
	case primitive.EventTypeSchemaChange:
		sce, ok := msg.(*SchemaChangeEvent)
		if !ok {
			return unexpectedMessageType(sce, msg)
		}
		return c.encodeSchemaChange(sce, dest, version)
	case primitive.EventTypeStatusChange:
		sce, ok := msg.(*StatusChangeEvent)
		if !ok {
			return unexpectedMessageType(sce, msg)
		}
		if err := primitive.CheckValidStatusChangeType(sce.ChangeType); err != nil {
			return err
		}
		if err := primitive.WriteString(string(sce.ChangeType), dest); err != nil {
			return fmt.Errorf("cannot write StatusChangeEvent.ChangeType: %w", err)
		}
		if err := primitive.WriteInet(sce.Address, dest); err != nil {
			return fmt.Errorf("cannot write StatusChangeEvent.Address: %w", err)
		}
		return nil
	case primitive.EventTypeTopologyChange:
		tce, ok := msg.(*TopologyChangeEvent)
		if !ok {
			return unexpectedMessageType(tce, msg)
		}
		if err := primitive.CheckValidTopologyChangeType(tce.ChangeType, version); err != nil {
			return err
		}
		if err := primitive.WriteString(string(tce.ChangeType), dest); err != nil {
			return fmt.Errorf("cannot write TopologyChangeEvent.ChangeType: %w", err)
		}
		if err := primitive.WriteInet(tce.Address, dest); err != nil {
			return fmt.Errorf("cannot write TopologyChangeEvent.Address: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown EVENT type: %v", event.GetEventType())
}

func (c *eventCodec) lengthOfSchemaChange(sce *SchemaChangeEvent, version primitive.ProtocolVersion) (int, error) {
	if err := primitive.CheckValidSchemaChangeTarget(sce.Target, version); err != nil {
		return -1, err
	}
	length := primitive.LengthOfString(string(sce.ChangeType))
	length += primitive.LengthOfString(string(sce.Target))
	length += primitive.LengthOfString(sce.Keyspace)
	if sce.Target == primitive.SchemaChangeTargetKeyspace {
		return length, nil
	}
	length += primitive.LengthOfString(sce.Object)
	if sce.requiresArguments() {
		length += primitive.LengthOfStringList(sce.Arguments)
	}
	return length, nil
}

func (c *eventCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	event, ok := msg.(Event)
	if !ok {
		return -1, fmt.Errorf("expected message.Event, got %T", msg)
	}
	head := primitive.LengthOfString(string(event.GetEventType()))
	switch event.GetEventType() {
	case primitive.EventTypeSchemaChange:
		sce, ok := msg.(*SchemaChangeEvent)
		if !ok {
			return -1, unexpectedMessageType(sce, msg)
		}
		body, err := c.lengthOfSchemaChange(sce, version)
		if err != nil {
			return -1, err
		}
		return head + body, nil
	case primitive.EventTypeStatusChange:
		sce, ok := msg.(*StatusChangeEvent)
		if !ok {
			return -1, unexpectedMessageType(sce, msg)
		}
		inetLength, err := primitive.LengthOfInet(sce.Address)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of StatusChangeEvent.Address: %w", err)
		}
		return head + primitive.LengthOfString(string(sce.ChangeType)) + inetLength, nil
	case primitive.EventTypeTopologyChange:
		tce, ok := msg.(*TopologyChangeEvent)
		if !ok {
			return -1, unexpectedMessageType(tce, msg)
		}
		inetLength, err := primitive.LengthOfInet(tce.Address)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of TopologyChangeEvent.Address: %w", err)
		}
		return head + primitive.LengthOfString(string(tce.ChangeType)) + inetLength, nil
	}
	return -1, fmt.Errorf("unknown EVENT type: %v", event.GetEventType())
}

func (c *eventCodec) decodeSchemaChange(source io.Reader) (*SchemaChangeEvent, error) {
	sce := &SchemaChangeEvent{}
	changeType, err := primitive.ReadString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeEvent.ChangeType: %w", err)
	}
	sce.ChangeType = primitive.SchemaChangeType(changeType)
	target, err := primitive.ReadString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeEvent.Target: %w", err)
	}
	sce.Target = primitive.SchemaChangeTarget(target)
	if sce.Keyspace, err = primitive.ReadString(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeEvent.Keyspace: %w", err)
	}
	if sce.Target == primitive.SchemaChangeTargetKeyspace {
		return sce, nil
	}
	if sce.Object, err = primitive.ReadString(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeEvent.Object: %w", err)
	}
	if !sce.requiresArguments() {
		return sce, nil
	}
	if sce.Arguments, err = primitive.ReadStringList(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeEvent.Arguments: %w", err)
	}
	return sce, nil
}

func (c *eventCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	eventType, err := primitive.ReadString(source)
	if err != nil {
		return nil, err
	}
	switch primitive.EventType(eventType) {
	case primitive.EventTypeSchemaChange:
		sce, err := c.decodeSchemaChange(source)
		if err != nil {
			return nil, err
		}
		if err := primitive.CheckValidSchemaChangeTarget(sce.Target, version); err != nil {
			return nil, err
		}
		return sce, nil
	case primitive.EventTypeStatusChange:
		sce := &StatusChangeEvent{}
		changeType, err := primitive.ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read StatusChangeEvent.ChangeType: %w", err)
		}
		sce.ChangeType = primitive.StatusChangeType(changeType)
		if sce.Address, err = primitive.ReadInet(source); err != nil {
			return nil, fmt.Errorf("cannot read StatusChangeEvent.Address: %w", err)
		}
		return sce, nil
	case primitive.EventTypeTopologyChange:
		tce := &TopologyChangeEvent{}
		changeType, err := primitive.ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read TopologyChangeEvent.ChangeType: %w", err)
		}
		tce.ChangeType = primitive.TopologyChangeType(changeType)
		if tce.Address, err = primitive.ReadInet(source); err != nil {
			return nil, fmt.Errorf("cannot read TopologyChangeEvent.Address: %w", err)
		}
		return tce, nil
	}
	return nil, fmt.Errorf("unknown EVENT type: %v", eventType)
}

func (c *eventCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeEvent
}

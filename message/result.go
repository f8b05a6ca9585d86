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

type Result interface {
	Message
	GetResultType() primitive.ResultType
}

// VOID

type VoidResult struct{}

func (m *VoidResult) IsResponse() bool {
	return true
}

func (m *VoidResult) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *VoidResult) GetResultType() primitive.ResultType {
	return primitive.ResultTypeVoid
}

func (m *VoidResult) Clone() Message {
	return &VoidResult{}
}

func (m *VoidResult) String() string {
	return "RESULT VOID"
}

// SET KEYSPACE

type SetKeyspaceResult struct {
	Keyspace string
}

func (m *SetKeyspaceResult) IsResponse() bool {
	return true
}

func (m *SetKeyspaceResult) Clone() Message {
	return &SetKeyspaceResult{
		Keyspace: m.Keyspace,
	}
}

func (m *SetKeyspaceResult) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *SetKeyspaceResult) GetResultType() primitive.ResultType {
	return primitive.ResultTypeSetKeyspace
}

func (m *SetKeyspaceResult) String() string {
	return "RESULT SET KEYSPACE " + m.Keyspace
}

// SCHEMA CHANGE

// Note: this struct is identical to SchemaChangeEvent.
type SchemaChangeResult struct {
	// The schema change type.
	ChangeType primitive.SchemaChangeType
	// The schema change target, that is, the kind of schema object affected by the change.
	Target primitive.SchemaChangeTarget
	// The name of the keyspace affected by the change.
	Keyspace string
	// If the schema object affected by the change is not the keyspace itself, this field contains its name. Otherwise,
	// this field is irrelevant.
	Object string
	// If the schema object affected by the change is a function or an aggregate, this field contains its arguments.
	// Otherwise, this field is irrelevant.
	Arguments []string
}

func (m *SchemaChangeResult) requiresArguments() bool {
	return m.Target == primitive.SchemaChangeTargetAggregate || m.Target == primitive.SchemaChangeTargetFunction
}

func (m *SchemaChangeResult) IsResponse() bool {
	return true
}

func (m *SchemaChangeResult) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *SchemaChangeResult) Clone() Message {
	return &SchemaChangeResult{
		ChangeType: m.ChangeType,
		Target:     m.Target,
		Keyspace:   m.Keyspace,
		Object:     m.Object,
		Arguments:  primitive.CloneStringSlice(m.Arguments),
	}
}

func (m *SchemaChangeResult) GetResultType() primitive.ResultType {
	return primitive.ResultTypeSchemaChange
}

func (m *SchemaChangeResult) String() string {
	return fmt.Sprintf("RESULT SCHEMA CHANGE (type=%v target=%v keyspace=%v object=%v args=%v)",
		m.ChangeType,
		m.Target,
		m.Keyspace,
		m.Object,
		m.Arguments)
}

// PREPARED

type PreparedResult struct {
	PreparedQueryId []byte
	// The result set metadata id; only meaningful once the server supports result
	// metadata ids (protocol v5 / DSE v2). See Execute.
	ResultMetadataId []byte
	// Reflects the prepared statement's bound variables, if any, or empty (but not nil) if there are no bound variables.
	VariablesMetadata *VariablesMetadata
	// When the prepared statement is a SELECT, reflects the result set columns; empty (but not nil) otherwise.
	ResultMetadata *RowsMetadata
}

func (m *PreparedResult) IsResponse() bool {
	return true
}

func (m *PreparedResult) Clone() Message {
	return &PreparedResult{
		PreparedQueryId:   primitive.CloneByteSlice(m.PreparedQueryId),
		ResultMetadataId:  primitive.CloneByteSlice(m.ResultMetadataId),
		VariablesMetadata: cloneVariablesMetadata(m.VariablesMetadata),
		ResultMetadata:    cloneRowsMetadata(m.ResultMetadata),
	}
}

func (m *PreparedResult) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *PreparedResult) GetResultType() primitive.ResultType {
	return primitive.ResultTypePrepared
}

func (m *PreparedResult) String() string {
	return fmt.Sprintf("RESULT PREPARED (%v)", m.PreparedQueryId)
}

// ROWS

type Column = []byte

type Row = []Column

type RowSet = []Row

type RowsResult struct {
	Metadata *RowsMetadata
	Data     RowSet
}

func (m *RowsResult) IsResponse() bool {
	return true
}

func (m *RowsResult) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *RowsResult) Clone() Message {
	return &RowsResult{
		Metadata: cloneRowsMetadata(m.Metadata),
		Data:     cloneRowSet(m.Data),
	}
}

func (m *RowsResult) GetResultType() primitive.ResultType {
	return primitive.ResultTypeRows
}

func (m *RowsResult) String() string {
	return fmt.Sprintf("RESULT ROWS (%v rows x %v cols)", len(m.Data), m.Metadata.ColumnCount)
}

// CODEC
//
// hasResultMetadataId is always false on a v4 wire: the prepared-statement result
// metadata id is a v5/DSE-v2 addition this client never negotiates.

type resultCodec struct{}

func hasResultMetadataId(_ primitive.ProtocolVersion) bool {
	return false
}

func (c *resultCodec) encodeSchemaChange(sce *SchemaChangeResult, dest io.Writer, version primitive.ProtocolVersion) error {
	if err := primitive.CheckValidSchemaChangeType(sce.ChangeType); err != nil {
		return err
	}
	if err := primitive.WriteString(string(sce.ChangeType), dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeResult.ChangeType: %w", err)
	}
	if err := primitive.CheckValidSchemaChangeTarget(sce.Target, version); err != nil {
		return err
	}
	if err := primitive.WriteString(string(sce.Target), dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeResult.Target: %w", err)
	}
	if sce.Keyspace == "" {
		return errors.New("RESULT SchemaChange: cannot write empty keyspace")
	}
	if err := primitive.WriteString(sce.Keyspace, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeResult.Keyspace: %w", err)
	}
	if sce.Target == primitive.SchemaChangeTargetKeyspace {
		return nil
	}
	if sce.Object == "" {
		return errors.New("RESULT SchemaChange: cannot write empty object")
	}
	if err := primitive.WriteString(sce.Object, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeResult.Object: %w", err)
	}
	if !sce.requiresArguments() {
		return nil
	}
	if err := primitive.WriteStringList(sce.Arguments, dest); err != nil {
		return fmt.Errorf("cannot write SchemaChangeResult.Arguments: %w", err)
	}
	return nil
}

func (c *resultCodec) encodePrepared(p *PreparedResult, dest io.Writer, version primitive.ProtocolVersion) error {
	if len(p.PreparedQueryId) == 0 {
		return errors.New("cannot write empty RESULT Prepared query id")
	}
	if err := primitive.WriteShortBytes(p.PreparedQueryId, dest); err != nil {
		return fmt.Errorf("cannot write RESULT Prepared prepared query id: %w", err)
	}
	if hasResultMetadataId(version) {
		if len(p.ResultMetadataId) == 0 {
			return errors.New("cannot write empty RESULT Prepared result metadata id")
		}
		if err := primitive.WriteShortBytes(p.ResultMetadataId, dest); err != nil {
			return fmt.Errorf("cannot write RESULT Prepared result metadata id: %w", err)
		}
	}
	if err := encodeVariablesMetadata(p.VariablesMetadata, dest, version); err != nil {
		return fmt.Errorf("cannot write RESULT Prepared variables metadata: %w", err)
	}
	if err := encodeRowsMetadata(p.ResultMetadata, dest, version); err != nil {
		return fmt.Errorf("cannot write RESULT Prepared result metadata: %w", err)
	}
	return nil
}

func (c *resultCodec) encodeRows(rows *RowsResult, dest io.Writer, version primitive.ProtocolVersion) error {
	if err := encodeRowsMetadata(rows.Metadata, dest, version); err != nil {
		return fmt.Errorf("cannot write RESULT Rows metadata: %w", err)
	}
	if err := primitive.WriteInt(int32(len(rows.Data)), dest); err != nil {
		return fmt.Errorf("cannot write RESULT Rows data length: %w", err)
	}
	for i, row := range rows.Data {
		for j, col := range row {
			if err := primitive.WriteBytes(col, dest); err != nil {
				return fmt.Errorf("cannot write RESULT Rows data row %d col %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (c *resultCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	result, ok := msg.(Result)
	if !ok {
		return fmt.Errorf("expected message.Result, got %T", msg)
	}
	if err := primitive.CheckValidResultType(result.GetResultType()); err != nil {
		return err
	}
	if err := primitive.WriteInt(int32(result.GetResultType()), dest); err != nil {
		return fmt.Errorf("cannot write RESULT type: %w", err)
	}
	switch result.GetResultType() {
	case primitive.ResultTypeVoid:
		return nil
	case primitive.ResultTypeSetKeyspace:
		sk, ok := result.(*SetKeyspaceResult)
		if !ok {
			return unexpectedMessageType(sk, msg)
		}
		if sk.Keyspace == "" {
			return errors.New("RESULT SetKeyspace: cannot write empty keyspace")
		}
		if err := primitive.WriteString(sk.Keyspace, dest); err != nil {
			return fmt.Errorf("cannot write RESULT SET KEYSPACE keyspace: %w", err)
		}
		return nil
	case primitive.ResultTypeSchemaChange:
		sce, ok := msg.(*SchemaChangeResult)
		if !ok {
			return unexpectedMessageType(sce, msg)
		}
		return c.encodeSchemaChange(sce, dest, version)
	case primitive.ResultTypePrepared:
		p, ok := msg.(*PreparedResult)
		if !ok {
			return unexpectedMessageType(p, msg)
		}
		return c.encodePrepared(p, dest, version)
	case primitive.ResultTypeRows:
		rows, ok := msg.(*RowsResult)
		if !ok {
			return unexpectedMessageType(rows, msg)
		}
		return c.encodeRows(rows, dest, version)
	}
	return fmt.Errorf("unknown RESULT type: %v", result.GetResultType())
}

func (c *resultCodec) lengthOfSchemaChange(sc *SchemaChangeResult, version primitive.ProtocolVersion) (int, error) {
	if err := primitive.CheckValidSchemaChangeTarget(sc.Target, version); err != nil {
		return -1, err
	}
	length := primitive.LengthOfString(string(sc.ChangeType))
	length += primitive.LengthOfString(string(sc.Target))
	length += primitive.LengthOfString(sc.Keyspace)
	if sc.Target == primitive.SchemaChangeTargetKeyspace {
		return length, nil
	}
	length += primitive.LengthOfString(sc.Object)
	if sc.requiresArguments() {
		length += primitive.LengthOfStringList(sc.Arguments)
	}
	return length, nil
}

func (c *resultCodec) lengthOfPrepared(p *PreparedResult, version primitive.ProtocolVersion) (int, error) {
	length := primitive.LengthOfShortBytes(p.PreparedQueryId)
	if hasResultMetadataId(version) {
		length += primitive.LengthOfShortBytes(p.ResultMetadataId)
	}
	variablesLength, err := lengthOfVariablesMetadata(p.VariablesMetadata, version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute length of RESULT Prepared variables metadata: %w", err)
	}
	resultLength, err := lengthOfRowsMetadata(p.ResultMetadata, version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute length of RESULT Prepared result metadata: %w", err)
	}
	return length + variablesLength + resultLength, nil
}

func (c *resultCodec) lengthOfRows(rows *RowsResult, version primitive.ProtocolVersion) (int, error) {
	if rows.Metadata == nil {
		return -1, errors.New("cannot compute length of nil RESULT Rows metadata")
	}
	length, err := lengthOfRowsMetadata(rows.Metadata, version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute length of RESULT Rows metadata: %w", err)
	}
	length += primitive.LengthOfInt // number of rows
	for _, row := range rows.Data {
		for _, col := range row {
			length += primitive.LengthOfBytes(col)
		}
	}
	return length, nil
}

func (c *resultCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	result, ok := msg.(Result)
	if !ok {
		return -1, fmt.Errorf("expected interface Result, got %T", msg)
	}
	head := primitive.LengthOfInt
	switch result.GetResultType() {
	case primitive.ResultTypeVoid:
		return head, nil
	case primitive.ResultTypeSetKeyspace:
		sk, ok := result.(*SetKeyspaceResult)
		if !ok {
			return -1, unexpectedMessageType(sk, result)
		}
		return head + primitive.LengthOfString(sk.Keyspace), nil
	case primitive.ResultTypeSchemaChange:
		sc, ok := msg.(*SchemaChangeResult)
		if !ok {
			return -1, unexpectedMessageType(sc, msg)
		}
		body, err := c.lengthOfSchemaChange(sc, version)
		if err != nil {
			return -1, err
		}
		return head + body, nil
	case primitive.ResultTypePrepared:
		p, ok := msg.(*PreparedResult)
		if !ok {
			return -1, unexpectedMessageType(p, msg)
		}
		body, err := c.lengthOfPrepared(p, version)
		if err != nil {
			return -1, err
		}
		return head + body, nil
	case primitive.ResultTypeRows:
		rows, ok := msg.(*RowsResult)
		if !ok {
			return -1, unexpectedMessageType(rows, msg)
		}
		body, err := c.lengthOfRows(rows, version)
		if err != nil {
			return -1, err
		}
		return head + body, nil
	}
	return -1, fmt.Errorf("unknown RESULT type: %v", result.GetResultType())
}

func (c *resultCodec) decodeSchemaChange(source io.Reader) (*SchemaChangeResult, error) {
	sc := &SchemaChangeResult{}
	changeType, err := primitive.ReadString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeResult.ChangeType: %w", err)
	}
	sc.ChangeType = primitive.SchemaChangeType(changeType)
	target, err := primitive.ReadString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeResult.Target: %w", err)
	}
	sc.Target = primitive.SchemaChangeTarget(target)
	if sc.Keyspace, err = primitive.ReadString(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeResult.Keyspace: %w", err)
	}
	if sc.Target == primitive.SchemaChangeTargetKeyspace {
		return sc, nil
	}
	if sc.Object, err = primitive.ReadString(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeResult.Object: %w", err)
	}
	if !sc.requiresArguments() {
		return sc, nil
	}
	if sc.Arguments, err = primitive.ReadStringList(source); err != nil {
		return nil, fmt.Errorf("cannot read SchemaChangeResult.Arguments: %w", err)
	}
	return sc, nil
}

func (c *resultCodec) decodePrepared(source io.Reader, version primitive.ProtocolVersion) (*PreparedResult, error) {
	p := &PreparedResult{}
	var err error
	if p.PreparedQueryId, err = primitive.ReadShortBytes(source); err != nil {
		return nil, fmt.Errorf("cannot read RESULT Prepared prepared query id: %w", err)
	}
	if hasResultMetadataId(version) {
		if p.ResultMetadataId, err = primitive.ReadShortBytes(source); err != nil {
			return nil, fmt.Errorf("cannot read RESULT Prepared result metadata id: %w", err)
		}
	}
	if p.VariablesMetadata, err = decodeVariablesMetadata(source, version); err != nil {
		return nil, fmt.Errorf("cannot read RESULT Prepared variables metadata: %w", err)
	}
	if p.ResultMetadata, err = decodeRowsMetadata(source, version); err != nil {
		return nil, fmt.Errorf("cannot read RESULT Prepared result metadata: %w", err)
	}
	return p, nil
}

func (c *resultCodec) decodeRows(source io.Reader, version primitive.ProtocolVersion) (*RowsResult, error) {
	rows := &RowsResult{}
	var err error
	if rows.Metadata, err = decodeRowsMetadata(source, version); err != nil {
		return nil, fmt.Errorf("cannot read RESULT Rows metadata: %w", err)
	}
	rowsCount, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read RESULT Rows data length: %w", err)
	}
	rows.Data = make(RowSet, rowsCount)
	for i := 0; i < int(rowsCount); i++ {
		rows.Data[i] = make(Row, rows.Metadata.ColumnCount)
		for j := 0; j < int(rows.Metadata.ColumnCount); j++ {
			if rows.Data[i][j], err = primitive.ReadBytes(source); err != nil {
				return nil, fmt.Errorf("cannot read RESULT Rows data row %d col %d: %w", i, j, err)
			}
		}
	}
	return rows, nil
}

func (c *resultCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	resultType, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read RESULT type: %w", err)
	}
	switch primitive.ResultType(resultType) {
	case primitive.ResultTypeVoid:
		return &VoidResult{}, nil
	case primitive.ResultTypeSetKeyspace:
		setKeyspace := &SetKeyspaceResult{}
		if setKeyspace.Keyspace, err = primitive.ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read RESULT SetKeyspaceResult.Keyspace: %w", err)
		}
		return setKeyspace, nil
	case primitive.ResultTypeSchemaChange:
		return c.decodeSchemaChange(source)
	case primitive.ResultTypePrepared:
		return c.decodePrepared(source, version)
	case primitive.ResultTypeRows:
		return c.decodeRows(source, version)
	}
	return nil, fmt.Errorf("unknown RESULT type: %v", resultType)
}

func (c *resultCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func cloneRowSet(o RowSet) RowSet {
	if o == nil {
		return nil
	}
	newRowSet := make(RowSet, len(o))
	for idx, v := range o {
		newRowSet[idx] = cloneRow(v)
	}
	return newRowSet
}

func cloneRow(o Row) Row {
	if o == nil {
		return nil
	}
	newRow := make(Row, len(o))
	for idx, v := range o {
		newRow[idx] = primitive.CloneByteSlice(v)
	}
	return newRow
}

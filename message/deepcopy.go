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

import "github.com/coldspire/cqlwire/primitive"

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ServerError) DeepCopyInto(out *ServerError) {
	*out = *in
}

// DeepCopy copies the receiver, creating a new ServerError.
func (in *ServerError) DeepCopy() *ServerError {
	if in == nil {
		return nil
	}
	out := new(ServerError)
	in.DeepCopyInto(out)
	return out
}

func (in *ProtocolError) DeepCopyInto(out *ProtocolError) {
	*out = *in
}

func (in *ProtocolError) DeepCopy() *ProtocolError {
	if in == nil {
		return nil
	}
	out := new(ProtocolError)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthenticationError) DeepCopyInto(out *AuthenticationError) {
	*out = *in
}

func (in *AuthenticationError) DeepCopy() *AuthenticationError {
	if in == nil {
		return nil
	}
	out := new(AuthenticationError)
	in.DeepCopyInto(out)
	return out
}

func (in *Overloaded) DeepCopyInto(out *Overloaded) {
	*out = *in
}

func (in *Overloaded) DeepCopy() *Overloaded {
	if in == nil {
		return nil
	}
	out := new(Overloaded)
	in.DeepCopyInto(out)
	return out
}

func (in *IsBootstrapping) DeepCopyInto(out *IsBootstrapping) {
	*out = *in
}

func (in *IsBootstrapping) DeepCopy() *IsBootstrapping {
	if in == nil {
		return nil
	}
	out := new(IsBootstrapping)
	in.DeepCopyInto(out)
	return out
}

func (in *TruncateError) DeepCopyInto(out *TruncateError) {
	*out = *in
}

func (in *TruncateError) DeepCopy() *TruncateError {
	if in == nil {
		return nil
	}
	out := new(TruncateError)
	in.DeepCopyInto(out)
	return out
}

func (in *SyntaxError) DeepCopyInto(out *SyntaxError) {
	*out = *in
}

func (in *SyntaxError) DeepCopy() *SyntaxError {
	if in == nil {
		return nil
	}
	out := new(SyntaxError)
	in.DeepCopyInto(out)
	return out
}

func (in *Unauthorized) DeepCopyInto(out *Unauthorized) {
	*out = *in
}

func (in *Unauthorized) DeepCopy() *Unauthorized {
	if in == nil {
		return nil
	}
	out := new(Unauthorized)
	in.DeepCopyInto(out)
	return out
}

func (in *Invalid) DeepCopyInto(out *Invalid) {
	*out = *in
}

func (in *Invalid) DeepCopy() *Invalid {
	if in == nil {
		return nil
	}
	out := new(Invalid)
	in.DeepCopyInto(out)
	return out
}

func (in *ConfigError) DeepCopyInto(out *ConfigError) {
	*out = *in
}

func (in *ConfigError) DeepCopy() *ConfigError {
	if in == nil {
		return nil
	}
	out := new(ConfigError)
	in.DeepCopyInto(out)
	return out
}

func (in *Unavailable) DeepCopyInto(out *Unavailable) {
	*out = *in
}

func (in *Unavailable) DeepCopy() *Unavailable {
	if in == nil {
		return nil
	}
	out := new(Unavailable)
	in.DeepCopyInto(out)
	return out
}

func (in *ReadTimeout) DeepCopyInto(out *ReadTimeout) {
	*out = *in
}

func (in *ReadTimeout) DeepCopy() *ReadTimeout {
	if in == nil {
		return nil
	}
	out := new(ReadTimeout)
	in.DeepCopyInto(out)
	return out
}

func (in *WriteTimeout) DeepCopyInto(out *WriteTimeout) {
	*out = *in
}

func (in *WriteTimeout) DeepCopy() *WriteTimeout {
	if in == nil {
		return nil
	}
	out := new(WriteTimeout)
	in.DeepCopyInto(out)
	return out
}

func (in *ReadFailure) DeepCopyInto(out *ReadFailure) {
	*out = *in
	if in.FailureReasons != nil {
		in, out := &in.FailureReasons, &out.FailureReasons
		*out = make([]*primitive.FailureReason, len(*in))
		for i := range *in {
			if (*in)[i] != nil {
				reason := *(*in)[i]
				(*out)[i] = &reason
			}
		}
	}
}

func (in *ReadFailure) DeepCopy() *ReadFailure {
	if in == nil {
		return nil
	}
	out := new(ReadFailure)
	in.DeepCopyInto(out)
	return out
}

func (in *WriteFailure) DeepCopyInto(out *WriteFailure) {
	*out = *in
	if in.FailureReasons != nil {
		in, out := &in.FailureReasons, &out.FailureReasons
		*out = make([]*primitive.FailureReason, len(*in))
		for i := range *in {
			if (*in)[i] != nil {
				reason := *(*in)[i]
				(*out)[i] = &reason
			}
		}
	}
}

func (in *WriteFailure) DeepCopy() *WriteFailure {
	if in == nil {
		return nil
	}
	out := new(WriteFailure)
	in.DeepCopyInto(out)
	return out
}

func (in *FunctionFailure) DeepCopyInto(out *FunctionFailure) {
	*out = *in
	if in.Arguments != nil {
		in, out := &in.Arguments, &out.Arguments
		*out = make([]string, len(*in))
		copy(*out, *in)
	}
}

func (in *FunctionFailure) DeepCopy() *FunctionFailure {
	if in == nil {
		return nil
	}
	out := new(FunctionFailure)
	in.DeepCopyInto(out)
	return out
}

func (in *Unprepared) DeepCopyInto(out *Unprepared) {
	*out = *in
	if in.Id != nil {
		in, out := &in.Id, &out.Id
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
}

func (in *Unprepared) DeepCopy() *Unprepared {
	if in == nil {
		return nil
	}
	out := new(Unprepared)
	in.DeepCopyInto(out)
	return out
}

func (in *AlreadyExists) DeepCopyInto(out *AlreadyExists) {
	*out = *in
}

func (in *AlreadyExists) DeepCopy() *AlreadyExists {
	if in == nil {
		return nil
	}
	out := new(AlreadyExists)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthResponse) DeepCopyInto(out *AuthResponse) {
	*out = *in
	if in.Token != nil {
		in, out := &in.Token, &out.Token
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
}

func (in *AuthResponse) DeepCopy() *AuthResponse {
	if in == nil {
		return nil
	}
	out := new(AuthResponse)
	in.DeepCopyInto(out)
	return out
}

func (in *Prepare) DeepCopyInto(out *Prepare) {
	*out = *in
}

func (in *Prepare) DeepCopy() *Prepare {
	if in == nil {
		return nil
	}
	out := new(Prepare)
	in.DeepCopyInto(out)
	return out
}

func (in *Register) DeepCopyInto(out *Register) {
	*out = *in
	if in.EventTypes != nil {
		in, out := &in.EventTypes, &out.EventTypes
		*out = make([]primitive.EventType, len(*in))
		copy(*out, *in)
	}
}

func (in *Register) DeepCopy() *Register {
	if in == nil {
		return nil
	}
	out := new(Register)
	in.DeepCopyInto(out)
	return out
}

func (in *ColumnMetadata) DeepCopyInto(out *ColumnMetadata) {
	*out = *in
	if in.Type != nil {
		out.Type = in.Type.Clone()
	}
}

func (in *ColumnMetadata) DeepCopy() *ColumnMetadata {
	if in == nil {
		return nil
	}
	out := new(ColumnMetadata)
	in.DeepCopyInto(out)
	return out
}

func deepCopyColumns(in []*ColumnMetadata) []*ColumnMetadata {
	if in == nil {
		return nil
	}
	out := make([]*ColumnMetadata, len(in))
	for i := range in {
		out[i] = in[i].DeepCopy()
	}
	return out
}

func (in *RowsMetadata) DeepCopyInto(out *RowsMetadata) {
	*out = *in
	if in.PagingState != nil {
		in, out := &in.PagingState, &out.PagingState
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
	if in.NewResultMetadataId != nil {
		in, out := &in.NewResultMetadataId, &out.NewResultMetadataId
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
	out.Columns = deepCopyColumns(in.Columns)
}

func (in *RowsMetadata) DeepCopy() *RowsMetadata {
	if in == nil {
		return nil
	}
	out := new(RowsMetadata)
	in.DeepCopyInto(out)
	return out
}

func (in *VariablesMetadata) DeepCopyInto(out *VariablesMetadata) {
	*out = *in
	if in.PkIndices != nil {
		in, out := &in.PkIndices, &out.PkIndices
		*out = make([]uint16, len(*in))
		copy(*out, *in)
	}
	out.Columns = deepCopyColumns(in.Columns)
}

func (in *VariablesMetadata) DeepCopy() *VariablesMetadata {
	if in == nil {
		return nil
	}
	out := new(VariablesMetadata)
	in.DeepCopyInto(out)
	return out
}

func (in *RowsResult) DeepCopyInto(out *RowsResult) {
	*out = *in
	if in.Metadata != nil {
		out.Metadata = in.Metadata.DeepCopy()
	}
	if in.Data != nil {
		out.Data = make(RowSet, len(in.Data))
		for i, row := range in.Data {
			if row == nil {
				continue
			}
			newRow := make(Row, len(row))
			for j, column := range row {
				if column != nil {
					newColumn := make(Column, len(column))
					copy(newColumn, column)
					newRow[j] = newColumn
				}
			}
			out.Data[i] = newRow
		}
	}
}

func (in *RowsResult) DeepCopy() *RowsResult {
	if in == nil {
		return nil
	}
	out := new(RowsResult)
	in.DeepCopyInto(out)
	return out
}

func (in *PreparedResult) DeepCopyInto(out *PreparedResult) {
	*out = *in
	if in.PreparedQueryId != nil {
		in, out := &in.PreparedQueryId, &out.PreparedQueryId
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
	if in.ResultMetadataId != nil {
		in, out := &in.ResultMetadataId, &out.ResultMetadataId
		*out = make([]byte, len(*in))
		copy(*out, *in)
	}
	if in.VariablesMetadata != nil {
		out.VariablesMetadata = in.VariablesMetadata.DeepCopy()
	}
	if in.ResultMetadata != nil {
		out.ResultMetadata = in.ResultMetadata.DeepCopy()
	}
}

func (in *PreparedResult) DeepCopy() *PreparedResult {
	if in == nil {
		return nil
	}
	out := new(PreparedResult)
	in.DeepCopyInto(out)
	return out
}

// cloneRowsMetadata and cloneVariablesMetadata back the Clone() Message methods in result.go.
func cloneRowsMetadata(in *RowsMetadata) *RowsMetadata {
	return in.DeepCopy()
}

func cloneVariablesMetadata(in *VariablesMetadata) *VariablesMetadata {
	return in.DeepCopy()
}

// Clone wraps the error types' DeepCopy so they also satisfy Message's cloning convention.
func (in *ServerError) Clone() Message             { return in.DeepCopy() }
func (in *ProtocolError) Clone() Message           { return in.DeepCopy() }
func (in *AuthenticationError) Clone() Message     { return in.DeepCopy() }
func (in *Overloaded) Clone() Message              { return in.DeepCopy() }
func (in *IsBootstrapping) Clone() Message         { return in.DeepCopy() }
func (in *TruncateError) Clone() Message           { return in.DeepCopy() }
func (in *SyntaxError) Clone() Message             { return in.DeepCopy() }
func (in *Unauthorized) Clone() Message            { return in.DeepCopy() }
func (in *Invalid) Clone() Message                 { return in.DeepCopy() }
func (in *ConfigError) Clone() Message             { return in.DeepCopy() }
func (in *Unavailable) Clone() Message             { return in.DeepCopy() }
func (in *ReadTimeout) Clone() Message             { return in.DeepCopy() }
func (in *WriteTimeout) Clone() Message            { return in.DeepCopy() }
func (in *ReadFailure) Clone() Message             { return in.DeepCopy() }
func (in *WriteFailure) Clone() Message            { return in.DeepCopy() }
func (in *FunctionFailure) Clone() Message         { return in.DeepCopy() }
func (in *Unprepared) Clone() Message              { return in.DeepCopy() }
func (in *AlreadyExists) Clone() Message           { return in.DeepCopy() }
func (in *Prepare) Clone() Message                 { return in.DeepCopy() }
func (in *Register) Clone() Message                { return in.DeepCopy() }

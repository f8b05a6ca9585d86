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

package frame

import "github.com/coldspire/cqlwire/message"

// cloner is implemented by every concrete message.Message in this library; it backs Body's deep copy.
type cloner interface {
	Clone() message.Message
}

func cloneMessage(in message.Message) message.Message {
	if in == nil {
		return nil
	}
	return in.(cloner).Clone()
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *Header) DeepCopyInto(out *Header) {
	*out = *in
}

// DeepCopy copies the receiver, creating a new Header.
func (in *Header) DeepCopy() *Header {
	if in == nil {
		return nil
	}
	out := new(Header)
	in.DeepCopyInto(out)
	return out
}

func (in *Body) DeepCopyInto(out *Body) {
	*out = *in
	if in.TracingId != nil {
		tracingId := *in.TracingId
		out.TracingId = &tracingId
	}
	if in.CustomPayload != nil {
		out.CustomPayload = make(map[string][]byte, len(in.CustomPayload))
		for k, v := range in.CustomPayload {
			out.CustomPayload[k] = append([]byte(nil), v...)
		}
	}
	if in.Warnings != nil {
		out.Warnings = append([]string(nil), in.Warnings...)
	}
	out.Message = cloneMessage(in.Message)
}

func (in *Body) DeepCopy() *Body {
	if in == nil {
		return nil
	}
	out := new(Body)
	in.DeepCopyInto(out)
	return out
}

func (in *Frame) DeepCopyInto(out *Frame) {
	*out = *in
	out.Header = in.Header.DeepCopy()
	out.Body = in.Body.DeepCopy()
}

func (in *Frame) DeepCopy() *Frame {
	if in == nil {
		return nil
	}
	out := new(Frame)
	in.DeepCopyInto(out)
	return out
}

func (in *RawFrame) DeepCopyInto(out *RawFrame) {
	*out = *in
	out.Header = in.Header.DeepCopy()
	if in.Body != nil {
		out.Body = append([]byte(nil), in.Body...)
	}
}

func (in *RawFrame) DeepCopy() *RawFrame {
	if in == nil {
		return nil
	}
	out := new(RawFrame)
	in.DeepCopyInto(out)
	return out
}

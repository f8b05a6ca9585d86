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

const (
	StartupOptionCqlVersion  = "CQL_VERSION"
	StartupOptionCompression = "COMPRESSION"
)

// Startup is the request that opens the negotiation phase of a connection. CQL_VERSION is mandatory; COMPRESSION is
// present only once a compression algorithm has been chosen.
type Startup struct {
	Options map[string]string
}

// NewStartup returns a Startup carrying the mandatory CQL_VERSION option plus any additional key/value option pairs
// passed in keyValues (e.g. NewStartup(StartupOptionCompression, "LZ4")).
func NewStartup(keyValues ...string) *Startup {
	options := map[string]string{StartupOptionCqlVersion: "3.0.0"}
	for i := 0; i+1 < len(keyValues); i += 2 {
		options[keyValues[i]] = keyValues[i+1]
	}
	return &Startup{Options: options}
}

func (m *Startup) IsResponse() bool {
	return false
}

func (m *Startup) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

func (m *Startup) String() string {
	return fmt.Sprint("STARTUP ", m.Options)
}

func (m *Startup) Clone() Message {
	return &Startup{
		Options: primitive.CloneOptions(m.Options),
	}
}

type startupCodec struct{}

func (c *startupCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	startup, ok := msg.(*Startup)
	if !ok {
		return errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.WriteStringMap(startup.Options, dest)
}

func (c *startupCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	startup, ok := msg.(*Startup)
	if !ok {
		return -1, errors.New(fmt.Sprintf("expected *message.Startup, got %T", msg))
	}
	return primitive.LengthOfStringMap(startup.Options), nil
}

func (c *startupCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	options, err := primitive.ReadStringMap(source)
	if err != nil {
		return nil, err
	}
	return &Startup{Options: options}, nil
}

func (c *startupCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

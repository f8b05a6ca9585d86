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
	"fmt"
	"io"
	"net"
)

// FailureReason pairs one endpoint with the code explaining why it failed to respond,
// an element of the <reasonmap> primitive (protocol v5+): an [int] count followed by
// that many <endpoint><failurecode> pairs. It's a slice rather than a map because
// net.IP isn't a valid Go map key.
type FailureReason struct {
	Endpoint net.IP
	Code     FailureCode
}

func ReadReasonMap(source io.Reader) ([]*FailureReason, error) {
	count, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read reason map length: %w", err)
	}
	reasons := make([]*FailureReason, count)
	for i := range reasons {
		addr, err := ReadInetAddr(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read reason map key for element %d: %w", i, err)
		}
		code, err := ReadShort(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read reason map value for element %d: %w", i, err)
		}
		reasons[i] = &FailureReason{Endpoint: addr, Code: FailureCode(code)}
	}
	return reasons, nil
}

func WriteReasonMap(reasons []*FailureReason, dest io.Writer) error {
	if err := WriteInt(int32(len(reasons)), dest); err != nil {
		return fmt.Errorf("cannot write reason map length: %w", err)
	}
	for i, reason := range reasons {
		if err := WriteInetAddr(reason.Endpoint, dest); err != nil {
			return fmt.Errorf("cannot write reason map key for element %d: %w", i, err)
		}
		if err := WriteShort(uint16(reason.Code), dest); err != nil {
			return fmt.Errorf("cannot write reason map value for element %d: %w", i, err)
		}
	}
	return nil
}

func LengthOfReasonMap(reasons []*FailureReason) (int, error) {
	total := LengthOfInt
	for i, reason := range reasons {
		n, err := LengthOfInetAddr(reason.Endpoint)
		if err != nil {
			return -1, fmt.Errorf("cannot compute length of reason map key for element %d: %w", i, err)
		}
		total += n + LengthOfShort
	}
	return total, nil
}

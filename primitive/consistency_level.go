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

import "fmt"

// ConsistencyLevel corresponds to protocol section 3 [consistency] data type.
type ConsistencyLevel uint16

const (
	ConsistencyLevelAny         = ConsistencyLevel(0x0000)
	ConsistencyLevelOne         = ConsistencyLevel(0x0001)
	ConsistencyLevelTwo         = ConsistencyLevel(0x0002)
	ConsistencyLevelThree       = ConsistencyLevel(0x0003)
	ConsistencyLevelQuorum      = ConsistencyLevel(0x0004)
	ConsistencyLevelAll         = ConsistencyLevel(0x0005)
	ConsistencyLevelLocalQuorum = ConsistencyLevel(0x0006)
	ConsistencyLevelEachQuorum  = ConsistencyLevel(0x0007)
	ConsistencyLevelSerial      = ConsistencyLevel(0x0008)
	ConsistencyLevelLocalSerial = ConsistencyLevel(0x0009)
	ConsistencyLevelLocalOne    = ConsistencyLevel(0x000A)
)

func (c ConsistencyLevel) IsValid() bool {
	return oneOf(c,
		ConsistencyLevelAny, ConsistencyLevelOne, ConsistencyLevelTwo, ConsistencyLevelThree,
		ConsistencyLevelQuorum, ConsistencyLevelAll, ConsistencyLevelLocalQuorum, ConsistencyLevelEachQuorum,
		ConsistencyLevelSerial, ConsistencyLevelLocalSerial, ConsistencyLevelLocalOne,
	)
}

func (c ConsistencyLevel) IsSerial() bool {
	return oneOf(c, ConsistencyLevelSerial, ConsistencyLevelLocalSerial)
}

func (c ConsistencyLevel) IsNonSerial() bool {
	return oneOf(c,
		ConsistencyLevelAny, ConsistencyLevelOne, ConsistencyLevelTwo, ConsistencyLevelThree,
		ConsistencyLevelQuorum, ConsistencyLevelAll, ConsistencyLevelLocalQuorum,
		ConsistencyLevelEachQuorum, ConsistencyLevelLocalOne,
	)
}

func (c ConsistencyLevel) IsLocal() bool {
	return oneOf(c, ConsistencyLevelLocalQuorum, ConsistencyLevelLocalSerial, ConsistencyLevelLocalOne)
}

func (c ConsistencyLevel) IsNonLocal() bool {
	return oneOf(c,
		ConsistencyLevelAny, ConsistencyLevelOne, ConsistencyLevelTwo, ConsistencyLevelThree,
		ConsistencyLevelQuorum, ConsistencyLevelAll, ConsistencyLevelEachQuorum, ConsistencyLevelSerial,
	)
}

func (c ConsistencyLevel) String() string {
	switch c {
	case ConsistencyLevelAny:
		return "ConsistencyLevel ANY [0x0000]"
	case ConsistencyLevelOne:
		return "ConsistencyLevel ONE [0x0001]"
	case ConsistencyLevelTwo:
		return "ConsistencyLevel TWO [0x0002]"
	case ConsistencyLevelThree:
		return "ConsistencyLevel THREE [0x0003]"
	case ConsistencyLevelQuorum:
		return "ConsistencyLevel QUORUM [0x0004]"
	case ConsistencyLevelAll:
		return "ConsistencyLevel ALL [0x0005]"
	case ConsistencyLevelLocalQuorum:
		return "ConsistencyLevel LOCAL_QUORUM [0x0006]"
	case ConsistencyLevelEachQuorum:
		return "ConsistencyLevel EACH_QUORUM [0x0007]"
	case ConsistencyLevelSerial:
		return "ConsistencyLevel SERIAL [0x0008]"
	case ConsistencyLevelLocalSerial:
		return "ConsistencyLevel LOCAL_SERIAL [0x0009]"
	case ConsistencyLevelLocalOne:
		return "ConsistencyLevel LOCAL_ONE [0x000A]"
	}
	return fmt.Sprintf("ConsistencyLevel ? [%#.4X]", uint16(c))
}

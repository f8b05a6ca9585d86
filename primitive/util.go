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
)

// SupportedProtocolVersions returns a slice containing all the protocol versions supported by this library.
func SupportedProtocolVersions() []ProtocolVersion {
	return []ProtocolVersion{
		ProtocolVersion2,
		ProtocolVersion3,
		ProtocolVersion4,
		ProtocolVersion5,
		ProtocolVersionDse1,
		ProtocolVersionDse2,
	}
}

func SupportedOssProtocolVersions() []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v.IsOss() })
}

func SupportedDseProtocolVersions() []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v.IsDse() })
}

func SupportedBetaProtocolVersions() []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v.IsBeta() })
}

func SupportedNonBetaProtocolVersions() []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return !v.IsBeta() })
}

func SupportedProtocolVersionsGreaterThanOrEqualTo(version ProtocolVersion) []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v >= version })
}

func SupportedProtocolVersionsGreaterThan(version ProtocolVersion) []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v > version })
}

func SupportedProtocolVersionsLesserThanOrEqualTo(version ProtocolVersion) []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v <= version })
}

func SupportedProtocolVersionsLesserThan(version ProtocolVersion) []ProtocolVersion {
	return matchingProtocolVersions(func(v ProtocolVersion) bool { return v < version })
}

func matchingProtocolVersions(filters ...func(version ProtocolVersion) bool) []ProtocolVersion {
	var result []ProtocolVersion
	for _, v := range SupportedProtocolVersions() {
		include := true
		for _, filter := range filters {
			if !filter(v) {
				include = false
				break
			}
		}
		if include {
			result = append(result, v)
		}
	}
	return result
}

// checkValid is the shape behind every CheckValidXxx below: a bool that must hold, a noun to name
// it in the error, and the offending value to print.
func checkValid(ok bool, desc string, v interface{}) error {
	if !ok {
		return fmt.Errorf("invalid %s: %v", desc, v)
	}
	return nil
}

// checkValidForVersion is checkValid for the subset of checks that also depend on the negotiated
// protocol version (data type codes, schema change targets, topology change types, DSE revisions).
func checkValidForVersion(ok bool, desc string, version ProtocolVersion, v interface{}) error {
	if !ok {
		return fmt.Errorf("invalid %s for %v: %v", desc, version, v)
	}
	return nil
}

func CheckSupportedProtocolVersion(version ProtocolVersion) error {
	return checkValid(version.IsSupported(), "protocol version", version)
}

func CheckDseProtocolVersion(version ProtocolVersion) error {
	return checkValid(version.IsDse(), "DSE protocol version", version)
}

func CheckValidOpCode(code OpCode) error {
	return checkValid(code.IsValid(), "opcode", code)
}

func CheckRequestOpCode(code OpCode) error {
	if !code.IsRequest() {
		return fmt.Errorf("expected request opcode, but got: %v", code)
	}
	return nil
}

func CheckResponseOpCode(code OpCode) error {
	if !code.IsResponse() {
		return fmt.Errorf("expected response opcode, but got: %v", code)
	}
	return nil
}

func CheckValidConsistencyLevel(consistency ConsistencyLevel) error {
	return checkValid(consistency.IsValid(), "consistency level", consistency)
}

func CheckSerialConsistencyLevel(consistency ConsistencyLevel) error {
	return checkValid(consistency.IsSerial(), "serial consistency level", consistency)
}

func CheckValidEventType(eventType EventType) error {
	return checkValid(eventType.IsValid(), "event type", eventType)
}

func CheckValidWriteType(writeType WriteType) error {
	return checkValid(writeType.IsValid(), "write type", writeType)
}

func CheckValidBatchType(batchType BatchType) error {
	return checkValid(batchType.IsValid(), "BATCH type", batchType)
}

func CheckValidDataTypeCode(code DataTypeCode, version ProtocolVersion) error {
	return checkValidForVersion(code.IsValid() && version.SupportsDataType(code), "data type code", version, code)
}

func CheckValidSchemaChangeType(t SchemaChangeType) error {
	return checkValid(t.IsValid(), "schema change type", t)
}

func CheckValidSchemaChangeTarget(target SchemaChangeTarget, version ProtocolVersion) error {
	return checkValidForVersion(target.IsValid() && version.SupportsSchemaChangeTarget(target), "schema change target", version, target)
}

func CheckValidStatusChangeType(t StatusChangeType) error {
	return checkValid(t.IsValid(), "status change type", t)
}

func CheckValidTopologyChangeType(t TopologyChangeType, version ProtocolVersion) error {
	return checkValidForVersion(t.IsValid() && version.SupportsTopologyChangeType(t), "topology change type", version, t)
}

func CheckValidResultType(t ResultType) error {
	return checkValid(t.IsValid(), "result type", t)
}

func CheckValidDseRevisionType(t DseRevisionType, version ProtocolVersion) error {
	return checkValidForVersion(t.IsValid() && version.SupportsDseRevisionType(t), "DSE revision type", version, t)
}

func CheckValidFailureCode(c FailureCode) error {
	return checkValid(c.IsValid(), "failure code", c)
}

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

// oneOf reports whether v equals any of the given members. The wire-level enum types in this
// package (OpCode, ErrorCode, ConsistencyLevel, DataTypeCode, and the rest) each validate
// themselves against a fixed member set; this replaces the switch-per-type boilerplate that
// pattern used to require.
func oneOf[T comparable](v T, members ...T) bool {
	for _, m := range members {
		if v == m {
			return true
		}
	}
	return false
}

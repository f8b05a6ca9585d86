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

// bitFlag is any of the wire bitmask types below (HeaderFlag, QueryFlag, RowsFlag, VariablesFlag,
// PrepareFlag): an unsigned integer combined with |, &^ and & to add, remove and test flags.
type bitFlag interface {
	~uint8 | ~uint32
}

func addFlag[F bitFlag](f, other F) F {
	return f | other
}

func removeFlag[F bitFlag](f, other F) F {
	return f &^ other
}

func containsFlag[F bitFlag](f, other F) bool {
	return f&other != 0
}

type HeaderFlag uint8

const (
	HeaderFlagCompressed    = HeaderFlag(0x01)
	HeaderFlagTracing       = HeaderFlag(0x02)
	HeaderFlagCustomPayload = HeaderFlag(0x04)
	HeaderFlagWarning       = HeaderFlag(0x08)
	HeaderFlagUseBeta       = HeaderFlag(0x10)
)

func (f HeaderFlag) Add(other HeaderFlag) HeaderFlag    { return addFlag(f, other) }
func (f HeaderFlag) Remove(other HeaderFlag) HeaderFlag { return removeFlag(f, other) }
func (f HeaderFlag) Contains(other HeaderFlag) bool     { return containsFlag(f, other) }

func (f HeaderFlag) String() string {
	switch f {
	case HeaderFlagCompressed:
		return fmt.Sprintf("HeaderFlag Compressed [0x01 %#.8b]", f)
	case HeaderFlagTracing:
		return fmt.Sprintf("HeaderFlag Tracing [0x02 %#.8b]", f)
	case HeaderFlagCustomPayload:
		return fmt.Sprintf("HeaderFlag CustomPayload [0x04 %#.8b]", f)
	case HeaderFlagWarning:
		return fmt.Sprintf("HeaderFlag Warning [0x08 %#.8b]", f)
	case HeaderFlagUseBeta:
		return fmt.Sprintf("HeaderFlag UseBeta [0x10 %#.8b]", f)
	}
	return fmt.Sprintf("HeaderFlag ? [%#.2X %#.8b]", uint8(f), uint8(f))
}

// QueryFlag was encoded as [byte] in v3 and v4, but changed to [int] in v5.
type QueryFlag uint32

const (
	QueryFlagValues            = QueryFlag(0x00000001)
	QueryFlagSkipMetadata      = QueryFlag(0x00000002)
	QueryFlagPageSize          = QueryFlag(0x00000004)
	QueryFlagPagingState       = QueryFlag(0x00000008)
	QueryFlagSerialConsistency = QueryFlag(0x00000010)
	QueryFlagDefaultTimestamp  = QueryFlag(0x00000020)
	QueryFlagValueNames        = QueryFlag(0x00000040)
	QueryFlagWithKeyspace      = QueryFlag(0x00000080) // protocol v5+ and DSE v2
	QueryFlagNowInSeconds      = QueryFlag(0x00000100) // protocol v5+
)

// DSE-specific query flags
const (
	QueryFlagDsePageSizeBytes               = QueryFlag(0x40000000) // DSE v1+
	QueryFlagDseWithContinuousPagingOptions = QueryFlag(0x80000000) // DSE v1+
)

func (f QueryFlag) Add(other QueryFlag) QueryFlag    { return addFlag(f, other) }
func (f QueryFlag) Remove(other QueryFlag) QueryFlag { return removeFlag(f, other) }
func (f QueryFlag) Contains(other QueryFlag) bool    { return containsFlag(f, other) }

func (f QueryFlag) String() string {
	switch f {
	case QueryFlagValues:
		return fmt.Sprintf("QueryFlag Values [0x00000001 %#.32b]", f)
	case QueryFlagSkipMetadata:
		return fmt.Sprintf("QueryFlag SkipMetadata [0x00000002 %#.32b]", f)
	case QueryFlagPageSize:
		return fmt.Sprintf("QueryFlag PageSize [0x00000004 %#.32b]", f)
	case QueryFlagPagingState:
		return fmt.Sprintf("QueryFlag PagingState [0x00000008 %#.32b]", f)
	case QueryFlagSerialConsistency:
		return fmt.Sprintf("QueryFlag SerialConsistency [0x00000010 %#.32b]", f)
	case QueryFlagDefaultTimestamp:
		return fmt.Sprintf("QueryFlag DefaultTimestamp [0x00000020 %#.32b]", f)
	case QueryFlagValueNames:
		return fmt.Sprintf("QueryFlag ValueNames [0x00000040 %#.32b]", f)
	case QueryFlagWithKeyspace:
		return fmt.Sprintf("QueryFlag WithKeyspace [0x00000080 %#.32b]", f)
	case QueryFlagNowInSeconds:
		return fmt.Sprintf("QueryFlag NowInSeconds [0x00000100 %#.32b]", f)
	case QueryFlagDsePageSizeBytes:
		return fmt.Sprintf("QueryFlag DsePageSizeBytes [0x40000000 %#.32b]", f)
	case QueryFlagDseWithContinuousPagingOptions:
		return fmt.Sprintf("QueryFlag DseWithContinuousPagingOptions [0x80000000 %#.32b]", f)
	}
	return fmt.Sprintf("QueryFlag ? [%#.8X %#.32b]", uint32(f), uint32(f))
}

type RowsFlag uint32

const (
	RowsFlagGlobalTablesSpec = RowsFlag(0x00000001)
	RowsFlagHasMorePages     = RowsFlag(0x00000002)
	RowsFlagNoMetadata       = RowsFlag(0x00000004)
	RowsFlagMetadataChanged  = RowsFlag(0x00000008)
)

// DSE-specific rows flags
const (
	RowsFlagDseContinuousPaging   = RowsFlag(0x40000000) // DSE v1+
	RowsFlagDseLastContinuousPage = RowsFlag(0x80000000) // DSE v1+
)

func (f RowsFlag) Add(other RowsFlag) RowsFlag    { return addFlag(f, other) }
func (f RowsFlag) Remove(other RowsFlag) RowsFlag { return removeFlag(f, other) }
func (f RowsFlag) Contains(other RowsFlag) bool   { return containsFlag(f, other) }

func (f RowsFlag) String() string {
	switch f {
	case RowsFlagGlobalTablesSpec:
		return fmt.Sprintf("RowsFlag GlobalTablesSpec [0x00000001 %#.32b]", f)
	case RowsFlagHasMorePages:
		return fmt.Sprintf("RowsFlag HasMorePages [0x00000002 %#.32b]", f)
	case RowsFlagNoMetadata:
		return fmt.Sprintf("RowsFlag NoMetadata [0x00000004 %#.32b]", f)
	case RowsFlagMetadataChanged:
		return fmt.Sprintf("RowsFlag MetadataChanged [0x00000008 %#.32b]", f)
	case RowsFlagDseContinuousPaging:
		return fmt.Sprintf("RowsFlag ContinuousPaging [0x40000000 %#.32b]", f)
	case RowsFlagDseLastContinuousPage:
		return fmt.Sprintf("RowsFlag LastContinuousPage [0x80000000 %#.32b]", f)
	}
	return fmt.Sprintf("RowsFlag ? [%#.8X %#.32b]", uint32(f), uint32(f))
}

type VariablesFlag uint32

const (
	VariablesFlagGlobalTablesSpec = VariablesFlag(0x00000001)
)

func (f VariablesFlag) Add(other VariablesFlag) VariablesFlag    { return addFlag(f, other) }
func (f VariablesFlag) Remove(other VariablesFlag) VariablesFlag { return removeFlag(f, other) }
func (f VariablesFlag) Contains(other VariablesFlag) bool        { return containsFlag(f, other) }

func (f VariablesFlag) String() string {
	switch f {
	case VariablesFlagGlobalTablesSpec:
		return fmt.Sprintf("VariablesFlag GlobalTablesSpec [0x00000001 %#.32b]", f)
	}
	return fmt.Sprintf("VariablesFlag ? [%#.8X %#.32b]", uint32(f), uint32(f))
}

type PrepareFlag uint32

const (
	PrepareFlagWithKeyspace = PrepareFlag(0x00000001) // v5 and DSE v2
)

func (f PrepareFlag) Add(other PrepareFlag) PrepareFlag    { return addFlag(f, other) }
func (f PrepareFlag) Remove(other PrepareFlag) PrepareFlag { return removeFlag(f, other) }
func (f PrepareFlag) Contains(other PrepareFlag) bool      { return containsFlag(f, other) }

func (f PrepareFlag) String() string {
	switch f {
	case PrepareFlagWithKeyspace:
		return fmt.Sprintf("PrepareFlag WithKeyspace [0x00000001 %#.32b]", f)
	}
	return fmt.Sprintf("PrepareFlag ? [%#.8X %#.32b]", uint32(f), uint32(f))
}

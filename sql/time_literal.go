// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import "time"

// dateLayout is the date literal format ExprTime accepts; timestampLayout
// and timestampTLayout, plus RFC 3339, are the accepted timestamp formats.
const (
	dateLayout       = "2006-01-02"
	timestampLayout  = "2006-01-02 15:04:05"
	timestampTLayout = "2006-01-02T15:04:05"
)

// ParseTimeLiteral validates a literal date or timestamp string at AST
// construction time, rather than deferring every malformed literal to
// SQL-execution time (which is out of scope for this module entirely).
// kind must be Date or Timestamp.
func ParseTimeLiteral(kind DataType, literal string) (time.Time, error) {
	switch kind {
	case Date:
		t, err := time.Parse(dateLayout, literal)
		if err != nil {
			return time.Time{}, ErrMalformedTimeLiteral.New(kind, literal)
		}
		return t, nil
	case Timestamp:
		if t, err := time.Parse(timestampLayout, literal); err == nil {
			return t, nil
		}
		if t, err := time.Parse(timestampTLayout, literal); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, literal); err == nil {
			return t, nil
		}
		return time.Time{}, ErrMalformedTimeLiteral.New(kind, literal)
	default:
		return time.Time{}, ErrMalformedTimeLiteral.New(kind, literal)
	}
}

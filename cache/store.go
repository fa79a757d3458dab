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

// Package cache memoizes compiled expressions. A host process that
// recompiles the same AST against the same FieldSpace many times across a
// modeling session (spec_full's rationale: the FieldSpace is assumed
// immutable or internally synchronized for the duration of a batch of
// compilations) can skip the walk entirely on a cache hit.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/malloy-core/sql"
)

var bucketName = []byte("malloy-compile-cache")

// Store wraps a boltdb file as a key/value cache of compiled results.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a boltdb-backed store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying boltdb file.
func (s *Store) Close() error { return s.db.Close() }

// Identity is the pair a cache key is hashed from: something that
// fingerprints the AST (callers typically use the root node's pointer
// identity or a content hash computed by their parser) plus a version
// string for the FieldSpace the AST was compiled against.
type Identity struct {
	ASTFingerprint    interface{}
	FieldSpaceVersion string
}

// Key derives a stable cache key from an Identity.
func Key(id Identity) (uint64, error) {
	h, err := hashstructure.Hash(id, nil)
	if err != nil {
		return 0, fmt.Errorf("cache: hash identity: %w", err)
	}
	return h, nil
}

// Entry is the memoized result of one CompileExpression call.
type Entry struct {
	Value       sql.ExprValue
	Diagnostics []sql.Diagnostic
}

// Get returns a deep copy of a previously stored Entry. ok is false on a
// cache miss; a miss records no diagnostics and is not itself an error.
func (s *Store) Get(key uint64) (Entry, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(keyBytes(key))
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: get: %w", err)
	}
	if raw == nil {
		return Entry{}, false, nil
	}
	entry, err := decodeEntry(raw)
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Put stores a compiled Entry under key, overwriting any prior value.
func (s *Store) Put(key uint64, entry Entry) error {
	raw, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(keyBytes(key), raw)
	})
}

func keyBytes(key uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, key)
	return b
}

// wireFragment and wireEntry are JSON-serializable mirrors of the fragment
// ABI (sql.Fragment is a closed set of concrete, unexported-method types
// and cannot be marshaled directly).
type wireFragment struct {
	Tag        string         `json:"tag"`
	Text       string         `json:"text,omitempty"`
	Path       string         `json:"path,omitempty"`
	Function   string         `json:"function,omitempty"`
	StructPath string         `json:"structPath,omitempty"`
	E          []wireFragment `json:"e,omitempty"`
	FilterList []wireFilter   `json:"filterList,omitempty"`
}

type wireFilter struct {
	Value     []wireFragment `json:"value"`
	Aggregate bool           `json:"aggregate"`
}

type wireDiagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type wireEntry struct {
	DataType    string           `json:"dataType"`
	Aggregate   bool             `json:"aggregate"`
	Timeframe   string           `json:"timeframe"`
	Value       []wireFragment   `json:"value"`
	Diagnostics []wireDiagnostic `json:"diagnostics"`
}

func toWire(seq sql.FragmentSeq) []wireFragment {
	out := make([]wireFragment, 0, len(seq))
	for _, f := range seq {
		switch v := f.(type) {
		case sql.TextFragment:
			out = append(out, wireFragment{Tag: f.Tag(), Text: v.Text})
		case sql.FieldFragment:
			out = append(out, wireFragment{Tag: f.Tag(), Path: v.Path})
		case sql.AggregateFragment:
			out = append(out, wireFragment{Tag: f.Tag(), Function: v.Function, StructPath: v.StructPath, E: toWire(v.E)})
		case sql.FilterExpressionFragment:
			filters := make([]wireFilter, len(v.FilterList))
			for i, c := range v.FilterList {
				filters[i] = wireFilter{Value: toWire(c.Value), Aggregate: c.Aggregate}
			}
			out = append(out, wireFragment{Tag: f.Tag(), E: toWire(v.E), FilterList: filters})
		}
	}
	return out
}

func fromWire(wire []wireFragment) sql.FragmentSeq {
	out := make(sql.FragmentSeq, 0, len(wire))
	for _, w := range wire {
		switch w.Tag {
		case "text":
			out = append(out, sql.TextFragment{Text: w.Text})
		case "field":
			out = append(out, sql.FieldFragment{Path: w.Path})
		case "aggregate":
			out = append(out, sql.AggregateFragment{Function: w.Function, StructPath: w.StructPath, E: fromWire(w.E)})
		case "filterExpression":
			filters := make([]sql.FilterCond, len(w.FilterList))
			for i, f := range w.FilterList {
				filters[i] = sql.FilterCond{Value: fromWire(f.Value), Aggregate: f.Aggregate}
			}
			out = append(out, sql.FilterExpressionFragment{E: fromWire(w.E), FilterList: filters})
		}
	}
	return out
}

func encodeEntry(entry Entry) ([]byte, error) {
	diags := make([]wireDiagnostic, len(entry.Diagnostics))
	for i, d := range entry.Diagnostics {
		diags[i] = wireDiagnostic{File: d.Location.File, Line: d.Location.Line, Column: d.Location.Column, Message: d.Message}
	}
	w := wireEntry{
		DataType:    string(entry.Value.DataType),
		Aggregate:   entry.Value.Aggregate,
		Timeframe:   string(entry.Value.Timeframe),
		Value:       toWire(entry.Value.Value),
		Diagnostics: diags,
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("cache: encode entry: %w", err)
	}
	return raw, nil
}

func decodeEntry(raw []byte) (Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return Entry{}, fmt.Errorf("cache: decode entry: %w", err)
	}
	diags := make([]sql.Diagnostic, len(w.Diagnostics))
	for i, d := range w.Diagnostics {
		diags[i] = sql.Diagnostic{
			Location: sql.SourceLocation{File: d.File, Line: d.Line, Column: d.Column},
			Message:  d.Message,
		}
	}
	return Entry{
		Value: sql.ExprValue{
			DataType:  sql.DataType(w.DataType),
			Aggregate: w.Aggregate,
			Timeframe: sql.Timeframe(w.Timeframe),
			Value:     fromWire(w.Value),
		},
		Diagnostics: diags,
	}, nil
}

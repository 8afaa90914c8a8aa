// Copyright 2025 the original author or authors.
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

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"

	"m4o.io/adiff/model"
)

// ElementRow is a stored element.
type ElementRow struct {
	ID        ElementID
	Kind      model.Kind
	Info      model.Info
	Bounds    *BoundsID
	Lat       *model.Degrees
	Lon       *model.Degrees
	Projected *r2.Point // EPSG:3857, nil unless both coordinates are known
}

// TagRow is a stored tag of an element.
type TagRow struct {
	Element ElementID
	Key     string
	Value   string
}

// WayNodeRow is a stored position of a node in a way.
type WayNodeRow struct {
	Way   ElementID
	Node  ElementID
	Index int
}

// MemberRow is a stored member of a relation.
type MemberRow struct {
	Relation ElementID
	Element  ElementID
	Role     string
	Index    int
}

// ChangeRow is a stored change.
type ChangeRow struct {
	ID   ChangeID
	Kind model.ChangeKind
	Old  *ElementID
	New  *ElementID
}

// DiffRow is a stored diff.
type DiffRow struct {
	ID       DiffID
	Changes  []ChangeID
	Imported time.Time
}

// Size counts the rows of a MemoryStore.
type Size struct {
	Bounds   int
	Elements int
	Tags     int
	WayNodes int
	Members  int
	Changes  int
	Diffs    int
}

type tables struct {
	bounds   []model.Bounds
	elements []ElementRow
	tags     []TagRow
	wayNodes []WayNodeRow
	members  []MemberRow
	changes  []ChangeRow
	diffs    []DiffRow
}

// MemoryStore keeps committed diffs in memory.  Transactions are serialized:
// Begin blocks until the previous transaction is committed or rolled back.
type MemoryStore struct {
	writer sync.Mutex

	mu        sync.RWMutex
	committed tables
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Begin starts a transaction.
func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.writer.Lock()

	s.mu.RLock()
	base := Size{
		Bounds:   len(s.committed.bounds),
		Elements: len(s.committed.elements),
		Changes:  len(s.committed.changes),
	}
	s.mu.RUnlock()

	return &memoryTx{store: s, base: base}, nil
}

// Size returns the number of committed rows.
func (s *MemoryStore) Size() Size {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Size{
		Bounds:   len(s.committed.bounds),
		Elements: len(s.committed.elements),
		Tags:     len(s.committed.tags),
		WayNodes: len(s.committed.wayNodes),
		Members:  len(s.committed.members),
		Changes:  len(s.committed.changes),
		Diffs:    len(s.committed.diffs),
	}
}

// Diffs returns the committed diffs in commit order.
func (s *MemoryStore) Diffs() []DiffRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.committed.diffs)
}

// Diff returns the committed diff id.
func (s *MemoryStore) Diff(id DiffID) (DiffRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.committed.diffs, func(d DiffRow) bool { return d.ID == id })
	if i < 0 {
		return DiffRow{}, false
	}

	return s.committed.diffs[i], true
}

// Change returns the committed change id.
func (s *MemoryStore) Change(id ChangeID) (ChangeRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return row(s.committed.changes, uint64(id))
}

// Element returns the committed element id.
func (s *MemoryStore) Element(id ElementID) (ElementRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return row(s.committed.elements, uint64(id))
}

// Bounds returns the committed bounds id.
func (s *MemoryStore) Bounds(id BoundsID) (model.Bounds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return row(s.committed.bounds, uint64(id))
}

// Tags returns the tags of element id, in the order they were stored.
func (s *MemoryStore) Tags(id ElementID) []TagRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.committed.tags, func(t TagRow) bool { return t.Element == id })
}

// WayNodes returns the nodes of way id, in the order they were stored.
func (s *MemoryStore) WayNodes(id ElementID) []WayNodeRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.committed.wayNodes, func(wn WayNodeRow) bool { return wn.Way == id })
}

// Members returns the members of relation id, in the order they were stored.
func (s *MemoryStore) Members(id ElementID) []MemberRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.committed.members, func(m MemberRow) bool { return m.Relation == id })
}

// row returns the row with the 1-based id.
func row[T any](rows []T, id uint64) (T, bool) {
	var zero T

	if id == 0 || id > uint64(len(rows)) {
		return zero, false
	}

	return rows[id-1], true
}

func filter[T any](rows []T, keep func(T) bool) []T {
	var out []T

	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}

// memoryTx stages rows until Commit.  IDs continue the committed sequences,
// which cannot move while the transaction holds the writer lock.
type memoryTx struct {
	store  *MemoryStore
	base   Size
	staged tables
	done   bool
}

func (tx *memoryTx) StoreBounds(b model.Bounds) (BoundsID, error) {
	if tx.done {
		return 0, ErrTxDone
	}

	tx.staged.bounds = append(tx.staged.bounds, b)

	return BoundsID(tx.base.Bounds + len(tx.staged.bounds)), nil
}

func (tx *memoryTx) StoreElement(kind model.Kind, info model.Info, attrs ElementAttrs) (ElementID, error) {
	if tx.done {
		return 0, ErrTxDone
	}

	if attrs.Bounds != nil && !tx.knownBounds(*attrs.Bounds) {
		return 0, fmt.Errorf("unknown bounds %d", *attrs.Bounds)
	}

	id := ElementID(tx.base.Elements + len(tx.staged.elements) + 1)

	tx.staged.elements = append(tx.staged.elements, ElementRow{
		ID:        id,
		Kind:      kind,
		Info:      info,
		Bounds:    attrs.Bounds,
		Lat:       attrs.Lat,
		Lon:       attrs.Lon,
		Projected: projectAttrs(attrs),
	})

	return id, nil
}

func (tx *memoryTx) StoreTag(id ElementID, key, value string) error {
	if tx.done {
		return ErrTxDone
	}

	if !tx.knownElement(id) {
		return fmt.Errorf("unknown element %d", id)
	}

	tx.staged.tags = append(tx.staged.tags, TagRow{Element: id, Key: key, Value: value})

	return nil
}

func (tx *memoryTx) StoreWayNode(way, node ElementID, index int) error {
	if tx.done {
		return ErrTxDone
	}

	if !tx.knownElement(way) || !tx.knownElement(node) {
		return fmt.Errorf("unknown way node %d of way %d", node, way)
	}

	tx.staged.wayNodes = append(tx.staged.wayNodes, WayNodeRow{Way: way, Node: node, Index: index})

	return nil
}

func (tx *memoryTx) StoreMember(relation, element ElementID, role string, index int) error {
	if tx.done {
		return ErrTxDone
	}

	if !tx.knownElement(relation) || !tx.knownElement(element) {
		return fmt.Errorf("unknown member %d of relation %d", element, relation)
	}

	tx.staged.members = append(tx.staged.members, MemberRow{
		Relation: relation,
		Element:  element,
		Role:     role,
		Index:    index,
	})

	return nil
}

func (tx *memoryTx) StoreChange(kind model.ChangeKind, old, newer *ElementID) (ChangeID, error) {
	if tx.done {
		return 0, ErrTxDone
	}

	for _, e := range []*ElementID{old, newer} {
		if e != nil && !tx.knownElement(*e) {
			return 0, fmt.Errorf("unknown element %d", *e)
		}
	}

	id := ChangeID(tx.base.Changes + len(tx.staged.changes) + 1)

	tx.staged.changes = append(tx.staged.changes, ChangeRow{ID: id, Kind: kind, Old: old, New: newer})

	return id, nil
}

func (tx *memoryTx) StoreDiff(changes []ChangeID, imported time.Time) (DiffID, error) {
	if tx.done {
		return "", ErrTxDone
	}

	for _, c := range changes {
		if c == 0 || int(c) > tx.base.Changes+len(tx.staged.changes) {
			return "", fmt.Errorf("unknown change %d", c)
		}
	}

	id := DiffID(uuid.NewString())

	tx.staged.diffs = append(tx.staged.diffs, DiffRow{
		ID:       id,
		Changes:  slices.Clone(changes),
		Imported: imported,
	})

	return id, nil
}

func (tx *memoryTx) Commit() error {
	if tx.done {
		return ErrTxDone
	}

	s := tx.store

	s.mu.Lock()
	s.committed.bounds = append(s.committed.bounds, tx.staged.bounds...)
	s.committed.elements = append(s.committed.elements, tx.staged.elements...)
	s.committed.tags = append(s.committed.tags, tx.staged.tags...)
	s.committed.wayNodes = append(s.committed.wayNodes, tx.staged.wayNodes...)
	s.committed.members = append(s.committed.members, tx.staged.members...)
	s.committed.changes = append(s.committed.changes, tx.staged.changes...)
	s.committed.diffs = append(s.committed.diffs, tx.staged.diffs...)
	s.mu.Unlock()

	tx.finish()

	return nil
}

func (tx *memoryTx) Rollback() error {
	if tx.done {
		return ErrTxDone
	}

	tx.finish()

	return nil
}

func (tx *memoryTx) finish() {
	tx.done = true
	tx.staged = tables{}
	tx.store.writer.Unlock()
}

func (tx *memoryTx) knownElement(id ElementID) bool {
	return id != 0 && int(id) <= tx.base.Elements+len(tx.staged.elements)
}

func (tx *memoryTx) knownBounds(id BoundsID) bool {
	return id != 0 && int(id) <= tx.base.Bounds+len(tx.staged.bounds)
}

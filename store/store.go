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

// Package store persists decoded augmented diffs.  A Store hands out
// transactions; Persist writes one diff per transaction so that a diff is
// either stored entirely or not at all.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"m4o.io/adiff/model"
)

type (
	// BoundsID identifies a stored bounding box.
	BoundsID uint64

	// ElementID identifies a stored element.
	ElementID uint64

	// ChangeID identifies a stored change.
	ChangeID uint64

	// DiffID identifies a stored diff.
	DiffID string
)

// ErrTxDone is returned when a transaction is used after Commit or Rollback.
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// ElementAttrs holds the element columns that are not part of model.Info.
type ElementAttrs struct {
	Bounds *BoundsID
	Lat    *model.Degrees
	Lon    *model.Degrees
}

// Store begins transactions.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx receives the rows of one diff.  Nothing is visible to readers of the
// store until Commit returns successfully.
type Tx interface {
	StoreBounds(b model.Bounds) (BoundsID, error)
	StoreElement(kind model.Kind, info model.Info, attrs ElementAttrs) (ElementID, error)
	StoreTag(id ElementID, key, value string) error
	StoreWayNode(way, node ElementID, index int) error
	StoreMember(relation, element ElementID, role string, index int) error
	StoreChange(kind model.ChangeKind, old, new *ElementID) (ChangeID, error)
	StoreDiff(changes []ChangeID, imported time.Time) (DiffID, error)
	Commit() error
	Rollback() error
}

// Persist writes diff to s inside one transaction, in document order.  Any
// failure, including cancellation of ctx between changes, rolls the
// transaction back.
func Persist(ctx context.Context, s Store, diff *model.Diff) (id DiffID, err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rerr := tx.Rollback(); rerr != nil {
			slog.Error("unable to roll back diff", "error", rerr)
		}
	}()

	w := writer{tx: tx}

	changes := make([]ChangeID, 0, len(diff.Changes))

	for _, c := range diff.Changes {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		cid, err := w.change(c)
		if err != nil {
			return "", err
		}

		changes = append(changes, cid)
	}

	if err = ctx.Err(); err != nil {
		return "", err
	}

	if id, err = tx.StoreDiff(changes, diff.Imported); err != nil {
		return "", fmt.Errorf("unable to store diff: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("unable to commit diff: %w", err)
	}

	slog.Debug("persisted diff", "id", id, "changes", len(changes))

	return id, nil
}

type writer struct {
	tx Tx
}

func (w writer) change(c model.Change) (ChangeID, error) {
	old, err := w.optional(c.Old)
	if err != nil {
		return 0, err
	}

	newer, err := w.optional(c.New)
	if err != nil {
		return 0, err
	}

	id, err := w.tx.StoreChange(c.Kind, old, newer)
	if err != nil {
		return 0, fmt.Errorf("unable to store %s change: %w", c.Kind, err)
	}

	return id, nil
}

func (w writer) optional(e model.Element) (*ElementID, error) {
	if e == nil {
		return nil, nil
	}

	id, err := w.element(e)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// element stores e and everything it references, depth first.
func (w writer) element(e model.Element) (ElementID, error) {
	var attrs ElementAttrs

	if b := e.GetBounds(); b != nil {
		bid, err := w.tx.StoreBounds(*b)
		if err != nil {
			return 0, fmt.Errorf("unable to store bounds: %w", err)
		}

		attrs.Bounds = &bid
	}

	if n, ok := e.(*model.Node); ok {
		attrs.Lat, attrs.Lon = n.Lat, n.Lon
	}

	id, err := w.tx.StoreElement(e.GetKind(), *e.GetInfo(), attrs)
	if err != nil {
		return 0, fmt.Errorf("unable to store %s: %w", e.GetKind(), err)
	}

	switch v := e.(type) {
	case *model.Way:
		for _, wn := range v.Nodes {
			nid, err := w.element(wn.Node)
			if err != nil {
				return 0, err
			}

			if err := w.tx.StoreWayNode(id, nid, wn.Index); err != nil {
				return 0, fmt.Errorf("unable to store way node: %w", err)
			}
		}
	case *model.Relation:
		for _, m := range v.Members {
			mid, err := w.element(m.Element)
			if err != nil {
				return 0, err
			}

			if err := w.tx.StoreMember(id, mid, m.Role, m.Index); err != nil {
				return 0, fmt.Errorf("unable to store member: %w", err)
			}
		}
	}

	for _, t := range e.GetTags() {
		if err := w.tx.StoreTag(id, t.Key, t.Value); err != nil {
			return 0, fmt.Errorf("unable to store tag %s: %w", t, err)
		}
	}

	return id, nil
}

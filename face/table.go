/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/dispatch"
	"golang.org/x/exp/slices"
)

// Table holds all faces used by a forwarder.
// Warning: All functions must be called on the scheduler goroutine.
type Table struct {
	faces      map[uint64]LinkService
	nextFaceID uint64
	fw         dispatch.FWThread
}

// NewTable creates an empty face table. Face IDs start at 1.
func NewTable() *Table {
	t := new(Table)
	t.faces = make(map[uint64]LinkService)
	t.nextFaceID = 1
	return t
}

// SetForwarder sets the forwarder that receives packets from, and teardown notifications for, faces in the table.
func (t *Table) SetForwarder(fw dispatch.FWThread) {
	t.fw = fw
	for _, face := range t.faces {
		face.setForwarder(fw)
	}
}

// Add adds a face to the face table, returning its new ID.
func (t *Table) Add(face LinkService) uint64 {
	faceID := t.nextFaceID
	t.nextFaceID++
	face.SetFaceID(faceID)
	face.setForwarder(t.fw)
	t.faces[faceID] = face
	core.LogDebug("FaceTable", "Registered FaceID=", faceID)
	return faceID
}

// Get gets the face with the specified ID (if any) from the face table.
func (t *Table) Get(id uint64) LinkService {
	face, ok := t.faces[id]

	if ok {
		return face
	}
	return nil
}

// GetFace gets the face with the specified ID (if any) as seen by the forwarder.
func (t *Table) GetFace(id uint64) dispatch.Face {
	face, ok := t.faces[id]
	if !ok {
		return nil
	}
	return face
}

// GetAll returns all faces, ordered by ID.
func (t *Table) GetAll() []LinkService {
	faces := make([]LinkService, 0, len(t.faces))
	for _, face := range t.faces {
		faces = append(faces, face)
	}
	slices.SortFunc(faces, func(a, b LinkService) int {
		if a.FaceID() < b.FaceID() {
			return -1
		} else if a.FaceID() > b.FaceID() {
			return 1
		}
		return 0
	})
	return faces
}

// Remove closes the face with the specified ID and removes it from the table. The face's pacing timer is
// cancelled before the forwarder releases the face's backlog.
func (t *Table) Remove(id uint64) bool {
	face, ok := t.faces[id]
	if !ok {
		return false
	}
	face.Close()
	delete(t.faces, id)
	if t.fw != nil {
		t.fw.OnFaceRemoved(id)
	}
	core.LogDebug("FaceTable", "Unregistered FaceID=", id)
	return true
}

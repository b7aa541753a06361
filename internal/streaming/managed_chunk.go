package streaming

import (
	"github.com/lebowski36/Voxel-Castle/internal/meshing"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// LODState is the fidelity a managed chunk is held at.
type LODState uint8

const (
	// StateActive keeps the voxel grid resident and renders the full mesh.
	StateActive LODState = iota
	// StateLOD frees the grid and keeps only the column-top mesh.
	StateLOD
	// StateUnloaded keeps the map entry with neither grid nor mesh.
	StateUnloaded
)

func (s LODState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateLOD:
		return "lod"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// ManagedChunk is a store entry. Chunk and LODMesh are never both set.
type ManagedChunk struct {
	Coord world.ChunkCoord
	State LODState

	Chunk    *world.Chunk  // resident only in StateActive
	FullMesh *meshing.Mesh // built by mesh sync while Active
	LODMesh  *meshing.Mesh // resident only in StateLOD

	// Visual is owned by the external visual-sync collaborator, which may
	// set or clear it freely. The store never reads it.
	Visual any

	// Revision increases whenever the renderable geometry changes.
	Revision uint64
}

// Renderable reports whether a drawable should exist for this chunk.
func (m *ManagedChunk) Renderable() bool {
	switch m.State {
	case StateActive:
		return m.FullMesh != nil
	case StateLOD:
		return m.LODMesh != nil
	default:
		return false
	}
}

// Mesh returns the geometry matching the current state, if any.
func (m *ManagedChunk) Mesh() *meshing.Mesh {
	switch m.State {
	case StateActive:
		return m.FullMesh
	case StateLOD:
		return m.LODMesh
	default:
		return nil
	}
}

// Valid reports whether the entry satisfies the per-state residency rules.
func (m *ManagedChunk) Valid() bool {
	switch m.State {
	case StateActive:
		return m.Chunk != nil && m.LODMesh == nil
	case StateLOD:
		return m.Chunk == nil && m.LODMesh != nil && m.FullMesh == nil
	case StateUnloaded:
		return m.Chunk == nil && m.LODMesh == nil && m.FullMesh == nil
	default:
		return false
	}
}

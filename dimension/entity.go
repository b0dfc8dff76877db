// Package dimension implements the world aggregate: chunk
// acquisition/caching, player join/leave lifecycle, view-distance
// chunk streaming, block mutation fan-out, and a Tick hook. Grounded on
// ErikPelli-MinecraftLightServer's single flat Player/world model,
// generalized into a dimension-owned player/entity registry decoupled from
// any one connection type via the PlayerSink interface.
package dimension

import (
	"github.com/google/uuid"

	"github.com/Penguin-Spy/quasar/proto"
)

// Entity is anything with an id, a uuid, a type, and a pose.
// Players embed Entity and add connection/inventory/skin state.
type Entity struct {
	ID       int32
	UUID     uuid.UUID
	Type     proto.Identifier
	Position proto.Vector3
	Pitch    float32 // [-90, 90]
	Yaw      float32 // [0, 360)

	// Shadows of the last values sent on the wire, used to skip redundant
	// updates.
	lastPosition proto.Vector3
	lastPitch    float32
	lastYaw      float32
}

// PositionChanged reports whether Position differs from the last
// synchronized shadow.
func (e *Entity) PositionChanged() bool {
	return e.Position != e.lastPosition
}

// SyncShadow records the entity's current pose as the last-sent state.
func (e *Entity) SyncShadow() {
	e.lastPosition = e.Position
	e.lastPitch = e.Pitch
	e.lastYaw = e.Yaw
}

package duel

import (
	"github.com/LazyCat420/battle-bots/common/types"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

const wallThickness = 1.0

// initArena builds the static geometry: four walls around the playable
// rectangle, centered on the origin, and the floor plane. Arena geometry all
// reads as "arena" in contact events.
func (game *DuelGame) initArena() {

	halfw := game.settings.ArenaWidth / 2
	halfd := game.settings.ArenaDepth / 2
	wallz := game.settings.WallHeight / 2

	wall := func(id string) types.PhysicalBodyDescriptor {
		return types.MakePhysicalBodyDescriptor(types.PhysicalBodyDescriptorType.Wall, id)
	}

	// North and south walls overhang the corners so nothing escapes there.
	game.physicalWorld.CreateStaticBox(
		vector.MakeVector3(0, halfd+wallThickness, wallz),
		vector.MakeVector3(halfw+2*wallThickness, wallThickness, wallz),
		wall("north"),
	)
	game.physicalWorld.CreateStaticBox(
		vector.MakeVector3(0, -halfd-wallThickness, wallz),
		vector.MakeVector3(halfw+2*wallThickness, wallThickness, wallz),
		wall("south"),
	)

	game.physicalWorld.CreateStaticBox(
		vector.MakeVector3(halfw+wallThickness, 0, wallz),
		vector.MakeVector3(wallThickness, halfd, wallz),
		wall("east"),
	)
	game.physicalWorld.CreateStaticBox(
		vector.MakeVector3(-halfw-wallThickness, 0, wallz),
		vector.MakeVector3(wallThickness, halfd, wallz),
		wall("west"),
	)

	game.physicalWorld.CreateStaticPlane(types.MakePhysicalBodyDescriptor(
		types.PhysicalBodyDescriptorType.Floor,
		"floor",
	))
}

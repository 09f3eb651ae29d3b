package behavior

import (
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

type _movementkind string

var MovementKinds = struct {
	None       _movementkind
	MoveToward _movementkind
	Strafe     _movementkind
	Stop       _movementkind
}{
	None:       _movementkind(""),
	MoveToward: _movementkind("movetoward"),
	Strafe:     _movementkind("strafe"),
	Stop:       _movementkind("stop"),
}

func (k _movementkind) String() string {
	return string(k)
}

// Intent is the action buffer one behavior invocation fills through the api.
// Within a category the last call wins; the categories are movement
// (moveToward/strafe/stop), rotation (rotateTo) and attack (attack).
type Intent struct {
	Movement  _movementkind
	Target    vector.Vector3
	StrafeDir float64
	Rotate    bool
	RotateTo  float64
	Attack    bool
}

package types

// PhysicalBodyDescriptor is set as UserData on physics bodies to be able to determine collider and collidee from contact callbacks
type PhysicalBodyDescriptor struct {
	Type _physicaltype
	ID   string
}

type _physicaltype string

func (t _physicaltype) String() string {
	switch t {
	case PhysicalBodyDescriptorType.Bot:
		return "Bot"
	case PhysicalBodyDescriptorType.Wall:
		return "Wall"
	case PhysicalBodyDescriptorType.Floor:
		return "Floor"
	}

	return "UnknownType"
}

var PhysicalBodyDescriptorType = struct {
	Bot   _physicaltype
	Wall  _physicaltype
	Floor _physicaltype
}{
	Bot:   _physicaltype("b"),
	Wall:  _physicaltype("w"),
	Floor: _physicaltype("f"),
}

func MakePhysicalBodyDescriptor(type_ _physicaltype, id string) PhysicalBodyDescriptor {
	return PhysicalBodyDescriptor{
		Type: type_,
		ID:   id,
	}
}

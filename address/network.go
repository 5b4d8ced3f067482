package address

// NetworkType is the single byte that classifies the kind of entity an
// address belongs to. The values are a closed bit-pattern enumeration:
// bit 0x08 marks person-like single-owner entities, bit 0x10 marks
// multi-owner entities. Whether a multi-owner entity is a polylogue or a
// chatroom is decided by membership count, which is outside this package;
// the byte is carried and preserved as-is.
type NetworkType byte

const (
	// NetworkBTCMain is the plain BitCoin-style address prefix used by
	// keyless metas.
	NetworkBTCMain NetworkType = 0x00

	// NetworkMain is a person account.
	NetworkMain NetworkType = 0x08

	// NetworkGroup is a generic multi-person entity.
	NetworkGroup NetworkType = 0x10
	// NetworkPolylogue is a multi-person chat with few members.
	NetworkPolylogue NetworkType = 0x10
	// NetworkChatroom is a multi-person chat with many members.
	NetworkChatroom NetworkType = 0x30

	// NetworkProvider is a service provider.
	NetworkProvider NetworkType = 0x76
	// NetworkStation is a server node.
	NetworkStation NetworkType = 0x88

	// NetworkThing is an IoT device.
	NetworkThing NetworkType = 0x80
	// NetworkRobot is an autonomous agent.
	NetworkRobot NetworkType = 0xC8
)

// IsUser reports whether the network type marks a person-like entity.
func (n NetworkType) IsUser() bool {
	return n&NetworkMain == NetworkMain || n == NetworkBTCMain
}

// IsGroup reports whether the network type marks a multi-owner entity.
func (n NetworkType) IsGroup() bool {
	return n&NetworkGroup == NetworkGroup
}

// IsStation reports whether the network type marks a server node.
func (n NetworkType) IsStation() bool {
	return n == NetworkStation
}

// IsProvider reports whether the network type marks a service provider.
func (n NetworkType) IsProvider() bool {
	return n == NetworkProvider
}

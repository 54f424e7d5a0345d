package core

const (
	// PermOwnerRW is used for files podsrc writes on behalf of the user.
	PermOwnerRW = 0o600

	// MaxDiscoveryDepth bounds how deep a source walk descends below its root.
	MaxDiscoveryDepth = 64
)

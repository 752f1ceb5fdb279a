package model

import (
	"fmt"
	"strings"
)

// Platform identifies the external system a player account originates from
type Platform int

const (
	PlatformOncyber Platform = iota + 1
	PlatformHyperfy
	PlatformSubstrata
)

// ExternalIDField names the player attribute holding a platform's external id
type ExternalIDField string

const (
	FieldOncyberID ExternalIDField = "oncyberId"
	FieldHyperfyID ExternalIDField = "hyperfyId"
)

// LookupMode tells how a platform-supplied id addresses a player
type LookupMode int

const (
	// LookupByExternalID queries the platform's external id field
	LookupByExternalID LookupMode = iota + 1
	// LookupByInternalID treats the supplied id as the store's own identifier
	LookupByInternalID
)

// Lookup is the resolved query strategy for a platform
type Lookup struct {
	Mode  LookupMode
	Field ExternalIDField // empty for LookupByInternalID
}

// Platforms lists every supported platform in a stable order
func Platforms() []Platform {
	return []Platform{PlatformOncyber, PlatformHyperfy, PlatformSubstrata}
}

// ParsePlatform converts a platform tag into a Platform
func ParsePlatform(tag string) (Platform, error) {
	switch strings.TrimSpace(tag) {
	case "oncyber":
		return PlatformOncyber, nil
	case "hyperfy":
		return PlatformHyperfy, nil
	case "substrata":
		return PlatformSubstrata, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPlatform, tag)
	}
}

// Lookup resolves how players of this platform are addressed.
// Adding a platform means adding a case here.
func (p Platform) Lookup() (Lookup, error) {
	switch p {
	case PlatformOncyber:
		return Lookup{Mode: LookupByExternalID, Field: FieldOncyberID}, nil
	case PlatformHyperfy:
		return Lookup{Mode: LookupByExternalID, Field: FieldHyperfyID}, nil
	case PlatformSubstrata:
		return Lookup{Mode: LookupByInternalID}, nil
	default:
		return Lookup{}, fmt.Errorf("%w: %d", ErrInvalidPlatform, int(p))
	}
}

// String returns the platform tag
func (p Platform) String() string {
	switch p {
	case PlatformOncyber:
		return "oncyber"
	case PlatformHyperfy:
		return "hyperfy"
	case PlatformSubstrata:
		return "substrata"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

package model

import "time"

// PlayerID is the store-assigned internal identifier of a player
type PlayerID string

// Player is a platform participant.
//
// Two identity shapes coexist: platform-keyed players (OncyberID / HyperfyID)
// and wallet-keyed players (WalletAddress). They are looked up independently
// and never merged.
type Player struct {
	ID               PlayerID
	OncyberID        string // unique when present
	HyperfyID        string // unique when present
	WalletAddress    string // unique when present
	Name             string
	IsActive         bool
	IsBlocked        bool
	LastConnectionAt time.Time
	CreatedAt        time.Time
}

// ExternalID returns the value stored under an external id field
func (p *Player) ExternalID(field ExternalIDField) string {
	switch field {
	case FieldOncyberID:
		return p.OncyberID
	case FieldHyperfyID:
		return p.HyperfyID
	default:
		return ""
	}
}

// SetExternalID stores an external id under the given field
func (p *Player) SetExternalID(field ExternalIDField, id string) {
	switch field {
	case FieldOncyberID:
		p.OncyberID = id
	case FieldHyperfyID:
		p.HyperfyID = id
	}
}

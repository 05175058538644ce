package models

import (
	"github.com/rs/zerolog/log"
)

// RoleAnchor marks the one player per round who does not receive a
// personality card and must identify who did.
const RoleAnchor = "Anchor"

// PersonalityCard holds the trait assigned to every non-Anchor player.
type PersonalityCard struct {
	Trait string `json:"trait"`
}

// Player represents one participant in a room.
type Player struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Role            string           `json:"role"`
	PersonalityCard *PersonalityCard `json:"personality_card,omitempty"`
	IsAnchor        bool             `json:"is_anchor"`
}

// Anchor reports whether this player is the Anchor. Role is the asserted
// identity; IsAnchor is a denormalized copy of it, so a disagreement is
// treated as a data-quality signal and logged rather than crashed on.
func (p *Player) Anchor() bool {
	anchor := p.Role == RoleAnchor
	if anchor != p.IsAnchor {
		log.Warn().
			Str("player_id", p.ID).
			Str("role", p.Role).
			Bool("is_anchor", p.IsAnchor).
			Msg("player role and is_anchor flag disagree; preferring role")
	}
	return anchor
}

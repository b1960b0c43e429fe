package entity

import (
	"database/sql"

	"github.com/guildkit/backend/pkg/enum"
	"github.com/guildkit/backend/pkg/errorx"
	"golang.org/x/exp/slices"
)

type GiveawayStatus string

var (
	GiveawayActive  = enum.New(GiveawayStatus("active"))
	GiveawayDrawing = enum.New(GiveawayStatus("drawing"))
	GiveawayClosed  = enum.New(GiveawayStatus("closed"))
)

type Giveaway struct {
	Base
	Lifecycle

	Status      GiveawayStatus
	Prize       string
	WinnerCount int

	RequiredRole sql.NullInt64
	BypassRoles  Array[int64] `gorm:"type:text"`

	Entries Array[int64] `gorm:"type:text"`
	Winners Array[int64] `gorm:"type:text"`
}

func (g *Giveaway) IsTerminal() bool {
	return g.Status == GiveawayClosed
}

// Eligible reports whether an actor holding the given roles may enter. A
// giveaway without a required role is open to everyone; bypass roles satisfy
// the requirement.
func (g *Giveaway) Eligible(actorRoles []int64) bool {
	if !g.RequiredRole.Valid {
		return true
	}

	if slices.Contains(actorRoles, g.RequiredRole.Int64) {
		return true
	}

	for _, role := range g.BypassRoles {
		if slices.Contains(actorRoles, role) {
			return true
		}
	}

	return false
}

// Enter toggles the user's entry: a first enter joins, a second withdraws.
func (g *Giveaway) Enter(user int64) (entered bool, err error) {
	if g.Status != GiveawayActive {
		return false, errorx.New(errorx.WrongState, "This giveaway has ended")
	}

	if i := slices.Index(g.Entries, user); i >= 0 {
		g.Entries = slices.Delete(g.Entries, i, i+1)
		return false, nil
	}

	g.Entries = append(g.Entries, user)
	return true, nil
}

// BeginDraw moves the giveaway to drawing. Exactly one of a racing manual
// end and the deadline scan wins this transition; the loser observes a
// non-active status.
func (g *Giveaway) BeginDraw() error {
	if g.Status != GiveawayActive {
		return errorx.New(errorx.WrongState, "This giveaway has ended")
	}

	g.Status = GiveawayDrawing
	return nil
}

// CompleteDraw records the winners and closes the giveaway.
func (g *Giveaway) CompleteDraw(winners []int64) error {
	if g.Status != GiveawayDrawing {
		return errorx.New(errorx.WrongState, "Giveaway is not drawing")
	}

	g.Winners = winners
	g.Status = GiveawayClosed
	return nil
}

// Reopen puts a closed giveaway back to drawing so its winners can be drawn
// again.
func (g *Giveaway) Reopen() error {
	if g.Status != GiveawayClosed {
		return errorx.New(errorx.WrongState, "Only an ended giveaway can be rerolled")
	}

	g.Status = GiveawayDrawing
	g.Winners = nil
	return nil
}

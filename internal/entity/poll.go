package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/guildkit/backend/pkg/enum"
	"github.com/guildkit/backend/pkg/errorx"
)

type PollStatus string

var (
	PollActive = enum.New(PollStatus("active"))
	PollClosed = enum.New(PollStatus("closed"))
)

const (
	MinPollOptions = 2
	MaxPollOptions = 5
)

// VoteMap records one choice per voter, keyed by the voter id in decimal.
// A voter's later vote overwrites the earlier one.
type VoteMap map[string]int

func (m *VoteMap) Scan(value any) error {
	switch t := value.(type) {
	case string:
		return json.Unmarshal([]byte(t), m)
	case []byte:
		return json.Unmarshal(t, m)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (m VoteMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

type Poll struct {
	Base
	Lifecycle

	Status   PollStatus
	Question string
	Options  Array[string] `gorm:"type:text"`
	Votes    VoteMap       `gorm:"type:text"`
}

func (p *Poll) IsTerminal() bool {
	return p.Status == PollClosed
}

// Vote records the voter's choice, overwriting any earlier choice by the
// same voter.
func (p *Poll) Vote(voter int64, option int) error {
	if option < 0 || option >= len(p.Options) {
		return errorx.New(errorx.BadRequest, "Option index must be in range [0, %d)", len(p.Options))
	}

	if p.Status != PollActive {
		return errorx.New(errorx.WrongState, "This poll has ended")
	}

	if p.Votes == nil {
		p.Votes = VoteMap{}
	}

	p.Votes[strconv.FormatInt(voter, 10)] = option
	return nil
}

// Close ends the poll. Closing an already closed poll reports alreadyClosed
// with no state change, which settles the race between an early close and
// the deadline scan.
func (p *Poll) Close() (alreadyClosed bool) {
	if p.Status == PollClosed {
		return true
	}

	p.Status = PollClosed
	return false
}

// Tally returns the vote count per option index.
func (p *Poll) Tally() []int {
	counts := make([]int, len(p.Options))
	for _, option := range p.Votes {
		if option >= 0 && option < len(counts) {
			counts[option]++
		}
	}

	return counts
}

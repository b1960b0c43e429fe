package event

import (
	"encoding/json"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/guildkit/backend/pkg/pubsub"
)

var eventNode *snowflake.Node

func init() {
	var err error
	eventNode, err = snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}
}

type Event interface {
	Op() string
}

type Metadata struct {
	GuildID int64 `json:"guild_id"`
}

// EventRequest is the envelope published to the notification sink. ID is a
// snowflake, so consumers can order events from one producer.
type EventRequest struct {
	ID       int64    `json:"i"`
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		ID:       eventNode.Generate().Int64(),
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

// Pack marshals the envelope for publishing, keyed by guild so per-guild
// ordering survives topic partitioning.
func (req *EventRequest) Pack() (*pubsub.Pack, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	return &pubsub.Pack{
		Key: []byte(strconv.FormatInt(req.Metadata.GuildID, 10)),
		Msg: b,
	}, nil
}

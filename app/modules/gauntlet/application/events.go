package gauntletservice

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
)

// TopicMatchProcessed carries MatchProcessedEvent payloads for the
// notification collaborator.
const TopicMatchProcessed = "gauntlet.match.processed"

// MatchProcessedEvent is published after a match commits.
type MatchProcessedEvent struct {
	GauntletID    uuid.UUID              `json:"gauntlet_id"`
	MatchID       uuid.UUID              `json:"match_id"`
	SideALineupID uuid.UUID              `json:"side_a_lineup_id"`
	SideBLineupID uuid.UUID              `json:"side_b_lineup_id"`
	SideAOutcome  gauntletdomain.Outcome `json:"side_a_outcome"`
	SideBOutcome  gauntletdomain.Outcome `json:"side_b_outcome"`
	SideARank     int                    `json:"side_a_rank"`
	SideBRank     int                    `json:"side_b_rank"`
	MatchDate     time.Time              `json:"match_date"`
}

// publishMatchProcessed emits the event best-effort; the match is already
// committed, so publish failures are logged and swallowed.
func (s *GauntletService) publishMatchProcessed(evt MatchProcessedEvent) error {
	if s.publisher == nil {
		return nil
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return s.publisher.Publish(TopicMatchProcessed, message.NewMessage(watermill.NewUUID(), payload))
}

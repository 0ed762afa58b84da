package game

import (
	"time"

	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/model"
)

const (
	balloonMinPlayers   = 2
	balloonDuration     = 20 // seconds
	balloonMinThreshold = 50
	balloonMaxThreshold = 99
	balloonMaxIncrement = 5
)

// BalloonRules implements the accumulator variant: each blow grows the
// balloon by a random amount until it reaches the round's hidden-ish
// threshold and pops.
type BalloonRules struct{}

var _ Rules = BalloonRules{}

func (BalloonRules) Type() model.GameType { return model.GameTypeBalloon }

func (BalloonRules) MinPlayers() int { return balloonMinPlayers }

func (BalloonRules) NewRound(rnd random.Random) model.RoundConfig {
	return model.RoundConfig{
		Duration:    balloonDuration,
		Threshold:   balloonMinThreshold + rnd.Intn(balloonMaxThreshold-balloonMinThreshold+1),
		TargetIndex: -1,
	}
}

// OnTick has no side effect for the accumulator variant
func (BalloonRules) OnTick(room *model.Room, rnd random.Random) *model.Event {
	return nil
}

// Act grows the player's balloon; reaching the threshold is terminal
// and further blows from that player are ignored.
func (BalloonRules) Act(room *model.Room, player *model.Player, action Action, rnd random.Random, now time.Time) *model.Event {
	if player.Round.Popped {
		return nil
	}

	player.Round.Size += 1 + rnd.Intn(balloonMaxIncrement)

	if player.Round.Size >= room.Round.Threshold {
		player.Round.Popped = true
		player.Round.PoppedAt = now
		return &model.Event{
			Type: model.EventPlayerPopped,
			Payload: model.PlayerPoppedPayload{
				PlayerID:    player.ID,
				DisplayName: player.DisplayName,
			},
		}
	}

	return &model.Event{
		Type: model.EventSizeUpdate,
		Payload: model.SizeUpdatePayload{
			PlayerID: player.ID,
			Size:     player.Round.Size,
		},
	}
}

func (BalloonRules) Rank(players []*model.Player) []model.Standing {
	return RankAccumulator(players)
}

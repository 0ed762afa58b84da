package game

import (
	"time"

	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/model"
)

const (
	moleMinPlayers = 3
	moleDuration   = 20 // seconds
	moleBoardSize  = 3  // 3x3 board
)

// MoleRules implements the target-claim variant: a random board cell is
// active each tick, and the first player to claim it scores.
type MoleRules struct{}

var _ Rules = MoleRules{}

func (MoleRules) Type() model.GameType { return model.GameTypeMole }

func (MoleRules) MinPlayers() int { return moleMinPlayers }

func (MoleRules) NewRound(rnd random.Random) model.RoundConfig {
	return model.RoundConfig{
		Duration:    moleDuration,
		BoardSize:   moleBoardSize,
		TargetIndex: rnd.Intn(moleBoardSize * moleBoardSize),
	}
}

// OnTick relocates the mole to a fresh random cell
func (MoleRules) OnTick(room *model.Room, rnd random.Random) *model.Event {
	room.Round.TargetIndex = rnd.Intn(moleBoardSize * moleBoardSize)
	return &model.Event{
		Type:    model.EventTargetMoved,
		Payload: model.TargetMovedPayload{Index: room.Round.TargetIndex},
	}
}

// Act scores a claim only when the submitted index matches the active
// cell; clearing the index means no other player can claim it this tick.
func (MoleRules) Act(room *model.Room, player *model.Player, action Action, rnd random.Random, now time.Time) *model.Event {
	if room.Round.TargetIndex < 0 || action.Index != room.Round.TargetIndex {
		return nil
	}

	player.Round.Score++
	room.Round.TargetIndex = -1

	return &model.Event{
		Type: model.EventScoreUpdate,
		Payload: model.ScoreUpdatePayload{
			PlayerID: player.ID,
			Score:    player.Round.Score,
		},
	}
}

func (MoleRules) Rank(players []*model.Player) []model.Standing {
	return RankByScore(players)
}

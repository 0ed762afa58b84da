package game

import (
	"time"

	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/model"
)

const (
	diceMinPlayers = 2
	diceDuration   = 15 // seconds
	diceSides      = 6
)

// DiceRules implements the roll-once variant: each player gets a single
// roll per round and is ranked by it.
type DiceRules struct{}

var _ Rules = DiceRules{}

func (DiceRules) Type() model.GameType { return model.GameTypeDice }

func (DiceRules) MinPlayers() int { return diceMinPlayers }

func (DiceRules) NewRound(rnd random.Random) model.RoundConfig {
	return model.RoundConfig{
		Duration:    diceDuration,
		TargetIndex: -1,
	}
}

// OnTick has no side effect for the roll-once variant
func (DiceRules) OnTick(room *model.Room, rnd random.Random) *model.Event {
	return nil
}

// Act rolls the die once; having rolled is terminal for the round
func (DiceRules) Act(room *model.Room, player *model.Player, action Action, rnd random.Random, now time.Time) *model.Event {
	if player.Round.Rolled {
		return nil
	}

	roll := 1 + rnd.Intn(diceSides)
	player.Round.Rolled = true
	player.Round.Roll = roll
	player.Round.Score = roll

	return &model.Event{
		Type: model.EventPlayerRolled,
		Payload: model.PlayerRolledPayload{
			PlayerID: player.ID,
			Roll:     roll,
		},
	}
}

func (DiceRules) Rank(players []*model.Player) []model.Standing {
	return RankByScore(players)
}

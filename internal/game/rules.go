package game

import (
	"time"

	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/model"
)

// Action is the single per-game gameplay intent payload. Index is only
// meaningful for target-claim games; the other variants take no arguments.
type Action struct {
	Index int `json:"index"`
}

// Rules captures everything that differs between the mini-game variants:
// quorum, round parameters, the per-tick side effect, the act update
// rule, and the final ranking. The room engine is otherwise generic.
type Rules interface {
	Type() model.GameType

	// MinPlayers is the quorum required to start a round
	MinPlayers() int

	// NewRound produces the round parameters fixed at round start
	NewRound(rnd random.Random) model.RoundConfig

	// OnTick applies the per-tick side effect, returning an event to
	// broadcast or nil if the variant has none
	OnTick(room *model.Room, rnd random.Random) *model.Event

	// Act applies the gameplay update for one player action. A nil
	// return means the action was silently ignored (wrong target,
	// terminal state already reached, and so on).
	Act(room *model.Room, player *model.Player, action Action, rnd random.Random, now time.Time) *model.Event

	// Rank computes the final standings. Players are supplied in join
	// order, which is the documented stable tie-break.
	Rank(players []*model.Player) []model.Standing
}

var rulesByType = map[model.GameType]Rules{
	model.GameTypeMole:    MoleRules{},
	model.GameTypeBalloon: BalloonRules{},
	model.GameTypeDice:    DiceRules{},
}

// ForType returns the rules for a game type
func ForType(t model.GameType) (Rules, error) {
	rules, ok := rulesByType[t]
	if !ok {
		return nil, model.ErrUnknownGameType
	}
	return rules, nil
}

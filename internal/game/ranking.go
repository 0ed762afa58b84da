package game

import (
	"sort"

	"github.com/samber/lo"

	"github.com/pocha-games/partyroom/internal/model"
)

// RankByScore orders players by score descending. Ties keep the input
// (join) order, which is documented as acceptable rather than fair.
func RankByScore(players []*model.Player) []model.Standing {
	standings := lo.Map(players, func(p *model.Player, _ int) model.Standing {
		return model.Standing{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Score:       p.Round.Score,
			Roll:        p.Round.Roll,
		}
	})

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	return standings
}

// RankAccumulator orders accumulator players: survivors first by size
// descending, then popped players by pop time descending (surviving
// longer ranks better). Each popped player is annotated with its
// 1-based pop order, computed by ascending pop time.
func RankAccumulator(players []*model.Player) []model.Standing {
	alive := lo.Filter(players, func(p *model.Player, _ int) bool { return !p.Round.Popped })
	popped := lo.Filter(players, func(p *model.Player, _ int) bool { return p.Round.Popped })

	sort.SliceStable(alive, func(i, j int) bool {
		return alive[i].Round.Size > alive[j].Round.Size
	})

	// Ascending pop time determines the 1-based pop order
	byPopTime := make([]*model.Player, len(popped))
	copy(byPopTime, popped)
	sort.SliceStable(byPopTime, func(i, j int) bool {
		return byPopTime[i].Round.PoppedAt.Before(byPopTime[j].Round.PoppedAt)
	})
	popOrder := make(map[model.PlayerID]int, len(byPopTime))
	for i, p := range byPopTime {
		popOrder[p.ID] = i + 1
	}

	sort.SliceStable(popped, func(i, j int) bool {
		return popped[i].Round.PoppedAt.After(popped[j].Round.PoppedAt)
	})

	standings := make([]model.Standing, 0, len(players))
	for _, p := range alive {
		standings = append(standings, model.Standing{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Size:        p.Round.Size,
		})
	}
	for _, p := range popped {
		standings = append(standings, model.Standing{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Size:        p.Round.Size,
			Popped:      true,
			PopOrder:    popOrder[p.ID],
		})
	}

	return standings
}

package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pocha-games/partyroom/internal/dependencies/clock"
	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/game"
	"github.com/pocha-games/partyroom/internal/model"
)

const (
	// MaxPlayers is the room capacity, shared by every game variant
	MaxPlayers = 8

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "0123456789"
)

// Broadcaster delivers engine events to the presentation layer. It must
// not call back into the engine: broadcasts happen with the engine lock
// held so that events for one room are observed in mutation order.
type Broadcaster interface {
	BroadcastToRoom(code model.RoomCode, event model.Event)
}

// ResultSink receives final standings when a round ends. It is invoked
// off the engine's lock; implementations may do I/O.
type ResultSink interface {
	RecordRound(ctx context.Context, gameType model.GameType, standings []model.Standing) error
}

// Engine owns the authoritative in-memory room table and the round
// lifecycle for every room. All mutations are serialized through one
// mutex; tick and reaper callbacks take the same lock, so no two
// callbacks for a room ever run concurrently.
type Engine struct {
	mu    sync.Mutex
	rooms map[model.RoomCode]*model.Room

	broadcaster Broadcaster
	results     ResultSink
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger

	// tickInterval is one second in production; tests shorten it
	tickInterval time.Duration
}

// NewEngine creates a room engine. results may be nil if round results
// should not be recorded anywhere.
func NewEngine(
	broadcaster Broadcaster,
	results ResultSink,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		rooms:        make(map[model.RoomCode]*model.Room),
		broadcaster:  broadcaster,
		results:      results,
		clock:        clk,
		random:       rnd,
		logger:       logger.With(slog.String("component", "room-engine")),
		tickInterval: time.Second,
	}
}

// CreateRoom allocates a fresh room with the creator as host and first
// member. Creation always succeeds for a known game type.
func (e *Engine) CreateRoom(gameType model.GameType, playerID model.PlayerID, displayName string, conn model.ConnID) (model.RoomCode, error) {
	rules, err := game.ForType(gameType)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	// Regenerate on collision; never surfaced to the caller
	var code model.RoomCode
	for {
		code = model.RoomCode(e.random.String(RoomCodeLength, RoomCodeAlphabet))
		if _, exists := e.rooms[code]; !exists {
			break
		}
	}

	room := &model.Room{
		Code:     code,
		GameType: rules.Type(),
		HostID:   playerID,
		Players:  make(map[model.PlayerID]*model.Player),
		Phase:    model.PhaseIdle,
		Round:    model.RoundConfig{TargetIndex: -1},

		CreatedAt:   now,
		NextJoinSeq: 1,
	}
	room.Players[playerID] = &model.Player{
		ID:           playerID,
		DisplayName:  displayName,
		Conn:         conn,
		JoinSeq:      0,
		JoinedAt:     now,
		LastActivity: now,
	}
	e.rooms[code] = room

	e.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("game_type", string(gameType)),
		slog.String("host", string(playerID)))

	e.broadcastMembersLocked(room)
	return code, nil
}

// JoinRoom adds a player to a room, or updates them in place when the
// player is already a member (a reconnect). Rejoins never count against
// capacity and always succeed.
func (e *Engine) JoinRoom(code model.RoomCode, playerID model.PlayerID, displayName string, conn model.ConnID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return model.ErrRoomNotFound
	}

	now := e.clock.Now()

	if p := room.GetPlayer(playerID); p != nil {
		// Reconnect: new connection supersedes the old one, round
		// progress is deliberately preserved
		p.Conn = conn
		p.DisplayName = displayName
		p.LastActivity = now
		e.broadcastMembersLocked(room)
		return nil
	}

	if room.PlayerCount() >= MaxPlayers {
		return model.ErrRoomFull
	}

	room.Players[playerID] = &model.Player{
		ID:           playerID,
		DisplayName:  displayName,
		Conn:         conn,
		JoinSeq:      room.NextJoinSeq,
		JoinedAt:     now,
		LastActivity: now,
	}
	room.NextJoinSeq++

	e.logger.Info("player joined",
		slog.String("room", string(code)),
		slog.String("player", string(playerID)),
		slog.Int("members", room.PlayerCount()))

	e.broadcastMembersLocked(room)
	return nil
}

// LeaveRoom removes a player explicitly
func (e *Engine) LeaveRoom(code model.RoomCode, playerID model.PlayerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return
	}
	e.removePlayerLocked(room, playerID)
}

// HandleDisconnect removes a player after their connection dropped,
// unless a newer connection has already superseded the given one.
func (e *Engine) HandleDisconnect(code model.RoomCode, playerID model.PlayerID, conn model.ConnID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return
	}
	p := room.GetPlayer(playerID)
	if p == nil || p.Conn != conn {
		return
	}
	e.removePlayerLocked(room, playerID)
}

// StartRound transitions a room from Idle/Ended to Running
func (e *Engine) StartRound(code model.RoomCode, playerID model.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return model.ErrRoomNotFound
	}

	if p := room.GetPlayer(playerID); p != nil {
		p.LastActivity = e.clock.Now()
	}

	if room.HostID != playerID {
		return model.ErrNotHost
	}
	if room.Phase == model.PhaseRunning {
		return model.ErrRoundInProgress
	}

	rules, err := game.ForType(room.GameType)
	if err != nil {
		return err
	}
	if room.PlayerCount() < rules.MinPlayers() {
		return model.ErrInsufficientPlayers
	}

	// Should be unreachable given the phase guard, but a round must
	// never start with a stale timer still attached
	room.StopTimer()

	for _, p := range room.Players {
		p.Round = model.RoundState{}
	}
	room.Round = rules.NewRound(e.random)
	room.TimeLeft = room.Round.Duration
	room.Phase = model.PhaseRunning

	e.logger.Info("round started",
		slog.String("room", string(code)),
		slog.String("game_type", string(room.GameType)),
		slog.Int("duration", room.Round.Duration),
		slog.Int("members", room.PlayerCount()))

	e.emitLocked(room, model.Event{
		Type: model.EventRoundStarted,
		Payload: model.RoundStartedPayload{
			GameType:  room.GameType,
			Duration:  room.Round.Duration,
			BoardSize: room.Round.BoardSize,
			Threshold: room.Round.Threshold,
		},
	})
	if room.Round.BoardSize > 0 {
		e.emitLocked(room, model.Event{
			Type:    model.EventTargetMoved,
			Payload: model.TargetMovedPayload{Index: room.Round.TargetIndex},
		})
	}

	room.Timer = e.startTimer(code)
	return nil
}

// Act applies a gameplay action. Stale or invalid actions (unknown
// player, no running round, terminal state reached) are deliberately
// ignored rather than surfaced as errors.
func (e *Engine) Act(code model.RoomCode, playerID model.PlayerID, action game.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return
	}
	p := room.GetPlayer(playerID)
	if p == nil {
		return
	}
	p.LastActivity = e.clock.Now()

	if room.Phase != model.PhaseRunning {
		return
	}

	rules, err := game.ForType(room.GameType)
	if err != nil {
		return
	}
	if event := rules.Act(room, p, action, e.random, e.clock.Now()); event != nil {
		e.emitLocked(room, *event)
	}
}

// Chat relays a chat message to the room. Non-members are ignored.
func (e *Engine) Chat(code model.RoomCode, playerID model.PlayerID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return
	}
	p := room.GetPlayer(playerID)
	if p == nil {
		return
	}
	p.LastActivity = e.clock.Now()

	e.emitLocked(room, model.Event{
		Type: model.EventChatMessage,
		Payload: model.ChatMessagePayload{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Text:        text,
		},
	})
}

// ForceEnd lets the host cut a running round short
func (e *Engine) ForceEnd(code model.RoomCode, playerID model.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return model.ErrRoomNotFound
	}
	if room.HostID != playerID {
		return model.ErrNotHost
	}
	if room.Phase != model.PhaseRunning {
		return model.ErrNoRoundInProgress
	}

	e.endRoundLocked(room)
	return nil
}

// Touch refreshes a player's activity timestamp. The transport calls
// this for every inbound message so the reaper only evicts players who
// have gone fully quiet.
func (e *Engine) Touch(code model.RoomCode, playerID model.PlayerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		return
	}
	if p := room.GetPlayer(playerID); p != nil {
		p.LastActivity = e.clock.Now()
	}
}

// Tick advances a running room's countdown by one step: broadcast the
// remaining time, apply the variant's per-tick side effect, and finish
// the round when the countdown is exhausted.
func (e *Engine) Tick(code model.RoomCode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, ok := e.rooms[code]
	if !ok {
		// A timer outliving its room is an invariant violation; the
		// tick is dropped and the offending timer dies with its loop
		e.logger.Warn("tick for deleted room dropped", slog.String("room", string(code)))
		return
	}
	if room.Phase != model.PhaseRunning {
		return
	}

	e.emitLocked(room, model.Event{
		Type:    model.EventTimeUpdate,
		Payload: model.TimeUpdatePayload{Remaining: room.TimeLeft},
	})
	room.TimeLeft--

	rules, err := game.ForType(room.GameType)
	if err != nil {
		e.logger.Error("room has unknown game type", slog.String("room", string(code)))
		e.deleteRoomLocked(room)
		return
	}
	if event := rules.OnTick(room, e.random); event != nil {
		e.emitLocked(room, *event)
	}

	if room.TimeLeft <= 0 {
		e.endRoundLocked(room)
	}
}

// SweepIdle evicts every player whose last activity is older than
// maxIdle, through the same removal path as an explicit leave. Returns
// the number of players evicted.
func (e *Engine) SweepIdle(maxIdle time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.clock.Now().Add(-maxIdle)
	evicted := 0

	for _, room := range e.roomList() {
		for _, p := range room.PlayersByJoinOrder() {
			if p.LastActivity.Before(cutoff) {
				e.logger.Info("reaping idle player",
					slog.String("room", string(room.Code)),
					slog.String("player", string(p.ID)))
				e.removePlayerLocked(room, p.ID)
				evicted++
			}
		}
	}
	return evicted
}

// BroadcastMembers re-emits the current member list. Transports call
// this after attaching a creator's connection to the room channel,
// since the creation broadcast predates the attachment.
func (e *Engine) BroadcastMembers(code model.RoomCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if room, ok := e.rooms[code]; ok {
		e.broadcastMembersLocked(room)
	}
}

// RoomCount returns the number of live rooms
func (e *Engine) RoomCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rooms)
}

// roomList snapshots the room table so sweeps can delete while iterating
func (e *Engine) roomList() []*model.Room {
	rooms := make([]*model.Room, 0, len(e.rooms))
	for _, r := range e.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// removePlayerLocked is the single removal path shared by leave,
// disconnect and the reaper: host migration and empty-room deletion
// behave identically regardless of why the player left.
func (e *Engine) removePlayerLocked(room *model.Room, playerID model.PlayerID) {
	if room.GetPlayer(playerID) == nil {
		return
	}
	delete(room.Players, playerID)

	if room.PlayerCount() == 0 {
		e.deleteRoomLocked(room)
		return
	}

	if room.HostID == playerID {
		// Policy: the earliest-joined remaining player becomes host
		newHost := room.PlayersByJoinOrder()[0]
		oldHost := room.HostID
		room.HostID = newHost.ID
		e.logger.Info("host migrated",
			slog.String("room", string(room.Code)),
			slog.String("new_host", string(newHost.ID)))
		e.emitLocked(room, model.Event{
			Type: model.EventHostChanged,
			Payload: model.HostChangedPayload{
				OldHostID: oldHost,
				NewHostID: newHost.ID,
			},
		})
	}

	e.broadcastMembersLocked(room)
}

// deleteRoomLocked destroys a room and unconditionally cancels its timer
func (e *Engine) deleteRoomLocked(room *model.Room) {
	room.StopTimer()
	delete(e.rooms, room.Code)
	e.logger.Info("room deleted", slog.String("room", string(room.Code)))
}

// endRoundLocked finishes a round by any path: stop the timer, rank,
// broadcast the standings, and leave the room ready for a new start.
func (e *Engine) endRoundLocked(room *model.Room) {
	room.StopTimer()
	room.Phase = model.PhaseEnded
	room.Round.TargetIndex = -1

	rules, err := game.ForType(room.GameType)
	if err != nil {
		e.logger.Error("room has unknown game type", slog.String("room", string(room.Code)))
		e.deleteRoomLocked(room)
		return
	}

	standings := rules.Rank(room.PlayersByJoinOrder())

	e.logger.Info("round ended",
		slog.String("room", string(room.Code)),
		slog.String("game_type", string(room.GameType)),
		slog.Int("players", len(standings)))

	e.emitLocked(room, model.Event{
		Type:    model.EventRoundEnded,
		Payload: model.RoundEndedPayload{Standings: standings},
	})

	if e.results != nil {
		gameType := room.GameType
		go func() {
			if err := e.results.RecordRound(context.Background(), gameType, standings); err != nil {
				e.logger.Error("failed to record round results",
					slog.String("game_type", string(gameType)),
					slog.String("error", err.Error()))
			}
		}()
	}
}

// broadcastMembersLocked emits the full member list after any change
func (e *Engine) broadcastMembersLocked(room *model.Room) {
	players := make([]model.PlayerSummary, 0, room.PlayerCount())
	for _, p := range room.PlayersByJoinOrder() {
		players = append(players, model.PlayerSummary{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			IsHost:      p.ID == room.HostID,
		})
	}
	e.emitLocked(room, model.Event{
		Type: model.EventMembersChanged,
		Payload: model.MembersChangedPayload{
			Players: players,
			HostID:  room.HostID,
		},
	})
}

func (e *Engine) emitLocked(room *model.Room, event model.Event) {
	event.RoomCode = room.Code
	event.Timestamp = e.clock.Now()
	e.broadcaster.BroadcastToRoom(room.Code, event)
}

// Package driver is the per-page driver: given one page of raw
// game snapshots, it classifies each game, runs the simulator on completed
// ones, persists the batch in a single transaction, round-trip verifies
// what was written, and records per-phase timings.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/sim"
	"stormlightlabs.org/mmoldb/internal/ingest/taxa"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
	"stormlightlabs.org/mmoldb/internal/ingest/verify"
)

// RawGame is one page item's deserialized game payload, ready to classify.
type RawGame struct {
	GameID    string
	Season    int
	Day       sim.Day
	State     string // upstream's own top-level game state string
	Events    []RawEventAndMessage
	AwaySPTag string
	HomeSPTag string
}

// RawEventAndMessage pairs the raw JSON fields the fold needs with the
// already-parsed message; parsing itself is an external collaborator
// consumed here, not implemented here.
type RawEventAndMessage struct {
	Raw     sim.RawEventFields
	Message events.Message
	Text    string // the original raw play-by-play string, for verification
}

// Persistence is the slice of the persistence interface the driver needs:
// batch insert in one transaction, re-query for verification, and
// bulk-insert of additional logs produced by that verification pass.
type Persistence interface {
	InsertGames(ctx context.Context, games []types.GameForDb) error
	EventsForGames(ctx context.Context, gameIDs []string) (map[string][]types.EventDetail, error)
	InsertAdditionalIngestLogs(ctx context.Context, gameID string, logs []types.IngestLog) error
	InsertTimings(ctx context.Context, ingestID string, timings types.Timings) error
}

// Driver runs one page through classify -> simulate -> persist -> verify.
type Driver struct {
	Persistence Persistence
	Taxa        taxa.Taxa
	ParseSlot   func(tag string) (types.FielderSlot, bool)
	Unparse     verify.Unparser
	Log         *log.Logger
}

// RunPage drives classification, simulation, and persistence for one page
// of raw games belonging to ingestID.
func (d *Driver) RunPage(ctx context.Context, ingestID string, games []RawGame) error {
	timings := types.Timings{Phases: make(map[string]float64)}

	simulateStart := time.Now()
	var rows []types.GameForDb
	completedIDs := make([]string, 0, len(games))
	for _, game := range games {
		row := d.classifyAndSimulate(game)
		rows = append(rows, row)
		if row.Classification == types.GameCompleted {
			completedIDs = append(completedIDs, row.GameID)
		}
	}
	timings.Add("simulate", time.Since(simulateStart).Seconds())

	insertStart := time.Now()
	if err := d.Persistence.InsertGames(ctx, rows); err != nil {
		return fmt.Errorf("insert games batch: %w", err)
	}
	timings.Add("insert", time.Since(insertStart).Seconds())

	if len(completedIDs) > 0 {
		verifyStart := time.Now()
		stored, err := d.Persistence.EventsForGames(ctx, completedIDs)
		if err != nil {
			return fmt.Errorf("re-query events for verification: %w", err)
		}
		for _, game := range games {
			if game.State != "Complete" {
				continue
			}
			events := stored[game.GameID]
			mismatchLogs := verify.RoundTrip(events, rawTexts(game), d.Unparse)
			if len(mismatchLogs) > 0 {
				if err := d.Persistence.InsertAdditionalIngestLogs(ctx, game.GameID, mismatchLogs); err != nil {
					if d.Log != nil {
						d.Log.Errorf("failed to insert verification logs for %s: %v", game.GameID, err)
					}
				}
			}
		}
		timings.Add("verify", time.Since(verifyStart).Seconds())
	}

	return d.Persistence.InsertTimings(ctx, ingestID, timings)
}

func rawTexts(game RawGame) map[int]string {
	m := make(map[int]string, len(game.Events))
	for i, e := range game.Events {
		m[i] = e.Text
	}
	return m
}

// classifyAndSimulate classifies the game and, for Completed games, runs
// the simulator over its events.
func (d *Driver) classifyAndSimulate(game RawGame) types.GameForDb {
	switch game.State {
	case "Complete":
		return d.simulateCompleted(game)
	case "":
		return types.GameForDb{GameID: game.GameID, Season: game.Season, Classification: types.GameFatalError,
			Logs: []types.IngestLog{{LogLevel: types.LogCritical, LogText: "game payload had no state"}}}
	default:
		if isOngoingState(game.State) {
			return types.GameForDb{GameID: game.GameID, Season: game.Season, Classification: types.GameOngoing, IsOngoing: true}
		}
		return types.GameForDb{GameID: game.GameID, Season: game.Season, Classification: types.GameForeverIncomplete}
	}
}

func isOngoingState(state string) bool {
	switch state {
	case "Scheduled", "Live", "In Progress", "Ongoing":
		return true
	default:
		return false
	}
}

func (d *Driver) simulateCompleted(game RawGame) types.GameForDb {
	if len(game.Events) < 5 {
		return fatalGame(game, "fewer than 5 events; cannot construct game")
	}

	first5 := make([]events.Message, 5)
	for i := 0; i < 5; i++ {
		first5[i] = game.Events[i].Message
	}

	meta := sim.GameMeta{Season: game.Season, Day: game.Day, AwayStarterTag: game.AwaySPTag, HomeStarterTag: game.HomeSPTag}
	g, constructionLogs, err := sim.NewGame(game.GameID, meta, first5, d.ParseSlot)
	if err != nil {
		return fatalGame(game, err.Error())
	}

	var allLogs []types.IngestLog
	for i, evLogs := range constructionLogs {
		for _, l := range evLogs {
			l.GameEventIndex = intPtr(i)
			allLogs = append(allLogs, l)
		}
		_ = i
	}

	var details []types.EventDetail
	for i := 5; i < len(game.Events); i++ {
		ev := game.Events[i]
		detail, logs := g.Next(i, ev.Raw, ev.Message, d.Taxa)
		allLogs = append(allLogs, logs...)
		if detail != nil {
			details = append(details, *detail)
		}
	}

	return types.GameForDb{
		GameID:         game.GameID,
		Season:         game.Season,
		Classification: types.GameCompleted,
		Events:         details,
		Logs:           allLogs,
	}
}

func fatalGame(game RawGame, reason string) types.GameForDb {
	return types.GameForDb{
		GameID:         game.GameID,
		Season:         game.Season,
		Classification: types.GameFatalError,
		Logs:           []types.IngestLog{{LogLevel: types.LogCritical, LogText: reason}},
	}
}

func intPtr(i int) *int { return &i }

// DecodeRawGame is a convenience adapter from a raw JSON payload to the
// fields classifyAndSimulate needs, for callers that haven't already
// deserialized (kept thin since full upstream deserialization is an
// external collaborator).
func DecodeRawGame(gameID string, payload []byte) (state string, err error) {
	var probe struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return "", fmt.Errorf("probe game state for %s: %w", gameID, err)
	}
	return probe.State, nil
}

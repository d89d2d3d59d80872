// Package persistence is the reference implementation of the ingest
// pipeline's storage boundary: it backs rawstore.Inserter,
// coordinator.Stream, and driver.Persistence with a single Postgres
// connection, following internal/db/db.go's sql.Open("pgx", ...) + Ping
// connect idiom and using pgx's CopyFrom for the bulk paths.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stormlightlabs.org/mmoldb/internal/ingest/rawstore"
	"stormlightlabs.org/mmoldb/internal/ingest/taxa"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// Store is the concrete persistence backend. It holds both a *sql.DB (for
// plain reads, matching internal/repository's query style) and a pgxpool
// (for CopyFrom, matching internal/db.go's bulk-load style) against the
// same connection string.
type Store struct {
	db   *sql.DB
	pool *pgxpool.Pool
}

// Open connects both handles used by Store. connStr follows the same
// fallback rule as internal/db.Connect: empty means DATABASE_URL, then a
// local default.
func Open(ctx context.Context, connStr string) (*Store, error) {
	if connStr == "" {
		connStr = os.Getenv("DATABASE_URL")
		if connStr == "" {
			connStr = "host=localhost port=5432 user=postgres dbname=baseball_dev sslmode=disable"
		}
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}

	return &Store{db: sqlDB, pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
	s.db.Close()
}

// InsertRawEntities implements rawstore.Inserter: an idempotent batch
// insert keyed on (kind, entity_id, valid_from), via CopyFrom into a
// staging table followed by an INSERT ... ON CONFLICT DO NOTHING, since
// COPY itself cannot express upsert semantics.
func (s *Store) InsertRawEntities(ctx context.Context, rows []rawstore.RawRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin raw entity insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		CREATE TEMP TABLE raw_entities_staging (
			kind varchar NOT NULL,
			entity_id varchar NOT NULL,
			valid_from timestamptz NOT NULL,
			data jsonb NOT NULL
		) ON COMMIT DROP
	`); err != nil {
		return fmt.Errorf("create raw entity staging table: %w", err)
	}

	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{r.Kind, r.EntityID, r.ValidFrom, r.Data}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"raw_entities_staging"},
		[]string{"kind", "entity_id", "valid_from", "data"},
		pgx.CopyFromRows(values),
	); err != nil {
		return fmt.Errorf("copy raw entities into staging: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO raw_entities (kind, entity_id, valid_from, data)
		SELECT kind, entity_id, valid_from, data FROM raw_entities_staging
		ON CONFLICT (kind, entity_id, valid_from) DO NOTHING
	`); err != nil {
		return fmt.Errorf("insert raw entities from staging: %w", err)
	}

	return tx.Commit(ctx)
}

// Unprocessed implements coordinator.Stream: it streams raw rows that have
// no corresponding game row yet, ordered by (valid_from, entity_id), the
// order the coordinator's lane partitioner assumes.
func (s *Store) Unprocessed(ctx context.Context, out chan<- rawstore.RawRow, errc chan<- error) {
	defer close(out)

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.kind, r.entity_id, r.valid_from, r.data
		FROM raw_entities r
		LEFT JOIN games g ON g.game_id = r.entity_id AND r.kind = 'game'
		WHERE g.game_id IS NULL
		ORDER BY r.valid_from, r.entity_id
	`)
	if err != nil {
		errc <- fmt.Errorf("query unprocessed raw entities: %w", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var r rawstore.RawRow
		if err := rows.Scan(&r.Kind, &r.EntityID, &r.ValidFrom, &r.Data); err != nil {
			errc <- fmt.Errorf("scan unprocessed raw entity: %w", err)
			return
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return
		}
	}
	if err := rows.Err(); err != nil {
		errc <- fmt.Errorf("iterate unprocessed raw entities: %w", err)
	}
}

// InsertGames implements driver.Persistence: one transaction per page,
// writing the game row, its events (via CopyFrom), and its logs.
func (s *Store) InsertGames(ctx context.Context, games []types.GameForDb) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin game batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, g := range games {
		if _, err := tx.Exec(ctx, `
			INSERT INTO games (game_id, season, day, classification, is_ongoing)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (game_id) DO UPDATE SET
				classification = EXCLUDED.classification,
				is_ongoing = EXCLUDED.is_ongoing
		`, g.GameID, g.Season, g.Day, int(g.Classification), g.IsOngoing); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.GameID, err)
		}

		if len(g.Events) > 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM event_details WHERE game_id = $1`, g.GameID); err != nil {
				return fmt.Errorf("clear prior events for %s: %w", g.GameID, err)
			}
			values := make([][]any, len(g.Events))
			for i, e := range g.Events {
				values[i] = eventDetailRow(g.GameID, e)
			}
			if _, err := tx.CopyFrom(ctx,
				pgx.Identifier{"event_details"},
				eventDetailColumns,
				pgx.CopyFromRows(values),
			); err != nil {
				return fmt.Errorf("copy events for %s: %w", g.GameID, err)
			}
		}

		if len(g.Logs) > 0 {
			if err := insertLogs(ctx, tx, g.GameID, g.Logs); err != nil {
				return fmt.Errorf("insert logs for %s: %w", g.GameID, err)
			}
		}
	}

	return tx.Commit(ctx)
}

var eventDetailColumns = []string{
	"game_id", "game_event_index", "inning", "top_of_inning", "event_type",
	"balls_before", "strikes_before", "outs_before", "outs_after",
	"errors_before", "errors_after",
	"home_score_before", "away_score_before", "home_score_after", "away_score_after",
	"batter_name", "pitcher_name", "pitcher_count", "batter_count", "batter_subcount",
	"described_as_sacrifice", "is_toasty",
}

func eventDetailRow(gameID string, e types.EventDetail) []any {
	return []any{
		gameID, e.GameEventIndex, e.Inning, e.TopOfInning, int(e.EventType),
		e.BallsBefore, e.StrikesBefore, e.OutsBefore, e.OutsAfter,
		e.ErrorsBefore, e.ErrorsAfter,
		e.HomeScoreBefore, e.AwayScoreBefore, e.HomeScoreAfter, e.AwayScoreAfter,
		e.BatterName, e.PitcherName, e.PitcherCount, e.BatterCount, e.BatterSubcount,
		e.DescribedAsSacrifice, e.IsToasty,
	}
}

func insertLogs(ctx context.Context, tx pgx.Tx, gameID string, logs []types.IngestLog) error {
	values := make([][]any, len(logs))
	for i, l := range logs {
		values[i] = []any{gameID, l.GameEventIndex, int(l.LogLevel), l.LogText}
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"ingest_logs"},
		[]string{"game_id", "game_event_index", "log_level", "log_text"},
		pgx.CopyFromRows(values),
	)
	return err
}

// EventsForGames implements driver.Persistence's verification re-query: it
// re-reads exactly the rows InsertGames just wrote, in game-event order, so
// RoundTrip compares what landed rather than what was meant to land.
func (s *Store) EventsForGames(ctx context.Context, gameIDs []string) (map[string][]types.EventDetail, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, game_event_index, inning, top_of_inning, event_type,
			balls_before, strikes_before, outs_before, outs_after,
			errors_before, errors_after,
			home_score_before, away_score_before, home_score_after, away_score_after,
			batter_name, pitcher_name, pitcher_count, batter_count, batter_subcount,
			described_as_sacrifice, is_toasty
		FROM event_details
		WHERE game_id = ANY($1)
		ORDER BY game_id, game_event_index
	`, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("query events for games: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]types.EventDetail, len(gameIDs))
	for rows.Next() {
		var gameID string
		var e types.EventDetail
		var eventType int
		if err := rows.Scan(
			&gameID, &e.GameEventIndex, &e.Inning, &e.TopOfInning, &eventType,
			&e.BallsBefore, &e.StrikesBefore, &e.OutsBefore, &e.OutsAfter,
			&e.ErrorsBefore, &e.ErrorsAfter,
			&e.HomeScoreBefore, &e.AwayScoreBefore, &e.HomeScoreAfter, &e.AwayScoreAfter,
			&e.BatterName, &e.PitcherName, &e.PitcherCount, &e.BatterCount, &e.BatterSubcount,
			&e.DescribedAsSacrifice, &e.IsToasty,
		); err != nil {
			return nil, fmt.Errorf("scan event detail: %w", err)
		}
		e.EventType = types.EventKind(eventType)
		result[gameID] = append(result[gameID], e)
	}
	return result, rows.Err()
}

// InsertAdditionalIngestLogs implements driver.Persistence's post-hoc
// verification logging path: a small append, not worth a CopyFrom.
func (s *Store) InsertAdditionalIngestLogs(ctx context.Context, gameID string, logs []types.IngestLog) error {
	if len(logs) == 0 {
		return nil
	}
	for _, l := range logs {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO ingest_logs (game_id, game_event_index, log_level, log_text)
			VALUES ($1, $2, $3, $4)
		`, gameID, l.GameEventIndex, int(l.LogLevel), l.LogText); err != nil {
			return fmt.Errorf("insert ingest log for %s: %w", gameID, err)
		}
	}
	return nil
}

// InsertTimings implements driver.Persistence: one row per phase of the
// page, the phase-duration map flattened to (ingest_id, phase, seconds) triples.
func (s *Store) InsertTimings(ctx context.Context, ingestID string, timings types.Timings) error {
	for phase, seconds := range timings.Phases {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO ingest_timings (ingest_id, phase, seconds, recorded_at)
			VALUES ($1, $2, $3, $4)
		`, ingestID, phase, seconds, time.Now()); err != nil {
			return fmt.Errorf("insert timing %s/%s: %w", ingestID, phase, err)
		}
	}
	return nil
}

// LoadTaxa loads the event-type and slot taxon tables once at worker
// startup; the result is immutable and shared across every game
// the worker simulates afterward.
func (s *Store) LoadTaxa(ctx context.Context) (taxa.Taxa, error) {
	eventTypes, err := s.loadEventTypeRows(ctx)
	if err != nil {
		return taxa.Taxa{}, err
	}
	slots, generic, err := s.loadSlotRows(ctx)
	if err != nil {
		return taxa.Taxa{}, err
	}
	return taxa.FromRows(eventTypes, slots, generic), nil
}

func (s *Store) loadEventTypeRows(ctx context.Context) ([]taxa.EventTypeRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, id, display_name, ends_plate_appearance, is_in_play, is_hit,
			is_error, is_ball, is_strike, is_strikeout, is_foul, is_foul_tip, batter_swung
		FROM taxa_event_types
	`)
	if err != nil {
		return nil, fmt.Errorf("query taxa event types: %w", err)
	}
	defer rows.Close()

	var out []taxa.EventTypeRow
	for rows.Next() {
		var r taxa.EventTypeRow
		var id int
		if err := rows.Scan(&r.Name, &id, &r.Attrs.DisplayName, &r.Attrs.EndsPlateAppearance,
			&r.Attrs.IsInPlay, &r.Attrs.IsHit, &r.Attrs.IsError, &r.Attrs.IsBall,
			&r.Attrs.IsStrike, &r.Attrs.IsStrikeout, &r.Attrs.IsFoul, &r.Attrs.IsFoulTip,
			&r.Attrs.BatterSwung,
		); err != nil {
			return nil, fmt.Errorf("scan taxa event type: %w", err)
		}
		r.Attrs.ID = types.EventKind(id)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) loadSlotRows(ctx context.Context) ([]taxa.SlotRow, taxa.SlotAttrs, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, id, display_name, numbered, number FROM taxa_slots
	`)
	if err != nil {
		return nil, taxa.SlotAttrs{}, fmt.Errorf("query taxa slots: %w", err)
	}
	defer rows.Close()

	var out []taxa.SlotRow
	var generic taxa.SlotAttrs
	for rows.Next() {
		var r taxa.SlotRow
		var id int
		if err := rows.Scan(&r.Name, &id, &r.Attrs.DisplayName, &r.Attrs.Numbered, &r.Attrs.Number); err != nil {
			return nil, taxa.SlotAttrs{}, fmt.Errorf("scan taxa slot: %w", err)
		}
		r.Attrs.ID = types.FielderSlot(id)
		if r.Name == "unknown" {
			generic = r.Attrs
		}
		out = append(out, r)
	}
	return out, generic, rows.Err()
}

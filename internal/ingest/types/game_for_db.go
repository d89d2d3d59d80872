package types

// GameForDb is what the per-page driver hands to the persistence interface
// for one game: either a full row with its events, or a placeholder that
// records why no events were written.
type GameForDb struct {
	GameID       string
	Season       int
	Day          string
	Classification GameClassification

	// Populated only when Classification == GameCompleted.
	Events []EventDetail
	// Populated for every classification; game-wide logs (critical
	// construction-failure notices, deserialize errors, ...) as well as
	// per-event logs produced while folding a completed game.
	Logs []IngestLog

	IsOngoing bool
}

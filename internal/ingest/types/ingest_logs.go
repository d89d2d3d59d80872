package types

// IngestLogs is a scoped per-event log buffer: a value whose methods push
// graded records, always flushed into the game's overall log slice at the
// end of processing one event. Passed explicitly rather than hung off a
// global logger so that log attribution to (game_event_index) can never
// drift across goroutines.
type IngestLogs struct {
	gameEventIndex *int
	logs           []IngestLog
}

// NewIngestLogs starts a buffer scoped to a specific event index.
func NewIngestLogs(gameEventIndex int) *IngestLogs {
	idx := gameEventIndex
	return &IngestLogs{gameEventIndex: &idx}
}

// NewGameWideLogs starts a buffer for logs that apply to the whole game
// rather than one event (game_event_index = null).
func NewGameWideLogs() *IngestLogs {
	return &IngestLogs{}
}

func (l *IngestLogs) push(level LogLevel, text string) {
	l.logs = append(l.logs, IngestLog{
		GameEventIndex: l.gameEventIndex,
		LogLevel:       level,
		LogText:        text,
	})
}

func (l *IngestLogs) Critical(text string) { l.push(LogCritical, text) }
func (l *IngestLogs) Error(text string)    { l.push(LogError, text) }
func (l *IngestLogs) Warn(text string)     { l.push(LogWarn, text) }
func (l *IngestLogs) Info(text string)     { l.push(LogInfo, text) }
func (l *IngestLogs) Debug(text string)    { l.push(LogDebug, text) }
func (l *IngestLogs) Trace(text string)    { l.push(LogTrace, text) }

// IntoSlice drains the buffer into a plain slice, the shape the persistence
// interface expects.
func (l *IngestLogs) IntoSlice() []IngestLog {
	return l.logs
}

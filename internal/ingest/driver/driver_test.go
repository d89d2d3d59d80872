package driver

import (
	"context"
	"errors"
	"testing"

	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

type fakePersistence struct {
	inserted        []types.GameForDb
	insertErr       error
	eventsForGames  map[string][]types.EventDetail
	additionalLogs  map[string][]types.IngestLog
	timings         types.Timings
	eventsCallCount int
}

func (f *fakePersistence) InsertGames(ctx context.Context, games []types.GameForDb) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, games...)
	return nil
}

func (f *fakePersistence) EventsForGames(ctx context.Context, gameIDs []string) (map[string][]types.EventDetail, error) {
	f.eventsCallCount++
	return f.eventsForGames, nil
}

func (f *fakePersistence) InsertAdditionalIngestLogs(ctx context.Context, gameID string, logs []types.IngestLog) error {
	if f.additionalLogs == nil {
		f.additionalLogs = make(map[string][]types.IngestLog)
	}
	f.additionalLogs[gameID] = logs
	return nil
}

func (f *fakePersistence) InsertTimings(ctx context.Context, ingestID string, timings types.Timings) error {
	f.timings = timings
	return nil
}

func TestClassifyAndSimulateNoStateIsFatal(t *testing.T) {
	d := &Driver{}
	row := d.classifyAndSimulate(RawGame{GameID: "g1", State: ""})
	if row.Classification != types.GameFatalError {
		t.Fatalf("Classification = %v, want GameFatalError", row.Classification)
	}
	if len(row.Logs) != 1 || row.Logs[0].LogLevel != types.LogCritical {
		t.Fatalf("Logs = %+v, want one critical log", row.Logs)
	}
}

func TestClassifyAndSimulateOngoingStates(t *testing.T) {
	d := &Driver{}
	for _, state := range []string{"Scheduled", "Live", "In Progress", "Ongoing"} {
		row := d.classifyAndSimulate(RawGame{GameID: "g", State: state})
		if row.Classification != types.GameOngoing || !row.IsOngoing {
			t.Errorf("state %q: Classification=%v IsOngoing=%v, want GameOngoing/true", state, row.Classification, row.IsOngoing)
		}
	}
}

func TestClassifyAndSimulateUnknownStateIsForeverIncomplete(t *testing.T) {
	d := &Driver{}
	row := d.classifyAndSimulate(RawGame{GameID: "g", State: "Postponed"})
	if row.Classification != types.GameForeverIncomplete {
		t.Fatalf("Classification = %v, want GameForeverIncomplete", row.Classification)
	}
}

func TestClassifyAndSimulateCompleteWithTooFewEventsIsFatal(t *testing.T) {
	d := &Driver{}
	row := d.classifyAndSimulate(RawGame{GameID: "g", State: "Complete", Events: nil})
	if row.Classification != types.GameFatalError {
		t.Fatalf("Classification = %v, want GameFatalError for a short event list", row.Classification)
	}
}

func TestDecodeRawGameReadsStateField(t *testing.T) {
	state, err := DecodeRawGame("g1", []byte(`{"state":"Complete","other":123}`))
	if err != nil {
		t.Fatalf("DecodeRawGame: %v", err)
	}
	if state != "Complete" {
		t.Fatalf("state = %q, want Complete", state)
	}
}

func TestDecodeRawGameRejectsInvalidJSON(t *testing.T) {
	if _, err := DecodeRawGame("g1", []byte(`not json`)); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestRunPageInsertsEveryGameAndRecordsTimings(t *testing.T) {
	fp := &fakePersistence{}
	d := &Driver{Persistence: fp}

	games := []RawGame{
		{GameID: "a", State: "Scheduled"},
		{GameID: "b", State: ""},
	}
	if err := d.RunPage(context.Background(), "ingest-1", games); err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	if len(fp.inserted) != 2 {
		t.Fatalf("inserted %d games, want 2", len(fp.inserted))
	}
	if fp.eventsCallCount != 0 {
		t.Fatalf("EventsForGames called %d times, want 0 (no completed games)", fp.eventsCallCount)
	}
	if _, ok := fp.timings.Phases["simulate"]; !ok {
		t.Error("expected a simulate phase timing")
	}
	if _, ok := fp.timings.Phases["insert"]; !ok {
		t.Error("expected an insert phase timing")
	}
	if _, ok := fp.timings.Phases["verify"]; ok {
		t.Error("did not expect a verify phase timing with no completed games")
	}
}

func TestRunPageSurfacesInsertError(t *testing.T) {
	wantErr := errors.New("insert failed")
	fp := &fakePersistence{insertErr: wantErr}
	d := &Driver{Persistence: fp}

	err := d.RunPage(context.Background(), "ingest-1", []RawGame{{GameID: "a", State: "Scheduled"}})
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("RunPage error = %v, want wrapping %v", err, wantErr)
	}
}

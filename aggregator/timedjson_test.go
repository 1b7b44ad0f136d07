package aggregator

import (
	"io"
	"testing"
	"time"
)

func TestTimedJSONAggregator_FlushesOnWindowExpiry(t *testing.T) {
	tar := NewTarAggregator()
	agg := NewTimedJSONAggregator(time.Minute, tar, "sensor1")

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return now }

	if err := agg.AddData(map[string]interface{}{"v": 1}); err != nil {
		t.Fatalf("AddData: %v", err)
	}
	if agg.Len() != 1 {
		t.Errorf("expected Len 1, got %d", agg.Len())
	}
	if tar.Len() != 0 {
		t.Errorf("expected no tar entries yet, got %d", tar.Len())
	}

	now = now.Add(2 * time.Minute)
	if err := agg.AddData(map[string]interface{}{"v": 2}); err != nil {
		t.Fatalf("AddData: %v", err)
	}
	if tar.Len() != 1 {
		t.Fatalf("expected the expired window to flush into the tar, got %d entries", tar.Len())
	}
	if agg.Len() != 1 {
		t.Errorf("expected Len 1 for the fresh window, got %d", agg.Len())
	}
}

func TestTimedJSONAggregator_FinalizeFlushesPartialWindow(t *testing.T) {
	tar := NewTarAggregator()
	agg := NewTimedJSONAggregator(time.Hour, tar, "sensor1")

	if err := agg.AddData(map[string]interface{}{"v": 1}); err != nil {
		t.Fatal(err)
	}
	if err := agg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if tar.Len() != 1 {
		t.Errorf("expected Finalize to flush the open window, got %d tar entries", tar.Len())
	}
	if agg.Len() != 0 {
		t.Errorf("expected Len 0 after Finalize, got %d", agg.Len())
	}
}

func TestTimedJSONAggregator_FinalizeOnEmptyWindowIsNoop(t *testing.T) {
	tar := NewTarAggregator()
	agg := NewTimedJSONAggregator(time.Hour, tar, "sensor1")

	if err := agg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if tar.Len() != 0 {
		t.Errorf("expected no tar entries from finalizing an empty aggregator, got %d", tar.Len())
	}
}

func TestTimedJSONAggregator_RecordPayloadIsCanonicalJSON(t *testing.T) {
	tar := NewTarAggregator()
	agg := NewTimedJSONAggregator(time.Hour, tar, "sensor1")

	if err := agg.AddData(map[string]interface{}{"b": 2, "a": 1}); err != nil {
		t.Fatal(err)
	}
	if err := agg.Finalize(); err != nil {
		t.Fatal(err)
	}
	data, err := tar.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	tr := ReadTarfileFromBytestring(data)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("tar.Next: %v", err)
	}
	if hdr.Name[len(hdr.Name)-5:] != ".json" {
		t.Errorf("expected a .json entry, got %q", hdr.Name)
	}
	body, err := io.ReadAll(tr)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"a":1,"b":2}]`
	if string(body) != want {
		t.Errorf("got %q, want %q", body, want)
	}
}

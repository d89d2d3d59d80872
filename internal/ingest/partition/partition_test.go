package partition

import "testing"

func TestLaneIsStable(t *testing.T) {
	ids := []string{"game-1", "game-2", "6812571a17b36c4c9b40e06d", ""}
	for _, id := range ids {
		first := Lane(id, 8)
		for i := 0; i < 5; i++ {
			if got := Lane(id, 8); got != first {
				t.Fatalf("Lane(%q, 8) not stable across calls: got %d, want %d", id, got, first)
			}
		}
	}
}

func TestLaneInRange(t *testing.T) {
	for lanes := 1; lanes <= 16; lanes++ {
		for i := 0; i < 100; i++ {
			id := string(rune('a' + i%26))
			lane := Lane(id, lanes)
			if lane < 0 || lane >= lanes {
				t.Fatalf("Lane(%q, %d) = %d, want in [0, %d)", id, lanes, lane, lanes)
			}
		}
	}
}

func TestLaneDistributesAcrossLanes(t *testing.T) {
	const lanes = 4
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i%10)) + string(rune('A'+i%26))
		seen[Lane(id, lanes)] = true
	}
	if len(seen) != lanes {
		t.Errorf("expected entity IDs to land in all %d lanes, only saw %d", lanes, len(seen))
	}
}

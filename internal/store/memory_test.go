package store

import (
	"context"
	"errors"
	"testing"

	"inmueblesv-catalog/internal/models"
)

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	m := NewMemoryStore()
	m.SetProperties([]models.Property{{ID: "1"}, {ID: "2"}})

	var got []PropertySnapshot
	sub, err := m.SubscribeProperties(context.Background(), func(s PropertySnapshot) {
		got = append(got, s)
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	if len(got) != 1 {
		t.Fatalf("expected 1 initial snapshot, got %d", len(got))
	}
	if len(got[0].Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got[0].Records))
	}
}

func TestSnapshotsArriveInEmissionOrder(t *testing.T) {
	m := NewMemoryStore()

	var got []PropertySnapshot
	sub, err := m.SubscribeProperties(context.Background(), func(s PropertySnapshot) {
		got = append(got, s)
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	m.SetProperties([]models.Property{{ID: "1"}})
	m.SetProperties([]models.Property{{ID: "1"}, {ID: "2"}})
	m.SetProperties([]models.Property{{ID: "2"}})

	if len(got) != 4 { // initial + three pushes
		t.Fatalf("expected 4 snapshots, got %d", len(got))
	}
	wantLens := []int{0, 1, 2, 1}
	for i, want := range wantLens {
		if len(got[i].Records) != want {
			t.Fatalf("snapshot %d has %d records, want %d", i, len(got[i].Records), want)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := NewMemoryStore()

	var calls int
	sub, err := m.SubscribeProperties(context.Background(), func(PropertySnapshot) {
		calls++
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	sub.Unsubscribe()
	m.SetProperties([]models.Property{{ID: "1"}})

	if calls != 1 { // only the initial snapshot
		t.Fatalf("callback fired %d times after unsubscribe", calls)
	}
}

func TestFailureSnapshotCarriesError(t *testing.T) {
	m := NewMemoryStore()
	m.SetProperties([]models.Property{{ID: "1"}})

	var last PropertySnapshot
	sub, err := m.SubscribeProperties(context.Background(), func(s PropertySnapshot) {
		last = s
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	pushErr := errors.New("store offline")
	m.FailProperties(pushErr)

	if last.Err == nil {
		t.Fatal("expected error snapshot")
	}
	if len(last.Records) != 0 {
		t.Fatal("failure snapshot must not carry records")
	}
}

func TestIndependentStreams(t *testing.T) {
	m := NewMemoryStore()

	var propCalls, reviewCalls int
	ps, err := m.SubscribeProperties(context.Background(), func(PropertySnapshot) { propCalls++ })
	if err != nil {
		t.Fatalf("subscribe properties failed: %v", err)
	}
	defer ps.Unsubscribe()
	rs, err := m.SubscribeReviews(context.Background(), func(ReviewSnapshot) { reviewCalls++ })
	if err != nil {
		t.Fatalf("subscribe reviews failed: %v", err)
	}
	defer rs.Unsubscribe()

	m.SetReviews([]models.Review{{ID: "r-1", Rating: 5}})

	if propCalls != 1 {
		t.Fatalf("review push leaked into property stream: %d calls", propCalls)
	}
	if reviewCalls != 2 {
		t.Fatalf("expected initial + push on review stream, got %d", reviewCalls)
	}
}

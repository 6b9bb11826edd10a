package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func keysOf(t *testing.T, m mongo.IndexModel) bson.D {
	t.Helper()
	keys, ok := m.Keys.(bson.D)
	if !ok {
		t.Fatalf("index keys should be bson.D, got %T", m.Keys)
	}
	return keys
}

func TestBookingLocksIndexes_ExpiresAtIsTTL(t *testing.T) {
	if len(BookingLocksIndexes) != 1 {
		t.Fatalf("expected a single lock index, got %d", len(BookingLocksIndexes))
	}

	idx := BookingLocksIndexes[0]
	keys := keysOf(t, idx)
	if len(keys) != 1 || keys[0].Key != "expires_at" {
		t.Fatalf("lock index should be on expires_at, got %v", keys)
	}

	if idx.Options == nil || idx.Options.ExpireAfterSeconds == nil {
		t.Fatal("lock index must carry an expiry so orphaned locks are reaped")
	}
	if *idx.Options.ExpireAfterSeconds != 0 {
		t.Errorf("locks should expire at expires_at itself, got ExpireAfterSeconds=%d", *idx.Options.ExpireAfterSeconds)
	}
}

func TestRoomsIndexes_BlockRoomIsUnique(t *testing.T) {
	if len(RoomsIndexes) != 1 {
		t.Fatalf("expected a single rooms index, got %d", len(RoomsIndexes))
	}

	idx := RoomsIndexes[0]
	keys := keysOf(t, idx)
	if len(keys) != 2 || keys[0].Key != "block" || keys[1].Key != "room_no" {
		t.Fatalf("rooms index should be on (block, room_no), got %v", keys)
	}

	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Error("rooms (block, room_no) index must be unique to reject duplicate registrations")
	}
}

func TestClubMembershipsIndexes_MembershipIsUnique(t *testing.T) {
	idx := ClubMembershipsIndexes[0]
	keys := keysOf(t, idx)
	if len(keys) != 2 || keys[0].Key != "club_name" || keys[1].Key != "student_email" {
		t.Fatalf("membership index should be on (club_name, student_email), got %v", keys)
	}

	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Error("membership index must be unique to reject duplicate memberships")
	}
}

func TestBookingsIndexes_CoverRoomSlotQuery(t *testing.T) {
	keys := keysOf(t, BookingsIndexes[0])

	want := []string{"block", "room_no", "start_time", "end_time"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i, k := range want {
		if keys[i].Key != k {
			t.Errorf("key %d: expected %q, got %q", i, k, keys[i].Key)
		}
	}
}

package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestStatusUUIDIsStable(t *testing.T) {
	first := StatusUUID("published")
	second := StatusUUID(" published ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil id")
	}
	if first != second {
		t.Fatalf("expected stable id, got %s and %s", first, second)
	}
}

func TestStatusUUIDIsCaseSensitive(t *testing.T) {
	if StatusUUID("published") == StatusUUID("Published") {
		t.Fatal("expected distinct ids for names differing in case")
	}
	if StatusUUID("published") == StatusUUID("draft") {
		t.Fatal("expected distinct ids for distinct names")
	}
}

func TestStatusUUIDEmptyName(t *testing.T) {
	if got := StatusUUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty name, got %s", got)
	}
}

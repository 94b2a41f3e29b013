package ops

import (
	"testing"
	"time"

	"github.com/hpungsan/recap/internal/errors"
)

func TestListNewestFirst(t *testing.T) {
	deps := newTestDeps(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		id := string(rune('A' + i))
		seedConversation(t, deps, "01"+id, "entry "+id, "body", base.AddDate(0, 0, i), nil)
	}

	output, err := List(deps, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(output.Items))
	}
	want := []string{"01C", "01B", "01A"}
	for i := range want {
		if output.Items[i].ID != want[i] {
			t.Errorf("item %d = %s, want %s", i, output.Items[i].ID, want[i])
		}
	}
}

func TestListPagination(t *testing.T) {
	deps := newTestDeps(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		id := string(rune('A' + i))
		seedConversation(t, deps, "01"+id, "entry "+id, "body", base.AddDate(0, 0, i), nil)
	}

	output, err := List(deps, ListInput{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 2 || !output.Pagination.HasMore || output.Pagination.Total != 5 {
		t.Errorf("page 1 = %d items, %+v", len(output.Items), output.Pagination)
	}

	output, err = List(deps, ListInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 1 || output.Pagination.HasMore {
		t.Errorf("last page = %d items, %+v", len(output.Items), output.Pagination)
	}

	output, err = List(deps, ListInput{Limit: 2, Offset: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 0 || output.Pagination.HasMore {
		t.Errorf("past-the-end page = %d items, %+v", len(output.Items), output.Pagination)
	}
}

func TestListEmptyIndex(t *testing.T) {
	deps := newTestDeps(t)

	output, err := List(deps, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 0 || output.Pagination.Total != 0 {
		t.Errorf("empty index list = %+v", output)
	}
}

func TestFetch(t *testing.T) {
	deps := newTestDeps(t)

	added, err := Add(deps, AddInput{Content: "fetchable body text", Title: "fetch me", Date: "2026-03-05"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	output, err := Fetch(deps, added.ID)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if output.Title != "fetch me" || output.Content != "fetchable body text" {
		t.Errorf("fetched = %+v", output)
	}
}

func TestFetchNotFound(t *testing.T) {
	deps := newTestDeps(t)

	_, err := Fetch(deps, "01UNKNOWNULIDVALUE0000000000")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch unknown = %v, want NOT_FOUND", err)
	}
}

func TestFetchEmptyID(t *testing.T) {
	deps := newTestDeps(t)

	_, err := Fetch(deps, "")
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("Fetch(\"\") = %v, want VALIDATION_ERROR", err)
	}
}

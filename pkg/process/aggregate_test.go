package process

import (
	"errors"
	"testing"

	"github.com/Sternrassler/user-analytics/pkg/model"
)

func TestAggregate_Statistics(t *testing.T) {
	users := []*model.User{
		{ID: 1, Name: "Leanne Graham"},
		{ID: 2, Name: "Ervin Howell"},
	}
	posts := []*model.Post{
		{ID: 1, UserID: 1, Title: "first", Body: "ab"},
		{ID: 2, UserID: 1, Title: "second", Body: "abcd"},
	}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if users[0].PostCount != 2 {
		t.Errorf("user 1 PostCount = %d, want 2", users[0].PostCount)
	}
	if users[0].AvgChars != 3.0 {
		t.Errorf("user 1 AvgChars = %v, want 3.0", users[0].AvgChars)
	}
	if users[1].PostCount != 0 {
		t.Errorf("user 2 PostCount = %d, want 0", users[1].PostCount)
	}
	if users[1].AvgChars != 0 {
		t.Errorf("user 2 AvgChars = %v, want 0", users[1].AvgChars)
	}
}

func TestAggregate_BodyTrimmedBeforeCounting(t *testing.T) {
	users := []*model.User{{ID: 1, Name: "Leanne Graham"}}
	posts := []*model.Post{
		{ID: 1, UserID: 1, Body: "  abc  "},
		{ID: 2, UserID: 1, Body: "\tabcde\n"},
	}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// len("abc")=3, len("abcde")=5 -> mean 4
	if users[0].AvgChars != 4.0 {
		t.Errorf("AvgChars = %v, want 4.0", users[0].AvgChars)
	}
}

func TestAggregate_PreservesPostOrder(t *testing.T) {
	users := []*model.User{{ID: 1, Name: "Leanne Graham"}}
	posts := []*model.Post{
		{ID: 10, UserID: 1, Body: "a"},
		{ID: 5, UserID: 2, Body: "b"},
		{ID: 20, UserID: 1, Body: "c"},
		{ID: 15, UserID: 1, Body: "d"},
	}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	got := users[0].Posts
	if len(got) != 3 {
		t.Fatalf("Expected 3 owned posts, got %d", len(got))
	}
	wantIDs := []int64{10, 20, 15}
	for i, p := range got {
		if p.ID != wantIDs[i] {
			t.Errorf("Posts[%d].ID = %d, want %d", i, p.ID, wantIDs[i])
		}
	}
}

func TestAggregate_PostsSharedByReference(t *testing.T) {
	users := []*model.User{{ID: 1, Name: "Leanne Graham"}}
	posts := []*model.Post{{ID: 1, UserID: 1, Body: "shared"}}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if users[0].Posts[0] != posts[0] {
		t.Error("Owned posts must share the original *Post, not a copy")
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	users := []*model.User{
		{ID: 1, Name: "Leanne Graham"},
		{ID: 2, Name: "Ervin Howell"},
	}
	posts := []*model.Post{
		{ID: 1, UserID: 1, Body: "ab"},
		{ID: 2, UserID: 1, Body: "abcd"},
		{ID: 3, UserID: 2, Body: "xyz"},
	}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("First Aggregate failed: %v", err)
	}

	firstCounts := []int{users[0].PostCount, users[1].PostCount}
	firstAvgs := []float64{users[0].AvgChars, users[1].AvgChars}

	if err := Aggregate(users, posts); err != nil {
		t.Fatalf("Second Aggregate failed: %v", err)
	}

	for i, u := range users {
		if u.PostCount != firstCounts[i] {
			t.Errorf("user %d PostCount changed on re-aggregation: %d != %d", u.ID, u.PostCount, firstCounts[i])
		}
		if u.AvgChars != firstAvgs[i] {
			t.Errorf("user %d AvgChars changed on re-aggregation: %v != %v", u.ID, u.AvgChars, firstAvgs[i])
		}
	}
}

func TestAggregate_NilPostAborts(t *testing.T) {
	u := &model.User{ID: 7, Name: "Kurtis Weissnat"}
	owned := []*model.Post{
		{ID: 1, UserID: 7, Body: "ok"},
		nil,
	}

	if err := aggregateUser(u, owned); err == nil {
		t.Fatal("Expected error for nil post")
	}
}

func TestAggregate_ProcessingErrorCarriesUserID(t *testing.T) {
	u := &model.User{ID: 7, Name: "Kurtis Weissnat"}
	perr := &ProcessingError{UserID: u.ID, Err: errors.New("boom")}

	if perr.UserID != 7 {
		t.Errorf("UserID = %d, want 7", perr.UserID)
	}
	if got := perr.Error(); got != "processing metrics for user 7: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(perr, perr.Err) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestSortByPostCount_StableDescending(t *testing.T) {
	a := &model.User{ID: 1, Name: "A", PostCount: 3}
	b := &model.User{ID: 2, Name: "B", PostCount: 7}
	c := &model.User{ID: 3, Name: "C", PostCount: 3}
	users := []*model.User{a, b, c}

	SortByPostCount(users)

	wantCounts := []int{7, 3, 3}
	for i, u := range users {
		if u.PostCount != wantCounts[i] {
			t.Errorf("users[%d].PostCount = %d, want %d", i, u.PostCount, wantCounts[i])
		}
	}

	// Equal counts keep input order: a before c.
	if users[1] != a || users[2] != c {
		t.Errorf("Stable order violated: got ids [%d, %d], want [1, 3]", users[1].ID, users[2].ID)
	}
}

func TestValidateForReport(t *testing.T) {
	t.Run("empty set is fatal", func(t *testing.T) {
		err := ValidateForReport(nil)
		if !errors.Is(err, ErrNoData) {
			t.Errorf("Expected ErrNoData, got %v", err)
		}
	})

	t.Run("all zero counts passes with warning", func(t *testing.T) {
		users := []*model.User{
			{ID: 1, Name: "A", PostCount: 0},
			{ID: 2, Name: "B", PostCount: 0},
		}
		if err := ValidateForReport(users); err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	})

	t.Run("normal set passes", func(t *testing.T) {
		users := []*model.User{{ID: 1, Name: "A", PostCount: 5}}
		if err := ValidateForReport(users); err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	})
}

func TestFilterActive(t *testing.T) {
	users := []*model.User{
		{ID: 1, PostCount: 5},
		{ID: 2, PostCount: 0},
		{ID: 3, PostCount: 7},
	}

	active := FilterActive(users, 1)
	if len(active) != 2 {
		t.Fatalf("Expected 2 active users, got %d", len(active))
	}
	if active[0].ID != 1 || active[1].ID != 3 {
		t.Errorf("Expected ids [1, 3], got [%d, %d]", active[0].ID, active[1].ID)
	}

	if got := FilterActive(users, 6); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("FilterActive(6) unexpected result: %v", got)
	}
}

func TestAveragePostLength(t *testing.T) {
	posts := []*model.Post{
		{Body: "ab"},
		{Body: "abcd"},
	}
	if got := AveragePostLength(posts); got != 3.0 {
		t.Errorf("AveragePostLength = %v, want 3.0", got)
	}

	if got := AveragePostLength(nil); got != 0 {
		t.Errorf("AveragePostLength(nil) = %v, want 0", got)
	}
}

func TestOverallAvgChars(t *testing.T) {
	users := []*model.User{
		{AvgChars: 2.0},
		{AvgChars: 4.0},
	}
	if got := OverallAvgChars(users); got != 3.0 {
		t.Errorf("OverallAvgChars = %v, want 3.0", got)
	}

	if got := OverallAvgChars(nil); got != 0 {
		t.Errorf("OverallAvgChars(nil) = %v, want 0", got)
	}
}

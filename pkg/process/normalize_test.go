package process

import (
	"encoding/json"
	"testing"
)

func TestNormalizeUsers_DropsIncompleteKeepsOrder(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "leanne@april.biz"}`),
		json.RawMessage(`{"name": "No Id"}`),
		json.RawMessage(`{"id": 3, "name": "Clementine Bauch", "username": "Samantha", "email": "clementine@yesenia.net"}`),
	}

	users := NormalizeUsers(raw)

	if len(users) != 2 {
		t.Fatalf("Expected 2 valid users, got %d", len(users))
	}
	if users[0].ID != 1 || users[1].ID != 3 {
		t.Errorf("Expected ids [1, 3] in input order, got [%d, %d]", users[0].ID, users[1].ID)
	}
}

func TestNormalizeUser_Results(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		skipReason string
	}{
		{
			name: "valid user",
			raw:  `{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "leanne@april.biz"}`,
		},
		{
			name: "valid without optional fields",
			raw:  `{"id": 2, "name": "Ervin Howell"}`,
		},
		{
			name:       "missing id",
			raw:        `{"name": "Ervin Howell"}`,
			skipReason: "missing_field",
		},
		{
			name:       "missing name",
			raw:        `{"id": 2}`,
			skipReason: "missing_field",
		},
		{
			name:       "empty name",
			raw:        `{"id": 2, "name": ""}`,
			skipReason: "missing_field",
		},
		{
			name:       "malformed email",
			raw:        `{"id": 4, "name": "Patricia Lebsack", "email": "not-an-email"}`,
			skipReason: "invalid_email",
		},
		{
			name:       "not an object",
			raw:        `"just a string"`,
			skipReason: "malformed",
		},
		{
			name:       "wrong id type",
			raw:        `{"id": "one", "name": "Leanne Graham"}`,
			skipReason: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeUser(json.RawMessage(tt.raw))

			if tt.skipReason == "" {
				if result.Skipped() {
					t.Fatalf("Expected valid user, skipped with reason %q", result.SkipReason)
				}
				return
			}

			if !result.Skipped() {
				t.Fatalf("Expected skip, got user %+v", result.User)
			}
			if result.SkipReason != tt.skipReason {
				t.Errorf("SkipReason = %q, want %q", result.SkipReason, tt.skipReason)
			}
		})
	}
}

func TestNormalizeUsers_ValuesCarriedOver(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "leanne@april.biz"}`),
	}

	users := NormalizeUsers(raw)
	if len(users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(users))
	}

	u := users[0]
	if u.Name != "Leanne Graham" || u.Username != "Bret" || u.Email != "leanne@april.biz" {
		t.Errorf("Unexpected user fields: %+v", u)
	}
	if u.PostCount != 0 || u.AvgChars != 0 || u.Posts != nil {
		t.Errorf("Derived fields must start zeroed: %+v", u)
	}
}

func TestNormalizePosts_DropsIndividually(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id": 1, "userId": 1, "title": "first", "body": "content one"}`),
		json.RawMessage(`{"id": 2, "title": "no owner", "body": "content"}`),
		json.RawMessage(`{"id": 3, "userId": 1, "body": "no title"}`),
		json.RawMessage(`{"id": 4, "userId": 2, "title": "no body"}`),
		json.RawMessage(`{"id": 5, "userId": 2, "title": "last", "body": "content five"}`),
	}

	posts := NormalizePosts(raw)

	if len(posts) != 2 {
		t.Fatalf("Expected 2 valid posts, got %d", len(posts))
	}
	if posts[0].ID != 1 || posts[1].ID != 5 {
		t.Errorf("Expected ids [1, 5] in input order, got [%d, %d]", posts[0].ID, posts[1].ID)
	}
	if posts[1].UserID != 2 {
		t.Errorf("UserID = %d, want 2", posts[1].UserID)
	}
}

func TestNormalizePosts_EmptyInput(t *testing.T) {
	if posts := NormalizePosts(nil); len(posts) != 0 {
		t.Errorf("Expected no posts, got %d", len(posts))
	}
}

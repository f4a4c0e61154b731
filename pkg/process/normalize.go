// Package process turns raw API records into validated domain objects and
// derives per-user post statistics from them.
package process

import (
	"encoding/json"
	"strings"

	"github.com/Sternrassler/user-analytics/pkg/model"
	"github.com/rs/zerolog/log"
)

// Skip reasons attached to dropped records.
const (
	reasonMalformed    = "malformed"
	reasonMissingField = "missing_field"
	reasonInvalidEmail = "invalid_email"
)

// UserResult is the outcome of normalizing one raw user record: either a
// value or a skip with a reason. Callers filter, nothing unwinds.
type UserResult struct {
	User       *model.User
	SkipReason string
}

// Skipped reports whether the record was dropped.
func (r UserResult) Skipped() bool { return r.User == nil }

// PostResult is the per-record outcome for posts.
type PostResult struct {
	Post       *model.Post
	SkipReason string
}

// Skipped reports whether the record was dropped.
func (r PostResult) Skipped() bool { return r.Post == nil }

// rawUser mirrors the wire shape with pointers on required fields so that
// absent keys are distinguishable from zero values.
type rawUser struct {
	ID       *int64  `json:"id"`
	Name     *string `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
}

type rawPost struct {
	ID     *int64  `json:"id"`
	UserID *int64  `json:"userId"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

// normalizeUser validates a single raw user record.
func normalizeUser(raw json.RawMessage) UserResult {
	var ru rawUser
	if err := json.Unmarshal(raw, &ru); err != nil {
		return UserResult{SkipReason: reasonMalformed}
	}

	if ru.ID == nil || ru.Name == nil || *ru.Name == "" {
		return UserResult{SkipReason: reasonMissingField}
	}

	if ru.Email != "" && !strings.Contains(ru.Email, "@") {
		return UserResult{SkipReason: reasonInvalidEmail}
	}

	return UserResult{User: &model.User{
		ID:       *ru.ID,
		Name:     *ru.Name,
		Username: ru.Username,
		Email:    ru.Email,
	}}
}

// normalizePost validates a single raw post record.
func normalizePost(raw json.RawMessage) PostResult {
	var rp rawPost
	if err := json.Unmarshal(raw, &rp); err != nil {
		return PostResult{SkipReason: reasonMalformed}
	}

	if rp.ID == nil || rp.UserID == nil || rp.Title == nil || rp.Body == nil {
		return PostResult{SkipReason: reasonMissingField}
	}

	return PostResult{Post: &model.Post{
		ID:     *rp.ID,
		UserID: *rp.UserID,
		Title:  *rp.Title,
		Body:   *rp.Body,
	}}
}

// NormalizeUsers converts raw user records into validated Users. Records
// missing required fields or failing shape validation are dropped and
// logged individually; output order follows valid input order.
func NormalizeUsers(raw []json.RawMessage) []*model.User {
	log.Info().Int("records", len(raw)).Msg("Normalizing users")

	users := make([]*model.User, 0, len(raw))
	dropped := 0

	for _, rec := range raw {
		result := normalizeUser(rec)
		if result.Skipped() {
			dropped++
			droppedRecordsTotal.WithLabelValues("user", result.SkipReason).Inc()
			logDropped("user", result.SkipReason, rec)
			continue
		}
		normalizedRecordsTotal.WithLabelValues("user").Inc()
		users = append(users, result.User)
	}

	log.Info().
		Int("valid", len(users)).
		Int("dropped", dropped).
		Msg("User normalization complete")

	return users
}

// NormalizePosts converts raw post records into validated Posts; invalid
// records are dropped individually and never abort the batch.
func NormalizePosts(raw []json.RawMessage) []*model.Post {
	log.Info().Int("records", len(raw)).Msg("Normalizing posts")

	posts := make([]*model.Post, 0, len(raw))
	dropped := 0

	for _, rec := range raw {
		result := normalizePost(rec)
		if result.Skipped() {
			dropped++
			droppedRecordsTotal.WithLabelValues("post", result.SkipReason).Inc()
			logDropped("post", result.SkipReason, rec)
			continue
		}
		normalizedRecordsTotal.WithLabelValues("post").Inc()
		posts = append(posts, result.Post)
	}

	log.Info().
		Int("valid", len(posts)).
		Int("dropped", dropped).
		Msg("Post normalization complete")

	return posts
}

// logDropped logs one skipped record with the best identifying context
// available: the id when the record carries one, the raw payload otherwise.
func logDropped(kind, reason string, raw json.RawMessage) {
	var probe struct {
		ID *int64 `json:"id"`
	}

	event := log.Warn().Str("kind", kind).Str("reason", reason)
	if err := json.Unmarshal(raw, &probe); err == nil && probe.ID != nil {
		event.Int64("id", *probe.ID).Msg("Record dropped")
		return
	}
	event.RawJSON("record", raw).Msg("Record dropped")
}

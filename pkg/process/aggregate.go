package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sternrassler/user-analytics/pkg/model"
	"github.com/rs/zerolog/log"
)

// Aggregate joins posts to their owning users and derives per-user
// statistics. Posts are pre-indexed by owner, so one pass over each
// collection suffices; relative post order is preserved.
//
// All three derived fields (Posts, PostCount, AvgChars) are fully
// overwritten on every call, so re-aggregating the same inputs is
// idempotent. A failure computing one user's statistics aborts the run with
// a *ProcessingError carrying the user id.
func Aggregate(users []*model.User, posts []*model.Post) error {
	byOwner := make(map[int64][]*model.Post, len(users))
	for _, p := range posts {
		byOwner[p.UserID] = append(byOwner[p.UserID], p)
	}

	for _, u := range users {
		if err := aggregateUser(u, byOwner[u.ID]); err != nil {
			log.Error().
				Err(err).
				Int64("user_id", u.ID).
				Msg("Metric computation failed")
			return &ProcessingError{UserID: u.ID, Err: err}
		}
	}

	return nil
}

// aggregateUser overwrites one user's derived fields from its owned posts.
func aggregateUser(u *model.User, owned []*model.Post) error {
	u.Posts = owned
	u.PostCount = len(owned)

	if len(owned) == 0 {
		u.AvgChars = 0
		log.Debug().Int64("user_id", u.ID).Msg("User has no posts")
		return nil
	}

	total := 0
	for _, p := range owned {
		if p == nil {
			return fmt.Errorf("nil post in owned set")
		}
		total += len(strings.TrimSpace(p.Body))
	}
	u.AvgChars = float64(total) / float64(len(owned))

	log.Debug().
		Int64("user_id", u.ID).
		Int("post_count", u.PostCount).
		Float64("avg_chars", u.AvgChars).
		Msg("Metrics computed")

	return nil
}

// SortByPostCount orders users by post count, descending. The sort is
// stable: users with equal counts keep their relative input order.
func SortByPostCount(users []*model.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].PostCount > users[j].PostCount
	})
}

// ValidateForReport is the gate before rendering. An empty user set is
// fatal; users with zero posts only warn.
func ValidateForReport(users []*model.User) error {
	if len(users) == 0 {
		log.Error().Msg("No valid users available for report")
		return ErrNoData
	}

	zero := 0
	for _, u := range users {
		if u.PostCount == 0 {
			zero++
		}
	}
	if zero > 0 {
		log.Warn().Int("count", zero).Msg("Users with zero posts detected")
	}

	return nil
}

// FilterActive returns the users with at least minPosts posts, preserving
// order.
func FilterActive(users []*model.User, minPosts int) []*model.User {
	active := make([]*model.User, 0, len(users))
	for _, u := range users {
		if u.PostCount >= minPosts {
			active = append(active, u)
		}
	}
	return active
}

// AveragePostLength returns the mean body length over posts, 0 for none.
func AveragePostLength(posts []*model.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += len(p.Body)
	}
	return float64(total) / float64(len(posts))
}

// OverallAvgChars returns the mean of the per-user averages, 0 for no users.
// It feeds the run summary and the notification body.
func OverallAvgChars(users []*model.User) float64 {
	if len(users) == 0 {
		return 0
	}
	total := 0.0
	for _, u := range users {
		total += u.AvgChars
	}
	return total / float64(len(users))
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// Submission is one standup: what a user did yesterday, plans today and what
// blocks them. CreatedAt is both the record's day and its freshness.
type Submission struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Yesterday string    `db:"yesterday" json:"yesterday"`
	Today     string    `db:"today" json:"today"`
	Blockers  string    `db:"blockers" json:"blockers"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TeamEntry is a submission joined with its owner's display fields.
type TeamEntry struct {
	Submission
	User User `db:"user" json:"user"`
}

// HistoryPeriod selects how far back a user's history goes.
type HistoryPeriod string

const (
	HistoryAll   HistoryPeriod = "all"
	HistoryWeek  HistoryPeriod = "week"
	HistoryMonth HistoryPeriod = "month"
)

// ParseHistoryPeriod maps a raw value to a HistoryPeriod; unknown values mean all.
func ParseHistoryPeriod(s string) HistoryPeriod {
	switch HistoryPeriod(s) {
	case HistoryWeek, HistoryMonth:
		return HistoryPeriod(s)
	default:
		return HistoryAll
	}
}

// TeamFilter selects the lookback window of a team snapshot.
type TeamFilter string

const (
	TeamToday     TeamFilter = "today"
	TeamYesterday TeamFilter = "yesterday"
	TeamWeek      TeamFilter = "week"
)

// ParseTeamFilter maps a raw value to a TeamFilter; unknown values mean week.
func ParseTeamFilter(s string) TeamFilter {
	switch TeamFilter(s) {
	case TeamToday, TeamYesterday:
		return TeamFilter(s)
	default:
		return TeamWeek
	}
}

package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/standup/internal/server/services"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	clock  *clockwork.FakeClock
	users  *services.UserService
	ledger *services.LedgerService
	team   *services.TeamService
	loc    *time.Location
}

func newSession(t *testing.T) *session {
	t.Helper()
	loc, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 9, 30, 0, 0, loc))
	cal := calendar.New(clock, loc)
	m := repomanager.NewMemoryRepositoryManager()
	return &session{
		clock:  clock,
		users:  services.NewUserService(m, clock, logging.Nop()),
		ledger: services.NewLedgerService(m, cal, nil, logging.Nop()),
		team:   services.NewTeamService(m, cal, nil, 0, logging.Nop()),
		loc:    loc,
	}
}

func (s *session) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp(s.ledger, s.team, s.users, s.loc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, io.Discard)
	app.Run(context.Background())
	return out.String()
}

func TestApp_RegisterSubmitAndRead(t *testing.T) {
	s := newSession(t)

	out := s.run(t,
		"check",
		"register", "alice", "alice@example.com",
		"check",
		"submit", "fixed the build", "", "pair on the parser", "", "",
		"submit",
		"check",
		"history week",
		"team today",
		"exit",
	)

	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Registered and logged in as alice")
	assert.Contains(t, out, "You have not submitted a standup today")
	assert.Contains(t, out, "Standup saved")
	assert.Contains(t, out, "Yesterday: fixed the build")
	assert.Contains(t, out, "Blockers:  No blockers")
	assert.Contains(t, out, "You already submitted a standup for today")
	assert.Contains(t, out, "You have submitted a standup today:")
	assert.Contains(t, out, "[Thu 2026-10-15 09:30]")
	assert.Contains(t, out, "== alice ==")
}

func TestApp_ValidationErrorsArePrinted(t *testing.T) {
	s := newSession(t)

	out := s.run(t,
		"register", "a", "not-an-email",
		"login ghost",
		"register", "bob", "bob@example.com",
		"submit", "ok", "", "no", "", "",
		"exit",
	)

	assert.Contains(t, out, "Error: Please provide a valid email address")
	assert.Contains(t, out, "Error: Username must be at least 3 characters")
	assert.Contains(t, out, "Error: User not found with this username")
	assert.Contains(t, out, "Error: Today's plan must be at least 3 characters")
	assert.Contains(t, out, "Error: Yesterday's update must be at least 3 characters")
	assert.NotContains(t, out, "Standup saved")
}

func TestApp_EditKeepsEmptyAnswers(t *testing.T) {
	s := newSession(t)
	u, err := s.users.Register(context.Background(), "carol", "carol@example.com")
	require.NoError(t, err)
	_, err = s.ledger.Create(context.Background(), u.ID, "old yesterday", "old today", "waiting on review")
	require.NoError(t, err)

	out := s.run(t,
		"login carol",
		"edit", "", "new today", "", "",
		"exit",
	)
	require.Contains(t, out, "Standup updated")

	got, err := s.ledger.HasSubmissionToday(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "old yesterday", got.Yesterday)
	assert.Equal(t, "new today", got.Today)
	assert.Equal(t, "waiting on review", got.Blockers)

	s.clock.Advance(24 * time.Hour)
	out = s.run(t, "login carol", "edit", "history", "logout", "check", "exit")
	assert.Contains(t, out, "Nothing to edit, use 'submit' first")
	assert.Contains(t, out, "Today:     new today")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "Please login first")
}

func TestApp_TeamAndEmptyHistory(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	for _, name := range []string{"zed", "amy"} {
		u, err := s.users.Register(ctx, name, name+"@example.com")
		require.NoError(t, err)
		_, err = s.ledger.Create(ctx, u.ID, "did a thing", "do a thing", "")
		require.NoError(t, err)
	}
	_, err := s.users.Register(ctx, "newbie", "newbie@example.com")
	require.NoError(t, err)

	out := s.run(t, "login newbie", "history", "team yesterday", "team", "exit")

	assert.Contains(t, out, "No standups")
	assert.Contains(t, out, "No team standups")
	amy := strings.Index(out, "== amy ==")
	zed := strings.Index(out, "== zed ==")
	require.NotEqual(t, -1, amy)
	require.NotEqual(t, -1, zed)
	assert.Less(t, amy, zed)
}

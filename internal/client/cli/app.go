package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/standup/internal/server/models"
)

type Ledger interface {
	HasSubmissionToday(ctx context.Context, userID string) (*models.Submission, error)
	Create(ctx context.Context, userID, yesterday, today, blockers string) (*models.Submission, error)
	Update(ctx context.Context, id, userID, yesterday, today, blockers string) (*models.Submission, error)
	ListForUser(ctx context.Context, userID string, period models.HistoryPeriod) ([]*models.Submission, error)
}

type Team interface {
	Snapshot(ctx context.Context, filter models.TeamFilter) ([]*models.TeamEntry, error)
}

type Directory interface {
	Register(ctx context.Context, userName, email string) (*models.User, error)
	Login(ctx context.Context, userName string) (*models.User, error)
}

type App struct {
	ledger Ledger
	team   Team
	users  Directory
	loc    *time.Location

	user    *models.User
	reader  *bufio.Reader
	out     io.Writer
	prompts io.Writer
}

// NewApp returns an App reading stdin and writing stdout. Prompts are only
// shown when stdin is a terminal.
func NewApp(ledger Ledger, team Team, users Directory, loc *time.Location) *App {
	var prompts io.Writer = io.Discard
	if interactive() {
		prompts = os.Stdout
	}
	return newApp(ledger, team, users, loc, os.Stdin, os.Stdout, prompts)
}

func newApp(ledger Ledger, team Team, users Directory, loc *time.Location, in io.Reader, out, prompts io.Writer) *App {
	if loc == nil {
		loc = time.UTC
	}
	return &App{
		ledger:  ledger,
		team:    team,
		users:   users,
		loc:     loc,
		reader:  bufio.NewReader(in),
		out:     out,
		prompts: prompts,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Standup CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out, a.prompts)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.user.UserName)
}

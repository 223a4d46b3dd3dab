package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/server/models"
)

var errNotLoggedIn = errors.New("not logged in")

const displayLayout = "Mon 2006-01-02 15:04"

func (a *App) requireLogin() error {
	if a.user == nil {
		fmt.Fprintln(a.out, "Please login first")
		return errNotLoggedIn
	}
	return nil
}

// report prints err; field errors print one line per field.
func (a *App) report(err error) error {
	fields := common.Fields(err)
	if len(fields) == 0 {
		if errors.Is(err, common.ErrorInternal) {
			fmt.Fprintln(a.out, "Error: something went wrong, try again later")
		} else {
			fmt.Fprintln(a.out, "Error:", err)
		}
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintln(a.out, "Error:", fields[k])
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Username", a.prompts)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.prompts)
	if err != nil {
		return err
	}

	u, err := a.users.Register(ctx, userName, email)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.UserName)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	var userName string
	if len(args) > 0 {
		userName = args[0]
	} else {
		var err error
		if userName, err = GetSimpleText(a.reader, "Username", a.prompts); err != nil {
			return err
		}
	}

	u, err := a.users.Login(ctx, userName)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Logged in as %s\n", u.UserName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Check(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s, err := a.ledger.HasSubmissionToday(ctx, a.user.ID)
	if err != nil {
		return a.report(err)
	}
	if s == nil {
		fmt.Fprintln(a.out, "You have not submitted a standup today")
		return nil
	}
	fmt.Fprintln(a.out, "You have submitted a standup today:")
	a.printStandup(s)
	return nil
}

func (a *App) Submit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	existing, err := a.ledger.HasSubmissionToday(ctx, a.user.ID)
	if err != nil {
		return a.report(err)
	}
	if existing != nil {
		fmt.Fprintln(a.out, "You already submitted a standup for today, use 'edit' to change it")
		return nil
	}

	yesterday, err := GetMultiline(a.reader, "What did you do yesterday?", a.prompts)
	if err != nil {
		return err
	}
	today, err := GetMultiline(a.reader, "What will you do today?", a.prompts)
	if err != nil {
		return err
	}
	blockers, err := GetSimpleText(a.reader, "Any blockers? (empty for none)", a.prompts)
	if err != nil {
		return err
	}

	s, err := a.ledger.Create(ctx, a.user.ID, yesterday, today, blockers)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Standup saved")
	a.printStandup(s)
	return nil
}

// Edit rewrites today's standup. An empty answer keeps the current text.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	current, err := a.ledger.HasSubmissionToday(ctx, a.user.ID)
	if err != nil {
		return a.report(err)
	}
	if current == nil {
		fmt.Fprintln(a.out, "Nothing to edit, use 'submit' first")
		return nil
	}
	a.printStandup(current)

	yesterday, err := GetMultiline(a.reader, "Yesterday (empty keeps current)", a.prompts)
	if err != nil {
		return err
	}
	today, err := GetMultiline(a.reader, "Today (empty keeps current)", a.prompts)
	if err != nil {
		return err
	}
	blockers, err := GetSimpleText(a.reader, "Blockers (empty keeps current)", a.prompts)
	if err != nil {
		return err
	}

	s, err := a.ledger.Update(ctx, current.ID, a.user.ID,
		orDefault(yesterday, current.Yesterday),
		orDefault(today, current.Today),
		orDefault(blockers, current.Blockers))
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Standup updated")
	a.printStandup(s)
	return nil
}

func (a *App) History(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	period := models.HistoryAll
	if len(args) > 0 {
		period = models.ParseHistoryPeriod(args[0])
	}

	list, err := a.ledger.ListForUser(ctx, a.user.ID, period)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No standups")
		return nil
	}
	for _, s := range list {
		a.printStandup(s)
	}
	return nil
}

func (a *App) Team(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	filter := models.TeamWeek
	if len(args) > 0 {
		filter = models.ParseTeamFilter(args[0])
	}

	entries, err := a.team.Snapshot(ctx, filter)
	if err != nil {
		return a.report(err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No team standups")
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].User.UserName < entries[j].User.UserName
	})
	for _, e := range entries {
		fmt.Fprintf(a.out, "== %s ==\n", e.User.UserName)
		a.printStandup(&e.Submission)
	}
	return nil
}

func (a *App) printStandup(s *models.Submission) {
	fmt.Fprintf(a.out, "[%s]\n", s.CreatedAt.In(a.loc).Format(displayLayout))
	fmt.Fprintf(a.out, "  Yesterday: %s\n", indent(s.Yesterday))
	fmt.Fprintf(a.out, "  Today:     %s\n", indent(s.Today))
	fmt.Fprintf(a.out, "  Blockers:  %s\n", indent(s.Blockers))
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n             ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

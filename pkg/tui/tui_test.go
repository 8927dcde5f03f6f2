package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/confirm"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/store"
)

var today = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type fixture struct {
	m     *Model
	svc   *app.Service
	srv   *apitest.Server
	token string
}

func newFixture(t *testing.T, signedIn bool) *fixture {
	t.Helper()
	ctx := context.Background()
	srv := apitest.NewServer(t)
	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(ctx))
	token, _ := srv.SeedUser("a@x.com", "dreamer", "password1")
	if signedIn {
		require.NoError(t, svc.Login(ctx, "a@x.com", "password1"))
	}
	m := New(svc, WithClock(func() time.Time { return today }), WithDebounce(time.Hour))
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &fixture{m: m, svc: svc, srv: srv, token: token}
}

func (f *fixture) seed(title, body string, mood dream.Mood, date string) dream.Dream {
	d := dream.Dream{Body: body, DreamDate: date}
	if title != "" {
		d.Title = &title
	}
	if mood != "" {
		d.Mood = &mood
	}
	return f.srv.SeedDream(f.token, d)
}

// load runs the journal and calendar fetches the way the program would.
func (f *fixture) load(t *testing.T) {
	t.Helper()
	require.Nil(t, f.m.refreshJournal()())
	f.update(journalChangedMsg{})
	f.update(f.m.loadCalendar()())
	f.update(f.m.loadTags()())
	f.update(f.m.loadStats()())
}

func (f *fixture) update(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = f.update(k)
	}
	return cmd
}

// typeText sends one key per rune.
func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.update(runes(string(r)))
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	saveKey  = tea.KeyMsg{Type: tea.KeyCtrlS}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// await runs cmd, expanding batches, until it yields a T. Commands that
// never produce one, like cursor blinks, are left to finish on their own.
func await[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	out := make(chan tea.Msg, 64)
	var exec func(tea.Cmd)
	exec = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					exec(sub)
				}
				return
			}
			select {
			case out <- msg:
			default:
			}
		}()
	}
	exec(cmd)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-out:
			if v, ok := msg.(T); ok {
				return v
			}
		case <-timeout:
			var zero T
			t.Fatalf("no %T produced", zero)
			return zero
		}
	}
}

func TestSignInFlow(t *testing.T) {
	f := newFixture(t, false)
	require.False(t, f.m.signedIn)
	f.m.Init()
	assert.Contains(t, f.m.View(), "Sign in")

	f.typeText("a@x.com")
	f.press(tabKey)
	f.typeText("password1")
	cmd := f.press(enterKey)
	assert.True(t, f.m.signin.submitting)

	done := await[authDoneMsg](t, cmd)
	require.NoError(t, done.err)
	f.update(done)

	assert.True(t, f.m.signedIn)
	assert.Equal(t, "Welcome, dreamer.", f.m.status)
	assert.Equal(t, 1, f.srv.Calls("POST /auth/login"))
	assert.Empty(t, f.m.signin.value(inEmail), "the form is cleared once signed in")
}

func TestSignInValidatesLocally(t *testing.T) {
	f := newFixture(t, false)
	f.m.Init()

	f.typeText("not-an-email")
	assert.Nil(t, f.press(enterKey))
	assert.Contains(t, f.m.signin.errs, "email")
	assert.Zero(t, f.srv.Calls("POST /auth/login"))
}

func TestRegisterMode(t *testing.T) {
	f := newFixture(t, false)
	f.m.Init()

	f.press(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, f.m.signin.register)
	assert.Contains(t, f.m.View(), "Create account")

	f.typeText("new@x.com")
	f.press(tabKey)
	f.typeText("newbie")
	f.press(tabKey)
	f.typeText("password1")
	f.press(tabKey)
	f.typeText("password1")
	done := await[authDoneMsg](t, f.press(saveKey))
	require.NoError(t, done.err)
	f.update(done)

	assert.True(t, f.m.signedIn)
	assert.Equal(t, "newbie", f.m.userName())
}

func TestExpiredSessionReturnsToSignIn(t *testing.T) {
	f := newFixture(t, true)
	msgs := make(chan tea.Msg, 32)
	f.m.send.Attach(func(msg tea.Msg) { msgs <- msg })
	f.load(t)
	require.True(t, f.m.signedIn)

	f.srv.Revoke(f.svc.Session.Token())
	f.m.refreshJournal()()

	timeout := time.After(5 * time.Second)
	for f.m.signedIn {
		select {
		case msg := <-msgs:
			f.update(msg)
		case <-timeout:
			t.Fatal("never returned to sign-in")
		}
	}
	assert.Equal(t, "Your session expired. Sign in again.", f.m.status)
	assert.Equal(t, tabJournal, f.m.tab)
}

func TestSessionEventsAreIdempotent(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)

	f.update(sessionMsg{event: session.Event{Kind: session.Unauthorized, State: session.Anonymous}})
	require.False(t, f.m.signedIn)
	f.update(sessionMsg{event: session.Event{Kind: session.Changed, State: session.Anonymous}})
	assert.False(t, f.m.signedIn)
	assert.Equal(t, "Your session expired. Sign in again.", f.m.status)
}

func TestJournalMoodFilter(t *testing.T) {
	f := newFixture(t, true)
	f.seed("Flying", "over the sea", dream.Peaceful, "2026-10-15")
	f.seed("Chase", "down a hallway", dream.Anxious, "2026-10-16")
	f.load(t)
	require.Len(t, f.m.journal.snap.Dreams, 2)

	cmd := f.press(runes("3"))
	require.NotNil(t, cmd)
	cmd()
	f.update(journalChangedMsg{})

	require.Len(t, f.m.journal.snap.Dreams, 1)
	assert.Equal(t, "Chase", f.m.journal.snap.Dreams[0].DisplayTitle())
	assert.Equal(t, dream.Anxious, f.m.journal.snap.Filter.Mood)

	f.press(runes("3"))()
	f.update(journalChangedMsg{})
	assert.Len(t, f.m.journal.snap.Dreams, 2, "pressing the same mood clears it")
}

func TestJournalEmptyStates(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)
	assert.Contains(t, f.m.View(), "No dreams yet")

	f.seed("Flying", "over the sea", dream.Peaceful, "2026-10-15")
	f.press(runes("3"))()
	f.update(journalChangedMsg{})
	assert.Contains(t, f.m.View(), "No dreams match these filters.")
}

func TestJournalSearchTyping(t *testing.T) {
	f := newFixture(t, true)
	f.seed("Flying", "over the sea", dream.Peaceful, "2026-10-15")
	f.load(t)

	f.press(runes("/"))
	require.True(t, f.m.journal.search.Focused())
	f.typeText("nq")
	assert.Nil(t, f.m.capture, "typed keys belong to the search box")
	assert.Equal(t, tabJournal, f.m.tab)

	cmd := f.press(enterKey)
	assert.False(t, f.m.journal.search.Focused())
	cmd()
	f.update(journalChangedMsg{})
	assert.Equal(t, "nq", f.m.journal.snap.Filter.Search)
	assert.Empty(t, f.m.journal.snap.Dreams)
}

func TestDeleteNeedsTwoPresses(t *testing.T) {
	f := newFixture(t, true)
	f.seed("First", "a", "", "2026-10-15")
	f.seed("Second", "b", "", "2026-10-16")
	f.load(t)
	first := f.m.journal.snap.Dreams[0]

	assert.Nil(t, f.press(runes("d")))
	assert.True(t, f.svc.Guard.Armed(app.DreamTarget(first.ID)))
	assert.Contains(t, f.m.status, "Press d again")

	// Moving away disarms.
	f.press(runes("j"))
	assert.False(t, f.svc.Guard.Armed(app.DreamTarget(first.ID)))
	f.press(runes("k"))
	assert.Nil(t, f.press(runes("d")))

	deleted := await[deletedMsg](t, f.press(runes("d")))
	require.NoError(t, deleted.err)
	f.update(deleted)

	assert.Equal(t, 1, f.srv.DreamCount())
	assert.Equal(t, 1, f.srv.Calls("DELETE /dreams/{id}"))
	assert.Contains(t, f.m.status, "Deleted dream")
}

func TestCaptureSave(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)

	f.press(runes("n"))
	require.NotNil(t, f.m.capture)
	assert.Equal(t, "2026-10-17", f.m.capture.form.DreamDate)

	f.typeText("Flying")
	f.press(tabKey)
	f.typeText("over the sea")
	f.press(tabKey)
	f.press(runes("1"))
	f.press(tabKey)
	f.press(runes("4"))
	f.press(tabKey, tabKey)
	f.typeText("sky")
	f.press(spaceKey)
	assert.Equal(t, []string{"sky"}, f.m.capture.form.Tags.Tags)
	assert.Contains(t, f.m.View(), "Record a dream")

	saved := await[savedMsg](t, f.press(saveKey))
	require.NoError(t, saved.err)
	assert.Equal(t, "Flying", saved.dream.DisplayTitle())
	require.NotNil(t, saved.dream.Mood)
	assert.Equal(t, dream.Peaceful, *saved.dream.Mood)
	require.NotNil(t, saved.dream.Lucidity)
	assert.Equal(t, 4, *saved.dream.Lucidity)

	f.update(saved)
	assert.Nil(t, f.m.capture)
	assert.True(t, strings.HasPrefix(f.m.status, "Recorded #"), f.m.status)
	assert.Equal(t, 1, f.srv.Calls("POST /dreams"))
}

func TestCaptureRequiresBody(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)

	f.press(runes("n"))
	f.typeText("Only a title")
	assert.Nil(t, f.press(saveKey))
	require.NotNil(t, f.m.capture)
	assert.Contains(t, f.m.capture.errs, "body")
	assert.Zero(t, f.srv.Calls("POST /dreams"))

	f.press(escKey)
	assert.Nil(t, f.m.capture)
}

func TestCaptureRatingClears(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)

	f.press(runes("n"))
	f.press(tabKey, tabKey, tabKey)
	f.press(runes("3"))
	require.NotNil(t, f.m.capture.form.Lucidity)
	f.press(runes("0"))
	assert.Nil(t, f.m.capture.form.Lucidity)
	f.press(runes("9"))
	assert.Nil(t, f.m.capture.form.Lucidity)
}

func TestEditPrefillsCapture(t *testing.T) {
	f := newFixture(t, true)
	d := f.seed("Flying", "over the sea", dream.Vivid, "2026-10-15")
	f.load(t)

	f.press(runes("e"))
	require.NotNil(t, f.m.capture)
	assert.Equal(t, d.ID, f.m.capture.form.ID)
	assert.Equal(t, "Flying", f.m.capture.title.Value())
	assert.Contains(t, f.m.View(), "Edit dream #")

	saved := await[savedMsg](t, f.press(saveKey))
	require.NoError(t, saved.err)
	assert.True(t, saved.editing)
	assert.Equal(t, 1, f.srv.Calls("PUT /dreams/{id}"))
}

func TestCalendarNavigation(t *testing.T) {
	f := newFixture(t, true)
	f.seed("Flying", "over the sea", dream.Peaceful, "2026-11-17")
	f.load(t)

	f.press(tabKey)
	require.Equal(t, tabCalendar, f.m.tab)
	assert.Contains(t, f.m.View(), "October 2026")

	f.press(runes("]"))
	assert.Equal(t, "November 2026", f.m.calendar.window.Title())
	assert.Equal(t, "2026-11-17", f.m.calendar.cursor.Format(dream.DateLayout))

	f.press(enterKey)
	require.True(t, f.m.calendar.selection.Open())
	assert.Len(t, f.m.calendar.selection.Dreams(), 1)

	f.press(runes("l"))
	assert.Equal(t, "2026-11-18", f.m.calendar.selection.Date)
	assert.Empty(t, f.m.calendar.selection.Dreams())

	f.press(runes("n"))
	require.NotNil(t, f.m.capture)
	assert.Equal(t, "2026-11-18", f.m.capture.form.DreamDate)
	f.press(escKey)

	f.press(runes("."))
	assert.Equal(t, "October 2026", f.m.calendar.window.Title())

	f.press(runes("y"))
	assert.Contains(t, f.m.View(), "2026")
	assert.Contains(t, f.m.View(), "less")
}

func TestSettingsThemeCycle(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)
	before := f.svc.Theme.Current().ID

	f.press(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, tabSettings, f.m.tab)

	f.press(runes("l"))
	after := f.svc.Theme.Current()
	assert.NotEqual(t, before, after.ID)
	assert.Equal(t, "Theme: "+after.Name, f.m.status)
	assert.Equal(t, after.Colors.Ink, f.m.theme.Var("--ink"))

	f.press(runes("h"))
	assert.Equal(t, before, f.svc.Theme.Current().ID)
}

func TestSettingsChangeUsername(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)
	f.press(tea.KeyMsg{Type: tea.KeyShiftTab})

	f.press(runes("u"))
	require.True(t, f.m.settings.editing())
	assert.Equal(t, "dreamer", f.m.settings.value(0))

	// Typing must not trigger shortcuts while the form is open.
	f.typeText("x")
	assert.Equal(t, "dreamerx", f.m.settings.value(0))

	done := await[settingsDoneMsg](t, f.press(enterKey))
	require.NoError(t, done.err)
	f.update(done)
	assert.False(t, f.m.settings.editing())
	assert.Equal(t, "dreamerx", f.m.userName())
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t, true)
	f.load(t)
	f.press(tea.KeyMsg{Type: tea.KeyShiftTab})

	assert.Nil(t, f.press(runes("D")))
	assert.True(t, f.svc.Guard.Armed(app.AccountTarget))
	assert.Contains(t, f.m.View(), "Press D again to confirm.")

	done := await[accountDeletedMsg](t, f.press(runes("D")))
	require.NoError(t, done.err)
	f.update(done)

	assert.False(t, f.m.signedIn)
	assert.Equal(t, "Account deleted.", f.m.status)
	assert.False(t, f.svc.Session.Authenticated())
}

func TestTabActivationRefetches(t *testing.T) {
	f := newFixture(t, true)
	f.seed("First", "a", "", "2026-10-15")
	f.load(t)
	require.Nil(t, f.m.calendar.index.Get("2026-10-16"))
	require.Equal(t, 1, f.m.stats.detailed.TotalDreams)

	// recorded from another terminal while the ui runs
	f.seed("Elsewhere", "b", dream.Vivid, "2026-10-16")

	cmd := f.press(tabKey)
	require.Equal(t, tabCalendar, f.m.tab)
	assert.True(t, f.m.calendar.loaded, "the current grid stays up while refetching")
	f.update(await[calendarLoadedMsg](t, cmd))
	assert.NotNil(t, f.m.calendar.index.Get("2026-10-16"))

	cmd = f.press(tabKey)
	require.Equal(t, tabStats, f.m.tab)
	f.update(await[statsLoadedMsg](t, cmd))
	assert.Equal(t, 2, f.m.stats.detailed.TotalDreams)

	assert.Nil(t, f.press(tabKey), "settings needs no fetch")
}

func TestSwitchingTabsDisarms(t *testing.T) {
	f := newFixture(t, true)
	f.seed("First", "a", "", "2026-10-15")
	f.load(t)

	f.press(runes("d"))
	require.NotZero(t, f.m.journal.confirming)
	f.press(tabKey)
	assert.Zero(t, f.m.journal.confirming)
	assert.False(t, f.svc.Guard.Armed(app.DreamTarget(f.m.journal.snap.Dreams[0].ID)))
}

func TestExplain(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{account.FieldErrors{"password": "Too short", "email": "Invalid email"}, "Invalid email; Too short"},
		{session.ErrNoSession, "Not signed in."},
		{confirm.ErrNotArmed, "Confirm the action first."},
		{capture.ErrSaving, "Still saving…"},
		{&api.RequestError{Message: "connection refused"}, "Cannot reach the server: connection refused"},
		{&api.RequestError{Status: 500, Message: "boom"}, "boom"},
		{errors.New("plain"), "plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, explain(tc.err))
	}
}

func TestSenderQueuesUntilAttached(t *testing.T) {
	s := &sender{}
	s.Send(journalChangedMsg{})

	got := make(chan tea.Msg, 1)
	s.Attach(func(msg tea.Msg) { got <- msg })
	select {
	case msg := <-got:
		assert.IsType(t, journalChangedMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("queued message was not delivered")
	}
}

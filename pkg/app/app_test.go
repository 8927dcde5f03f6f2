package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/confirm"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/store"
)

func newService(t *testing.T) (*Service, *apitest.Server, *store.Memory) {
	t.Helper()
	srv := apitest.NewServer(t)
	storage := store.NewMemory()
	s := New(storage, srv.URL, nil)
	require.NoError(t, s.Init(context.Background()))
	return s, srv, storage
}

func signIn(t *testing.T, s *Service, srv *apitest.Server) {
	t.Helper()
	srv.SeedUser("a@x.com", "dreamer", "password1")
	require.NoError(t, s.Login(context.Background(), "a@x.com", "password1"))
}

func TestRegistrationValidationBlocksNetwork(t *testing.T) {
	s, srv, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name                               string
		email, username, password, confirm string
		field                              string
	}{
		{"email", "not-an-email", "dreamer", "password1", "password1", "email"},
		{"short username", "a@x.com", "ab", "password1", "password1", "username"},
		{"long username", "a@x.com", "abcdefghijklmnopqrstu", "password1", "password1", "username"},
		{"username chars", "a@x.com", "dream er", "password1", "password1", "username"},
		{"password", "a@x.com", "dreamer", "short", "short", "password"},
		{"confirm", "a@x.com", "dreamer", "password1", "password2", "confirm_password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Register(ctx, tc.email, tc.username, tc.password, tc.confirm)
			var fields account.FieldErrors
			require.ErrorAs(t, err, &fields)
			assert.Contains(t, fields, tc.field)
		})
	}
	assert.Zero(t, srv.Calls("POST /auth/register"))

	require.NoError(t, s.Register(ctx, "a@x.com", "dream_er-1", "password1", "password1"))
	assert.Equal(t, 1, srv.Calls("POST /auth/register"))
	assert.True(t, s.Session.Authenticated())
}

func TestSignedOutOperationsFailFast(t *testing.T) {
	s, srv, _ := newService(t)
	ctx := context.Background()

	_, err := s.Dreams(ctx, api.ListParams{})
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = s.Calendar(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.Zero(t, srv.Calls("GET /dreams"))
}

func TestDeleteDreamNeedsConfirmation(t *testing.T) {
	s, srv, _ := newService(t)
	signIn(t, s, srv)
	ctx := context.Background()

	f := capture.New(time.Now())
	f.Body = "A staircase"
	d, err := s.Save(ctx, f)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteDream(ctx, d.ID), confirm.ErrNotArmed)
	assert.Equal(t, 1, srv.DreamCount())

	s.Guard.Arm(DreamTarget(d.ID + 1))
	assert.ErrorIs(t, s.DeleteDream(ctx, d.ID), confirm.ErrNotArmed, "armed for a different dream")

	s.Guard.Arm(DreamTarget(d.ID))
	require.NoError(t, s.DeleteDream(ctx, d.ID))
	assert.Zero(t, srv.DreamCount())
}

func TestDeleteAccountSignsOut(t *testing.T) {
	s, srv, storage := newService(t)
	signIn(t, s, srv)
	ctx := context.Background()

	_, err := s.DeleteAccount(ctx)
	assert.ErrorIs(t, err, confirm.ErrNotArmed)
	assert.Zero(t, srv.Calls("DELETE /auth/delete-account"))

	s.Guard.Arm(AccountTarget)
	_, err = s.DeleteAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Anonymous, s.Session.State())
	_, _, ok := storage.LoadSession()
	assert.False(t, ok)
}

func TestChangeUsername(t *testing.T) {
	s, srv, storage := newService(t)
	signIn(t, s, srv)
	ctx := context.Background()

	_, err := s.ChangeUsername(ctx, "dreamer")
	var fields account.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "New username is the same as current username", fields["username"])
	assert.Zero(t, srv.Calls("PUT /auth/change-username"))

	u, err := s.ChangeUsername(ctx, "sleeper")
	require.NoError(t, err)
	assert.Equal(t, "sleeper", u.Username)
	assert.Equal(t, "sleeper", s.Session.User().Username)
	_, raw, ok := storage.LoadSession()
	require.True(t, ok)
	assert.Contains(t, string(raw), "sleeper")
}

func TestChangePassword(t *testing.T) {
	s, srv, _ := newService(t)
	signIn(t, s, srv)
	ctx := context.Background()

	_, err := s.ChangePassword(ctx, "password1", "newpassword", "different")
	require.Error(t, err)
	assert.Zero(t, srv.Calls("PUT /auth/change-password"))

	msg, err := s.ChangePassword(ctx, "password1", "newpassword", "newpassword")
	require.NoError(t, err)
	assert.True(t, msg.Success)

	require.NoError(t, s.Logout())
	require.NoError(t, s.Login(ctx, "a@x.com", "newpassword"))
}

func TestCalendarFetchesEverything(t *testing.T) {
	s, srv, _ := newService(t)
	signIn(t, s, srv)
	ctx := context.Background()
	for _, date := range []string{"2024-03-10", "2024-03-10", "2024-03-12"} {
		f := capture.NewFor(date)
		f.Body = "dream on " + date
		_, err := s.Save(ctx, f)
		require.NoError(t, err)
	}

	ix, err := s.Calendar(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.DaysRecorded())
	assert.Len(t, ix.Get("2024-03-10").Dreams, 2)
}

func TestApplyStorageEvents(t *testing.T) {
	s, _, storage := newService(t)

	require.NoError(t, storage.Set(store.KeyTheme, "forest"))
	s.Apply(store.Event{Type: store.EventThemeChanged})
	assert.Equal(t, "forest", s.Theme.Current().ID)

	require.NoError(t, storage.SaveSession("opaque", []byte(`{"id":3,"username":"elsewhere"}`)))
	s.Apply(store.Event{Type: store.EventSessionChanged})
	assert.True(t, s.Session.Authenticated())
	assert.Equal(t, "elsewhere", s.Session.User().Username)
}

func TestBuildReport(t *testing.T) {
	mood := func(m dream.Mood) *dream.Mood { return &m }
	dreams := []dream.Dream{
		{ID: 1, DreamDate: "2024-03-01", Mood: mood(dream.Eerie)},
		{ID: 2, DreamDate: "2024-03-05", Mood: mood(dream.Vivid), Lucidity: dream.Ptr(5)},
		{ID: 3, DreamDate: "2024-03-05", Mood: mood(dream.Vivid)},
		{ID: 4, DreamDate: "2024-03-07", Lucidity: dream.Ptr(2)},
		{ID: 5, DreamDate: "2024-03-09"},
	}
	until := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	res := BuildReport(dreams, until, until.AddDate(0, 0, -6))

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Days)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "2024-03-07", res.Sections[0].Date)
	assert.Equal(t, "2024-03-05", res.Sections[1].Date)
	assert.Equal(t, 5, res.MaxLucidity)
	assert.Equal(t, dream.Vivid, res.TopMood)
	assert.True(t, res.Since.Before(res.Until))
}

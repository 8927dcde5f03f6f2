// Package apitest runs an in-memory imitation of the dream journal API for
// tests of the client and of everything layered on it.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

type user struct {
	account.User
	password string
}

// Server is a fake backend. All fields are guarded by mu; use the accessor
// methods from tests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[int64]*user
	tokens   map[string]int64
	dreams   map[int64]*dream.Dream
	nextUser int64
	nextID   int64
	calls    map[string]int
	auth     []string
	now      func() time.Time
}

// NewServer starts a fake backend that is closed with the test.
func NewServer(t testing.TB) *Server {
	s := &Server{
		users:  make(map[int64]*user),
		tokens: make(map[string]int64),
		dreams: make(map[int64]*dream.Dream),
		calls:  make(map[string]int),
		now:    time.Now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.register)
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("GET /auth/me", s.authed(s.me))
	mux.HandleFunc("PUT /auth/change-password", s.authed(s.changePassword))
	mux.HandleFunc("PUT /auth/change-username", s.authed(s.changeUsername))
	mux.HandleFunc("DELETE /auth/delete-account", s.authed(s.deleteAccount))
	mux.HandleFunc("GET /dreams", s.authed(s.listDreams))
	mux.HandleFunc("POST /dreams", s.authed(s.createDream))
	mux.HandleFunc("GET /dreams/{id}", s.authed(s.getDream))
	mux.HandleFunc("PUT /dreams/{id}", s.authed(s.updateDream))
	mux.HandleFunc("DELETE /dreams/{id}", s.authed(s.deleteDream))
	mux.HandleFunc("GET /tags", s.authed(s.listTags))
	mux.HandleFunc("GET /stats", s.authed(s.summary))
	mux.HandleFunc("GET /stats/detailed", s.authed(s.detailed))
	mux.HandleFunc("GET /backup", s.authed(s.backup))
	mux.HandleFunc("POST /import", s.authed(s.importDreams))

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+routeOf(r.URL.Path)]++
		s.auth = append(s.auth, r.Header.Get("Authorization"))
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Client returns an api.Client pointed at the fake.
func (s *Server) Client(opts ...api.Option) *api.Client {
	return api.New(s.URL, opts...)
}

// Calls returns how often "METHOD /route" was hit, e.g. "POST /dreams" or
// "GET /dreams/{id}".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// AuthHeaders returns the Authorization header of every request so far.
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.auth...)
}

// LastAuthHeader returns the Authorization header of the latest request.
func (s *Server) LastAuthHeader() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.auth) == 0 {
		return ""
	}
	return s.auth[len(s.auth)-1]
}

// SeedUser creates an account and returns a token for it.
func (s *Server) SeedUser(email, username, password string) (string, account.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUser(email, username, password)
	return s.issue(u.ID), u.User
}

// SeedDream stores d for the owner of token and returns the stored copy.
func (s *Server) SeedDream(token string, d dream.Dream) dream.Dream {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	d.ID = s.nextID
	d.UserID = s.tokens[token]
	if d.CreatedAt.IsZero() {
		d.CreatedAt = dream.Timestamp{Time: s.now().UTC().Add(time.Duration(d.ID) * time.Second)}
	}
	d.UpdatedAt = d.CreatedAt
	if d.Tags == nil {
		d.Tags = []string{}
	}
	cp := d
	s.dreams[d.ID] = &cp
	return cp
}

// Revoke invalidates token so later requests answer 401.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// DreamCount returns the number of stored dreams across all users.
func (s *Server) DreamCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dreams)
}

func routeOf(path string) string {
	if strings.HasPrefix(path, "/dreams/") {
		return "/dreams/{id}"
	}
	return path
}

func (s *Server) addUser(email, username, password string) *user {
	s.nextUser++
	u := &user{
		User: account.User{
			ID:        s.nextUser,
			Email:     email,
			Username:  username,
			CreatedAt: dream.Timestamp{Time: s.now().UTC()},
		},
		password: password,
	}
	s.users[u.ID] = u
	return u
}

func (s *Server) issue(userID int64) string {
	token := fmt.Sprintf("token-%d-%d", userID, len(s.tokens)+1)
	s.tokens[token] = userID
	return token
}

type handler func(w http.ResponseWriter, r *http.Request, u *user)

func (s *Server) authed(h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		id, ok := s.tokens[token]
		u := s.users[id]
		s.mu.Unlock()
		if !ok || u == nil {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		h(w, r, u)
	}
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Username, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == in.Email {
			detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		if u.Username == in.Username {
			detail(w, http.StatusBadRequest, "Username already taken")
			return
		}
	}
	u := s.addUser(in.Email, in.Username, in.Password)
	writeJSON(w, http.StatusOK, account.AuthResponse{AccessToken: s.issue(u.ID), TokenType: "bearer", User: u.User})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == in.Email && u.password == in.Password {
			writeJSON(w, http.StatusOK, account.AuthResponse{AccessToken: s.issue(u.ID), TokenType: "bearer", User: u.User})
			return
		}
	}
	detail(w, http.StatusUnauthorized, "Invalid email or password")
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, u.User)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request, u *user) {
	var in struct {
		Current string `json:"current_password"`
		Next    string `json:"new_password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Current != u.password {
		detail(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	u.password = in.Next
	writeJSON(w, http.StatusOK, account.Message{Success: true, Message: "Password changed successfully"})
}

func (s *Server) changeUsername(w http.ResponseWriter, r *http.Request, u *user) {
	var in struct{ Username string }
	_ = json.NewDecoder(r.Body).Decode(&in)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.users {
		if other.ID != u.ID && other.Username == in.Username {
			detail(w, http.StatusBadRequest, "Username already taken")
			return
		}
	}
	u.Username = in.Username
	writeJSON(w, http.StatusOK, u.User)
}

func (s *Server) deleteAccount(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.dreams {
		if d.UserID == u.ID {
			delete(s.dreams, id)
		}
	}
	for token, id := range s.tokens {
		if id == u.ID {
			delete(s.tokens, token)
		}
	}
	delete(s.users, u.ID)
	writeJSON(w, http.StatusOK, account.Message{Success: true, Message: "Account deleted successfully"})
}

func (s *Server) owned(u *user) []dream.Dream {
	out := make([]dream.Dream, 0)
	for _, d := range s.dreams {
		if d.UserID == u.ID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}

func (s *Server) listDreams(w http.ResponseWriter, r *http.Request, u *user) {
	q := r.URL.Query()
	limit := 50
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = v
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	search := strings.ToLower(q.Get("search"))

	s.mu.Lock()
	all := s.owned(u)
	s.mu.Unlock()

	out := make([]dream.Dream, 0, len(all))
	for _, d := range all {
		if search != "" {
			title := ""
			if d.Title != nil {
				title = *d.Title
			}
			if !strings.Contains(strings.ToLower(title), search) && !strings.Contains(strings.ToLower(d.Body), search) {
				continue
			}
		}
		if m := q.Get("mood"); m != "" && (d.Mood == nil || string(*d.Mood) != m) {
			continue
		}
		if tag := q.Get("tag"); tag != "" && !dream.HasTag(d.Tags, tag) {
			continue
		}
		out = append(out, d)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) find(w http.ResponseWriter, r *http.Request, u *user) *dream.Dream {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid id")
		return nil
	}
	d, ok := s.dreams[id]
	if !ok || d.UserID != u.ID {
		detail(w, http.StatusNotFound, "Dream not found")
		return nil
	}
	return d
}

func (s *Server) getDream(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.find(w, r, u); d != nil {
		writeJSON(w, http.StatusOK, d)
	}
}

func (s *Server) createDream(w http.ResponseWriter, r *http.Request, u *user) {
	var in dream.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := dream.Timestamp{Time: s.now().UTC()}
	d := &dream.Dream{
		ID: s.nextID, UserID: u.ID, Title: in.Title, Body: in.Body, Mood: in.Mood,
		Lucidity: in.Lucidity, SleepQuality: in.SleepQuality, Tags: in.Tags,
		DreamDate: in.DreamDate, CreatedAt: now, UpdatedAt: now,
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.DreamDate == "" {
		d.DreamDate = now.Format(dream.DateLayout)
	}
	s.dreams[d.ID] = d
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDream(w http.ResponseWriter, r *http.Request, u *user) {
	var in dream.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.find(w, r, u)
	if d == nil {
		return
	}
	d.Title, d.Body, d.Mood = in.Title, in.Body, in.Mood
	d.Lucidity, d.SleepQuality = in.Lucidity, in.SleepQuality
	if in.Tags != nil {
		d.Tags = in.Tags
	}
	if in.DreamDate != "" {
		d.DreamDate = in.DreamDate
	}
	d.UpdatedAt = dream.Timestamp{Time: s.now().UTC()}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDream(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.find(w, r, u)
	if d == nil {
		return
	}
	delete(s.dreams, d.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTags(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	all := s.owned(u)
	s.mu.Unlock()
	set := map[string]struct{}{}
	for _, d := range all {
		for _, t := range d.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) summary(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	all := s.owned(u)
	s.mu.Unlock()
	out := stats.Stats{Total: len(all), Moods: map[string]int{}}
	sum, n := 0, 0
	for _, d := range all {
		if d.Mood != nil {
			out.Moods[string(*d.Mood)]++
		}
		if d.Lucidity != nil {
			sum += *d.Lucidity
			n++
		}
	}
	if n > 0 {
		avg := float64(sum) / float64(n)
		out.AvgLucidity = &avg
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) detailed(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	all := s.owned(u)
	s.mu.Unlock()
	out := stats.Detailed{TotalDreams: len(all)}
	moods := map[string]int{}
	tags := map[string]int{}
	for _, d := range all {
		if d.Mood != nil {
			moods[string(*d.Mood)]++
		}
		for _, t := range d.Tags {
			tags[t]++
		}
	}
	for m, c := range moods {
		out.MoodDistribution = append(out.MoodDistribution, stats.MoodCount{Mood: m, Count: c})
	}
	sort.Slice(out.MoodDistribution, func(i, j int) bool { return out.MoodDistribution[i].Count > out.MoodDistribution[j].Count })
	for t, c := range tags {
		out.TopTags = append(out.TopTags, stats.TagCount{Tag: t, Count: c})
	}
	sort.Slice(out.TopTags, func(i, j int) bool { return out.TopTags[i].Count > out.TopTags[j].Count })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) backup(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	all := s.owned(u)
	now := s.now().UTC()
	s.mu.Unlock()
	w.Header().Set("Content-Disposition", "attachment; filename="+api.BackupFilename(now))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"export_date": now.Format(time.RFC3339), "version": "1.0",
		"total_dreams": len(all), "dreams": all,
	})
}

func (s *Server) importDreams(w http.ResponseWriter, r *http.Request, u *user) {
	f, _, err := r.FormFile("file")
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer func() { _ = f.Close() }()
	b, _ := io.ReadAll(f)
	var in struct {
		Dreams []dream.Dream `json:"dreams"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		detail(w, http.StatusBadRequest, "Invalid JSON file")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := api.ImportResult{Success: true, Total: len(in.Dreams)}
	existing := map[string]bool{}
	for _, d := range s.dreams {
		if d.UserID == u.ID {
			existing[d.CreatedAt.String()] = true
		}
	}
	for _, d := range in.Dreams {
		if existing[d.CreatedAt.String()] {
			res.Skipped++
			continue
		}
		s.nextID++
		d.ID, d.UserID = s.nextID, u.ID
		cp := d
		s.dreams[cp.ID] = &cp
		res.Imported++
	}
	writeJSON(w, http.StatusOK, res)
}

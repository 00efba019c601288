package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saafhawa/petition/internal/auth"
	"github.com/saafhawa/petition/internal/config"
	httpmiddleware "github.com/saafhawa/petition/internal/http/middleware"
	"github.com/saafhawa/petition/internal/petition"
	"github.com/saafhawa/petition/internal/service"
)

type fakeRepo struct {
	signatures []petition.Signature
	nextNumber int64
}

func (f *fakeRepo) Create(ctx context.Context, input petition.CreateSignatureInput) (*petition.Signature, error) {
	f.nextNumber++
	sig := petition.Signature{
		ID:              uuid.New(),
		SignatureNumber: f.nextNumber,
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		CreatedAt:       time.Now(),
	}
	f.signatures = append(f.signatures, sig)
	return &sig, nil
}

func (f *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*petition.Signature, error) {
	for _, sig := range f.signatures {
		if sig.ID == id {
			out := sig
			return &out, nil
		}
	}
	return nil, petition.ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter petition.ListFilter) ([]petition.Signature, int64, error) {
	var matched []petition.Signature
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, sig := range f.signatures {
		if search != "" &&
			!strings.Contains(strings.ToLower(sig.Name), search) &&
			!strings.Contains(strings.ToLower(sig.Phone), search) {
			continue
		}
		matched = append(matched, sig)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]petition.Signature, error) {
	return f.signatures, nil
}

func (f *fakeRepo) Recent(ctx context.Context, limit int) ([]petition.Signature, error) {
	return f.signatures, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, sig := range f.signatures {
		if sig.ID == id {
			f.signatures = append(f.signatures[:i], f.signatures[i+1:]...)
			return nil
		}
	}
	return petition.ErrNotFound
}

func (f *fakeRepo) CountSince(ctx context.Context, today, week, month time.Time) (int64, int64, int64, int64, error) {
	n := int64(len(f.signatures))
	return n, n, n, n, nil
}

func (f *fakeRepo) DailyTrend(ctx context.Context, since time.Time) ([]petition.DailyCount, error) {
	return nil, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]bool
}

func (s *memSessionStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[jti] = true
	return nil
}

func (s *memSessionStore) Active(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[jti], nil
}

func (s *memSessionStore) Revoke(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, jti)
	return nil
}

type testEnv struct {
	router *chi.Mux
	repo   *fakeRepo
	svc    *petition.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := auth.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	sessions := &memSessionStore{sessions: map[string]bool{}}
	jwtMgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	authSvc := service.NewAdminAuthService("admin", hash, jwtMgr, sessions)

	repo := &fakeRepo{}
	petitionSvc := petition.NewService(repo, config.VariantPhone, time.Second)

	handler := NewHandler(authSvc, petitionSvc)

	r := chi.NewRouter()
	handler.RegisterPublicRoutes(r)
	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authSvc))
		handler.RegisterProtectedRoutes(private)
	})

	return &testEnv{router: r, repo: repo, svc: petitionSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/admin/login", "",
		map[string]string{"username": "admin", "password": "s3cret-pass"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data service.LoginResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if resp.Data.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d", resp.Data.ExpiresIn)
	}
	return resp.Data.Token
}

func (e *testEnv) seed(t *testing.T, name, phone string) petition.Signature {
	t.Helper()
	sig, err := e.svc.Create(context.Background(), petition.CreateSignatureInput{Name: name, Phone: phone})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return *sig
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, token := range []string{"", "garbage"} {
		rec := env.do(t, http.MethodGet, "/admin/signatures", token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status = %d", token, rec.Code)
		}
	}
}

func TestAdminSearchDeleteFlow(t *testing.T) {
	env := newTestEnv(t)
	priya := env.seed(t, "Priya Sharma", "9876543210")
	env.seed(t, "Arjun Mehta", "9123456789")

	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/admin/signatures?search=Priya", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var listResp struct {
		Data petition.ListResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listResp.Data.Total != 1 || len(listResp.Data.Signatures) != 1 {
		t.Fatalf("search result: %+v", listResp.Data)
	}
	if listResp.Data.Signatures[0].ID != priya.ID {
		t.Fatal("search returned the wrong record")
	}

	rec = env.do(t, http.MethodDelete, "/admin/signature/"+priya.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/admin/signature/"+priya.ID.String(), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/admin/signatures?search=Priya", token, nil)
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listResp.Data.Total != 0 {
		t.Fatalf("deleted record still found: %+v", listResp.Data)
	}

	rec = env.do(t, http.MethodGet, "/admin/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var statsResp struct {
		Data petition.AdminStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&statsResp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if statsResp.Data.TotalSignatures != 1 {
		t.Fatalf("total after delete = %d", statsResp.Data.TotalSignatures)
	}
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "Priya Sharma", "9876543210")
	env.seed(t, "Arjun Mehta", "9123456789")
	env.seed(t, "Meera Nair", "9988776655")

	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/admin/export-csv", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "petition_signatures_") {
		t.Fatalf("content disposition = %q", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("row count = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "signature_number" || rows[0][1] != "name" {
		t.Fatalf("header = %v", rows[0])
	}
	for i := 1; i < len(rows); i++ {
		if rows[i][0] <= rows[i-1][0] && i > 1 {
			t.Fatalf("rows not ascending by signature_number: %v", rows)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/admin/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/admin/signatures", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token accepted: status = %d", rec.Code)
	}
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/repository"
	"go.uber.org/zap"
)

// fakeVerifier resolves a single known token.
type fakeVerifier struct {
	token    string
	user     *models.User
	err      error
	verified bool
	deleted  bool
}

func (f *fakeVerifier) resolve(token string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token != f.token {
		return nil, jwt.ErrTokenMalformed
	}
	return f.user, nil
}

func (f *fakeVerifier) ResolveVerification(_ context.Context, token string) (*models.User, error) {
	return f.resolve(token)
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*models.User, error) {
	user, err := f.resolve(token)
	if err != nil {
		return nil, err
	}
	f.verified = true
	user.IsVerified = true
	return user, nil
}

func (f *fakeVerifier) DeleteAccount(_ context.Context, token string) error {
	if _, err := f.resolve(token); err != nil {
		return err
	}
	f.deleted = true
	return nil
}

func newVerifyHandler(f *fakeVerifier) *VerifyHandler {
	return &VerifyHandler{Auth: f, Log: zap.NewNop()}
}

// routeRequest runs the request through a chi router so URL params resolve.
func routeRequest(h *VerifyHandler, method, target string, form url.Values) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/verifyme/{token}", h.VerifyInfo)
	r.Post("/verifyme/{token}", h.Verify)
	r.Post("/deleteme/{token}", h.Delete)

	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeVerifyResult(t *testing.T, w *httptest.ResponseRecorder) verifyResult {
	t.Helper()
	var res verifyResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res
}

func TestVerifyInfo_KnownToken(t *testing.T) {
	f := &fakeVerifier{token: "tok", user: &models.User{ID: "u1", Name: "alice", Role: models.RoleUser}}
	w := routeRequest(newVerifyHandler(f), http.MethodGet, "/verifyme/tok", nil)

	res := decodeVerifyResult(t, w)
	if !res.UserFound || res.User.Name != "alice" {
		t.Errorf("result = %+v", res)
	}
}

func TestVerifyInfo_TokenFaults(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"expired":   {jwt.ErrTokenExpired, "token expired"},
		"malformed": {jwt.ErrTokenMalformed, "Invalid token"},
		"noUser":    {repository.ErrNotFound, "user does not exist"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := &fakeVerifier{err: tc.err}
			w := routeRequest(newVerifyHandler(f), http.MethodGet, "/verifyme/tok", nil)
			res := decodeVerifyResult(t, w)
			if res.UserFound || res.Error != tc.want {
				t.Errorf("result = %+v, want error %q", res, tc.want)
			}
		})
	}
}

func TestVerify_AffirmativeAnswerVerifies(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", "Yes"} {
		f := &fakeVerifier{token: "tok", user: &models.User{ID: "u1", Name: "alice"}}
		w := routeRequest(newVerifyHandler(f), http.MethodPost, "/verifyme/tok", url.Values{"verify": {answer}})

		if !f.verified {
			t.Errorf("%q: expected verification", answer)
		}
		res := decodeVerifyResult(t, w)
		if !res.UserFound || !res.User.IsVerified {
			t.Errorf("%q: result = %+v", answer, res)
		}
	}
}

func TestVerify_NegativeAnswerDeletesAccount(t *testing.T) {
	f := &fakeVerifier{token: "tok", user: &models.User{ID: "u1", Name: "alice"}}
	w := routeRequest(newVerifyHandler(f), http.MethodPost, "/verifyme/tok", url.Values{"verify": {"n"}})

	if f.verified {
		t.Error("must not verify on a negative answer")
	}
	if !f.deleted {
		t.Error("expected account deletion")
	}
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
}

func TestDelete_RequiresLiteralConfirmation(t *testing.T) {
	f := &fakeVerifier{token: "tok", user: &models.User{ID: "u1", Name: "alice"}}
	w := routeRequest(newVerifyHandler(f), http.MethodPost, "/deleteme/tok", url.Values{"delete": {"nope"}})

	if f.deleted {
		t.Error("only the literal confirmation may delete")
	}
	res := decodeVerifyResult(t, w)
	if res.Error != "Invalid input" {
		t.Errorf("result = %+v", res)
	}

	w = routeRequest(newVerifyHandler(f), http.MethodPost, "/deleteme/tok", url.Values{"delete": {"delete"}})
	if !f.deleted {
		t.Error("expected deletion on confirmation")
	}
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
}

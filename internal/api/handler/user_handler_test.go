package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medichain/identity-service/internal/core/domain"
	"github.com/medichain/identity-service/internal/core/ports"
)

type stubIdentityService struct {
	registerFn   func(ctx context.Context, in ports.RegistrationInput) (*ports.UserSummary, error)
	loginFn      func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	profileFn    func(ctx context.Context, token string) (*ports.ProfileView, error)
	deactivateFn func(ctx context.Context, username string) error
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.RegistrationInput) (*ports.UserSummary, error) {
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubIdentityService) Profile(ctx context.Context, token string) (*ports.ProfileView, error) {
	return s.profileFn(ctx, token)
}

func (s *stubIdentityService) Logout() string {
	return "Logged out"
}

func (s *stubIdentityService) Deactivate(ctx context.Context, username string) error {
	return s.deactivateFn(ctx, username)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validRegisterBody = `{
	"role": "PHARMACY",
	"username": "alice",
	"firstName": "Alice",
	"lastName": "Smith",
	"mailId": "alice@x.com",
	"phone": "555-0100",
	"dob": "1990-04-02",
	"password": "P@ss1",
	"confirmPassword": "P@ss1"
}`

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(_ context.Context, in ports.RegistrationInput) (*ports.UserSummary, error) {
			if in.Username != "alice" || in.Role != domain.RolePharmacy {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.DOB.Format("2006-01-02") != "1990-04-02" {
				t.Fatalf("dob not parsed: %v", in.DOB)
			}
			return &ports.UserSummary{
				ID:        "u1",
				Username:  in.Username,
				MailID:    in.MailID,
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Role:      in.Role,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/register", validRegisterBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
	if resp["message"] != "User registered successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "u1" || user["username"] != "alice" || user["email"] != "alice@x.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("response leaks the password field")
	}
	if strings.Contains(rec.Body.String(), "P@ss1") {
		t.Fatalf("response leaks the plaintext password")
	}
}

func TestUserHandler_Register_DiscriminatedFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"username taken", domain.ErrUsernameTaken, "Username is already taken!"},
		{"email taken", domain.ErrEmailTaken, "Email is already taken!"},
		{"password mismatch", domain.ErrPasswordMismatch, "Passwords do not match!"},
		{"invalid role", domain.ErrInvalidRole, "Invalid role!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubIdentityService{
				registerFn: func(_ context.Context, _ ports.RegistrationInput) (*ports.UserSummary, error) {
					return nil, tc.err
				},
			}
			h := NewUserHandler(stub)

			c, rec := newTestContext(t, http.MethodPost, "/api/register", validRegisterBody)
			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["success"] != false || resp["message"] != tc.message {
				t.Fatalf("unexpected payload: %+v", resp)
			}
		})
	}
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(_ context.Context, _ ports.RegistrationInput) (*ports.UserSummary, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	body := strings.Replace(validRegisterBody, `"1990-04-02"`, `"02/04/1990"`, 1)
	c, rec := newTestContext(t, http.MethodPost, "/api/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dob") {
		t.Fatalf("expected dob validation message, got %s", rec.Body.String())
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			if in.UsernameOrEmail != "alice" || in.Password != "P@ss1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.LoginResult{Token: "token123", Username: "alice", Role: domain.RolePharmacy}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/login", `{"usernameOrEmail":"alice","password":"P@ss1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "Login successful!" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["token"] != "token123" || resp["username"] != "alice" || resp["role"] != "PHARMACY" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Login_DiscriminatedFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"user not found", domain.ErrUserNotFound, "User not found!"},
		{"wrong password", domain.ErrInvalidCredentials, "Invalid password!"},
		{"deactivated", domain.ErrAccountDeactivated, "Account is deactivated!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubIdentityService{
				loginFn: func(_ context.Context, _ ports.LoginInput) (*ports.LoginResult, error) {
					return nil, tc.err
				},
			}
			h := NewUserHandler(stub)

			c, rec := newTestContext(t, http.MethodPost, "/api/login", `{"usernameOrEmail":"alice","password":"P@ss1"}`)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["success"] != false || resp["message"] != tc.message {
				t.Fatalf("unexpected payload: %+v", resp)
			}
		})
	}
}

func TestUserHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*ports.LoginResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/login", "{")
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Logout(t *testing.T) {
	h := NewUserHandler(&stubIdentityService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Logged out" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestUserHandler_Profile_Success(t *testing.T) {
	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	stub := &stubIdentityService{
		profileFn: func(_ context.Context, token string) (*ports.ProfileView, error) {
			if token != "token123" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &ports.ProfileView{
				ID:        "u1",
				Username:  "alice",
				MailID:    "alice@x.com",
				FirstName: "Alice",
				LastName:  "Smith",
				Role:      domain.RolePharmacy,
				Phone:     "555-0100",
				DOB:       dob,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/profile", "")
	c.Request().Header.Set("Authorization", "Bearer token123")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["mailId"] != "alice@x.com" || resp["dob"] != "1990-04-02" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("profile leaks the password hash")
	}
}

func TestUserHandler_Profile_MissingHeader(t *testing.T) {
	stub := &stubIdentityService{
		profileFn: func(_ context.Context, _ string) (*ports.ProfileView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	for _, header := range []string{"", "Token abc", "bearer-ish"} {
		c, rec := newTestContext(t, http.MethodGet, "/api/profile", "")
		if header != "" {
			c.Request().Header.Set("Authorization", header)
		}
		if err := h.Profile(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Missing or invalid Authorization header") {
			t.Fatalf("header %q: unexpected body %s", header, rec.Body.String())
		}
	}
}

func TestUserHandler_Profile_TokenErrorsPropagate(t *testing.T) {
	stub := &stubIdentityService{
		profileFn: func(_ context.Context, _ string) (*ports.ProfileView, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/profile", "")
	c.Request().Header.Set("Authorization", "Bearer stale")
	err := h.Profile(c)
	if err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired to propagate, got %v", err)
	}
}

func TestUserHandler_Deactivate(t *testing.T) {
	var got string
	stub := &stubIdentityService{
		deactivateFn: func(_ context.Context, username string) error {
			got = username
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/users/alice/deactivate", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := h.Deactivate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("service called with %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User deactivated successfully!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/dummyjson"
	"github.com/five82/cinedeck/internal/kv"
	"github.com/five82/cinedeck/internal/logging"
)

// User is the signed-in account, persisted under KeyAuth.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// FirstName returns the first word of Name.
func (u User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Credentials are login form input. Never persisted.
type Credentials struct {
	Email    string
	Password string
}

// AuthState is a copy of the auth slice.
type AuthState struct {
	User       *User
	IsLoggedIn bool
	Status     AsyncStatus
	Error      string
	Hydrated   bool
}

const (
	msgLoginFailed    = "Unable to login. Please check your credentials."
	msgRegisterFailed = "Unable to register at the moment. Please try again."

	defaultRegisterName     = "Expo User"
	defaultRegisterLastName = "User"
)

// Auth owns the session. Login, Register and Logout run one at a time.
type Auth struct {
	mu    sync.RWMutex
	state AuthState

	writer sync.Mutex
	kv     kv.Store
	api    dummyjson.Authenticator
	log    *zap.Logger
	now    func() time.Time
}

// NewAuth builds an unhydrated auth slice.
func NewAuth(store kv.Store, api dummyjson.Authenticator, logger *zap.Logger) *Auth {
	return &Auth{
		state: AuthState{Status: StatusIdle},
		kv:    store,
		api:   api,
		log:   logging.OrNop(logger).Named("state.auth"),
		now:   time.Now,
	}
}

// State returns a copy of the slice.
func (a *Auth) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	st := a.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Hydrate loads the persisted user. Read failures leave the session logged
// out. Only the first hydration is applied.
func (a *Auth) Hydrate(ctx context.Context) {
	user, err := a.load(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Hydrated {
		return
	}
	a.state.Hydrated = true
	if err != nil {
		a.log.Warn("hydrate failed; treating session as logged out", zap.String("key", KeyAuth), zap.Error(err))
		return
	}
	a.state.User = user
	a.state.IsLoggedIn = user != nil
	a.state.Status = StatusIdle
	a.state.Error = ""
}

func (a *Auth) load(ctx context.Context) (*User, error) {
	raw, ok, err := a.kv.Get(ctx, KeyAuth)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" || raw == "null" {
		return nil, nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (a *Auth) markHydrated() {
	a.mu.Lock()
	a.state.Hydrated = true
	a.mu.Unlock()
}

// ServiceUsername derives the sandbox username from an email's local part.
func ServiceUsername(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}

// Login signs in with the sandbox. On failure the previous user is kept and
// the returned error carries the message also stored in State().Error.
func (a *Auth) Login(ctx context.Context, creds Credentials) error {
	a.writer.Lock()
	defer a.writer.Unlock()
	a.begin()

	username := ServiceUsername(creds.Email)
	resp, err := a.api.Login(ctx, username, creds.Password)
	if err != nil {
		return a.fail("login", serviceMessage(err, msgLoginFailed), err)
	}

	name := firstNonEmpty(strings.TrimSpace(resp.FirstName+" "+resp.LastName), resp.Username, username)
	user := User{ID: resp.ID, Name: name, Email: creds.Email, Token: resp.SessionToken()}
	if err := a.store(ctx, &user); err != nil {
		return a.fail("login", msgLoginFailed, fmt.Errorf("%w: %w", ErrPersist, err))
	}
	a.succeed(user)
	return nil
}

// Register creates a sandbox account and signs in as it.
func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	a.writer.Lock()
	defer a.writer.Unlock()
	a.begin()

	first, last := splitName(name)
	resp, err := a.api.AddUser(ctx, dummyjson.AddUserRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return a.fail("register", serviceMessage(err, msgRegisterFailed), err)
	}

	id := a.now().UnixMilli()
	if resp.ID != nil {
		id = *resp.ID
	}
	user := User{
		ID:    id,
		Name:  strings.TrimSpace(firstNonEmpty(resp.FirstName, first) + " " + firstNonEmpty(resp.LastName, last)),
		Email: email,
	}
	if err := a.store(ctx, &user); err != nil {
		return a.fail("register", msgRegisterFailed, fmt.Errorf("%w: %w", ErrPersist, err))
	}
	a.succeed(user)
	return nil
}

// Logout clears the session. A failed removal is logged, never returned.
func (a *Auth) Logout(ctx context.Context) {
	a.writer.Lock()
	defer a.writer.Unlock()

	if err := a.store(ctx, nil); err != nil {
		a.log.Warn("remove persisted user failed", zap.String("key", KeyAuth), zap.Error(err))
	}

	a.mu.Lock()
	a.state.User = nil
	a.state.IsLoggedIn = false
	a.state.Status = StatusIdle
	a.state.Error = ""
	a.mu.Unlock()
	a.log.Info("logged out")
}

func (a *Auth) store(ctx context.Context, user *User) error {
	if user == nil {
		return a.kv.Remove(ctx, KeyAuth)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return a.kv.Set(ctx, KeyAuth, string(data))
}

func (a *Auth) begin() {
	a.mu.Lock()
	a.state.Status = StatusLoading
	a.state.Error = ""
	a.mu.Unlock()
}

func (a *Auth) succeed(user User) {
	a.mu.Lock()
	a.state.User = &user
	a.state.IsLoggedIn = true
	a.state.Status = StatusSucceeded
	a.mu.Unlock()
	a.log.Info("signed in", zap.Int64("user_id", user.ID))
}

func (a *Auth) fail(op, message string, cause error) error {
	a.mu.Lock()
	a.state.Status = StatusFailed
	a.state.Error = message
	a.mu.Unlock()
	a.log.Warn(op+" failed", zap.String("message", message), zap.Error(cause))
	return &OpError{Message: message, Err: cause}
}

func serviceMessage(err error, fallback string) string {
	var apiErr *dummyjson.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		fields = strings.Fields(defaultRegisterName)
	}
	first = fields[0]
	last = strings.Join(fields[1:], " ")
	if last == "" {
		last = defaultRegisterLastName
	}
	return first, last
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Form validation errors.
var (
	ErrNameRequired     = errors.New("Name is required")
	ErrNameShort        = errors.New("Name must be at least 2 characters")
	ErrEmailRequired    = errors.New("Email is required")
	ErrEmailInvalid     = errors.New("Please enter a valid email")
	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordShort    = errors.New("Minimum 6 characters")
	ErrConfirmRequired  = errors.New("Please confirm your password")
	ErrConfirmMismatch  = errors.New("Passwords must match")
)

const minPasswordLen = 6

// ValidateLogin checks the login form before dispatch.
func ValidateLogin(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

// ValidateRegistration checks the register form before dispatch.
func ValidateRegistration(name, email, password, confirm string) error {
	switch n := len([]rune(strings.TrimSpace(name))); {
	case n == 0:
		return ErrNameRequired
	case n < 2:
		return ErrNameShort
	}
	if err := ValidateLogin(email, password); err != nil {
		return err
	}
	if confirm == "" {
		return ErrConfirmRequired
	}
	if confirm != password {
		return ErrConfirmMismatch
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len([]rune(password)) < minPasswordLen {
		return ErrPasswordShort
	}
	return nil
}

package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/credential-gateway/internal/auth"
	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/events"
	"github.com/spec-kit/credential-gateway/internal/repository"
)

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}}
}

func newTestAuthService(t *testing.T, dispatcher events.Dispatcher) (*AuthService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	return NewAuthService(testConfig(), AuthDependencies{UserRepo: repo, Dispatcher: dispatcher}), repo
}

func TestRegisterUser_StoresHashOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t, nil)

	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))

	user, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "pass1")
	assert.True(t, svc.Hasher().Verify("pass1", user.PasswordHash))
}

func TestRegisterUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t, nil)

	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))
	first, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)

	err = svc.RegisterUser(ctx, "user1", "other")
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	after, err := repo.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, after.PasswordHash)
}

func TestRegisterUser_EmptyUsername(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)
	require.ErrorIs(t, svc.RegisterUser(context.Background(), "", "pass"), ErrUsernameRequired)
}

func TestRegisterUser_PasswordTooLong(t *testing.T) {
	svc, repo := newTestAuthService(t, nil)

	err := svc.RegisterUser(context.Background(), "user1", strings.Repeat("x", 100))
	require.ErrorIs(t, err, auth.ErrPasswordTooLong)

	exists, err := repo.Exists(context.Background(), "user1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterUser_ConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)

	const workers = 16
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := svc.RegisterUser(ctx, "racer", "pw"); err {
			case nil:
				ok.Add(1)
			case ErrUserAlreadyExists:
				dup.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), dup.Load())
}

func TestLoginUser_Success(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)
	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))

	token, err := svc.LoginUser(ctx, "user1", "pass1")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Subject)
}

func TestLoginUser_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)
	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))

	_, unknownErr := svc.LoginUser(ctx, "nobody", "pass1")
	_, wrongErr := svc.LoginUser(ctx, "user1", "wrong")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestNewAuthService_PrecomputesDummyHash(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)

	require.NotEmpty(t, svc.dummyHash)
	assert.True(t, svc.Hasher().IsHash(svc.dummyHash))
	cost, err := bcrypt.Cost([]byte(svc.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, svc.Hasher().Cost(), cost)
}

func TestLoginUser_EmptyFieldsAreInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)
	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))

	_, err := svc.LoginUser(ctx, "user1", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.LoginUser(ctx, "", "pass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	var seen []events.Event
	record := func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
		return nil
	}
	dispatcher.Subscribe(events.EventUserRegistered, record)
	dispatcher.Subscribe(events.EventUserLoggedIn, record)
	dispatcher.Subscribe(events.EventLoginFailed, record)

	svc, _ := newTestAuthService(t, dispatcher)
	require.NoError(t, svc.RegisterUser(ctx, "user1", "pass1"))
	_, err := svc.LoginUser(ctx, "user1", "pass1")
	require.NoError(t, err)
	_, _ = svc.LoginUser(ctx, "user1", "bad")
	_, _ = svc.LoginUser(ctx, "ghost", "bad")

	require.Len(t, seen, 4)
	assert.Equal(t, events.EventUserRegistered, seen[0].Type)
	assert.Equal(t, events.EventUserLoggedIn, seen[1].Type)
	assert.Equal(t, events.EventLoginFailed, seen[2].Type)
	assert.Equal(t, events.LoginFailedPayload{Reason: events.ReasonWrongPassword}, seen[2].Payload)
	assert.Equal(t, events.LoginFailedPayload{Reason: events.ReasonUnknownUser}, seen[3].Payload)
	assert.Equal(t, "ghost", seen[3].Subject)
}

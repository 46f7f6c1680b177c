package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSessions keeps sessions in a map, standing in for the sqlite store.
type fakeSessions struct {
	mu    sync.Mutex
	items map[string]model.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{items: make(map[string]model.Session)}
}

func (f *fakeSessions) Create(_ context.Context, sess model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[sess.Token] = sess
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.items[token]
	if !ok {
		return model.Session{}, errs.ErrNotFound
	}
	return sess, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, token)
	return nil
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	svc := service.NewAuthService(st, newFakeSessions(), zap.NewExample())

	user, err := svc.Register(model.RegisterRequest{
		Name:            "Sofia Reyes",
		Email:           "sofia.reyes@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, model.RoleReader, user.Role)
	require.True(t, user.IsActive)

	// The email is taken regardless of letter case.
	_, err = svc.Register(model.RegisterRequest{
		Name:            "Another Sofia",
		Email:           "SOFIA.REYES@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.ErrorIs(t, err, errs.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)
	st.AddUser(model.User{ID: "u1", Name: "Jane Doe", Email: "jane.doe@transport.gov", Role: model.RoleReader, IsActive: true})
	st.AddUser(model.User{ID: "u2", Name: "John Smith", Email: "john.smith@transport.gov", Role: model.RoleReader, IsActive: false})
	sessions := newFakeSessions()
	svc := service.NewAuthService(st, sessions, zap.NewExample())

	var tests = []struct {
		name    string
		email   string
		wantErr error
	}{
		{name: "ok", email: "jane.doe@transport.gov"},
		{name: "ok. case-insensitive email", email: "JANE.DOE@transport.gov"},
		{name: "inactive account", email: "john.smith@transport.gov", wantErr: errs.ErrInvalidSession},
		{name: "unknown email", email: "nobody@transport.gov", wantErr: errs.ErrInvalidSession},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, resp.Token)
			require.Equal(t, "u1", resp.User.ID)

			sess, err := sessions.Get(ctx, resp.Token)
			require.NoError(t, err)
			require.Equal(t, "u1", sess.UserID)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)
	st.AddUser(model.User{ID: "u1", Name: "Jane Doe", Email: "jane.doe@transport.gov", Role: model.RoleReader, IsActive: true})
	svc := service.NewAuthService(st, newFakeSessions(), zap.NewExample())

	resp, err := svc.Login(ctx, "jane.doe@transport.gov")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	_, err = svc.Authenticate(ctx, "bogus-token")
	require.ErrorIs(t, err, errs.ErrInvalidSession)

	// Deactivation invalidates the session on the next call.
	inactive := false
	_, err = svc.UpdateUser("u1", model.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, resp.Token)
	require.ErrorIs(t, err, errs.ErrInvalidSession)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)
	st.AddUser(model.User{ID: "u1", Name: "Jane Doe", Email: "jane.doe@transport.gov", Role: model.RoleReader, IsActive: true})
	svc := service.NewAuthService(st, newFakeSessions(), zap.NewExample())

	resp, err := svc.Login(ctx, "jane.doe@transport.gov")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.Authenticate(ctx, resp.Token)
	require.ErrorIs(t, err, errs.ErrInvalidSession)
}

func TestAuthService_UpdateUser(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddUser(model.User{ID: "u1", Name: "Jane Doe", Email: "jane.doe@transport.gov", Role: model.RoleReader, IsActive: true})
	svc := service.NewAuthService(st, newFakeSessions(), zap.NewExample())

	librarian := model.RoleLibrarian
	user, err := svc.UpdateUser("u1", model.UpdateUserRequest{Role: &librarian})
	require.NoError(t, err)
	require.Equal(t, model.RoleLibrarian, user.Role)
	require.True(t, user.IsActive)

	owner := model.Role("Owner")
	_, err = svc.UpdateUser("u1", model.UpdateUserRequest{Role: &owner})
	require.ErrorIs(t, err, errs.ErrInvalidRole)

	_, err = svc.UpdateUser("missing", model.UpdateUserRequest{Role: &librarian})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

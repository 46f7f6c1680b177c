package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/repository"
	"github.com/motlib/library-service/internal/store"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AuthService resolves users from login emails and keeps the durable
// session record. There is no cryptographic authentication here: the
// password is checked for shape at the edge and then discarded.
type AuthService struct {
	log      *zap.Logger
	store    *store.Store
	sessions repository.Sessions
}

func NewAuthService(st *store.Store, sessions repository.Sessions, log *zap.Logger) *AuthService {
	return &AuthService{
		log:      log,
		store:    st,
		sessions: sessions,
	}
}

// Register creates an active Reader. The email must be unused,
// case-insensitive, regardless of the holder's active status.
func (s *AuthService) Register(req model.RegisterRequest) (model.User, error) {
	if _, exists := s.store.UserByEmail(req.Email); exists {
		return model.User{}, errs.ErrDuplicateEmail
	}
	user := model.User{
		ID:       model.NewID(),
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.RoleReader,
		IsActive: true,
	}
	s.store.AddUser(user)
	return user, nil
}

// Login matches the email against active users. Unknown email and
// inactive account are the same failure to the caller. On success the
// serialized user snapshot is written to the session store.
func (s *AuthService) Login(ctx context.Context, email string) (model.LoginResponse, error) {
	user, ok := s.store.UserByEmail(email)
	if !ok || !user.IsActive {
		return model.LoginResponse{}, errs.ErrInvalidSession
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return model.LoginResponse{}, err
	}
	token := uuid.NewString()
	if err := s.sessions.Create(ctx, model.Session{
		Token:     token,
		UserID:    user.ID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return model.LoginResponse{}, err
	}

	s.log.Debug("login", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	return model.LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate rehydrates the current user for a token. The user is
// re-resolved from the directory so that a deactivation or role change
// by an admin takes effect on the next call.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.User, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return model.User{}, errs.ErrInvalidSession
	}
	user, err := s.store.User(sess.UserID)
	if err != nil || !user.IsActive {
		return model.User{}, errs.ErrInvalidSession
	}
	return user, nil
}

func (s *AuthService) Users() []model.User {
	return s.store.Users()
}

// UpdateUser applies admin changes to role and active flag. Users are
// never deleted.
func (s *AuthService) UpdateUser(id string, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.store.User(id)
	if err != nil {
		return model.User{}, err
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return model.User{}, errs.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.store.ReplaceUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

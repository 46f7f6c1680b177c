package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Sessions is the durable login store, the process-external counterpart
// of the original's local-storage currentUser key.
type Sessions interface {
	Create(ctx context.Context, sess model.Session) error
	Get(ctx context.Context, token string) (model.Session, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewSessionRepository(db *sqlx.DB, log *zap.Logger) (*sessionRepository, error) {
	return &sessionRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	sessionTableName = `sessions`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func (r *sessionRepository) Create(ctx context.Context, sess model.Session) error {
	q, args, err := qb.Insert(sessionTableName).
		Columns("token", "user_id", "payload", "created_at").
		Values(sess.Token, sess.UserID, sess.Payload, sess.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (model.Session, error) {
	q, args, err := qb.Select("token", "user_id", "payload", "created_at").
		From(sessionTableName).
		Where(sq.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Session{}, err
	}
	var sess model.Session
	if err := r.db.GetContext(ctx, &sess, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, errs.ErrNotFound
		}
		return model.Session{}, err
	}
	return sess, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	q, args, err := qb.Delete(sessionTableName).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return err
	}
	return nil
}

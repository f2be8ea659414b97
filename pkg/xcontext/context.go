package xcontext

import (
	"context"
	"net/http"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey         struct{}
	txKey         struct{}
	configsKey    struct{}
	loggerKey     struct{}
	httpClientKey struct{}
	userIDKey     struct{}
)

// dbTransaction wraps a gorm transaction so that commit and rollback helpers
// can mark it as finished. A finished transaction is never returned by DB
// again, every database call after that uses the root connection.
type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If an unfinished transaction exists
// in the context, the transaction is returned instead of the root connection.
func DB(ctx context.Context) *gorm.DB {
	if t := currentTx(ctx); t != nil {
		return t.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if t := currentTx(ctx); t != nil {
		t.tx.Commit()
		t.done = true
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if t := currentTx(ctx); t != nil {
		t.tx.Rollback()
		t.done = true
	}

	return ctx
}

func currentTx(ctx context.Context) *dbTransaction {
	t, ok := ctx.Value(txKey{}).(*dbTransaction)
	if !ok || t.done {
		return nil
	}

	return t
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.INFO)
	}

	return l
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok {
		return http.DefaultClient
	}

	return client
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// RequestUserID returns the id of the authenticated user of this request, or
// an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}

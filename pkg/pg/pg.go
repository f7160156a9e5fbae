package pg

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

// DefaultLockWait bounds how long a transaction waits on a row or
// advisory lock before failing with a retryable error.
const DefaultLockWait = 5 * time.Second

// DefaultTxBudget bounds the total runtime of a bounded transaction.
const DefaultTxBudget = 10 * time.Second

type DB struct {
	read  *gorm.DB
	write *gorm.DB
}

func Create(config Config, withDebug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", config.Host, config.User, config.Password, config.Database, config.Port)),
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	if err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return db, nil
}

func CreateReadWrite(readConfig Config, writeConfig Config, withDebug bool) (*DB, error) {
	read, err := Create(readConfig, withDebug)
	if err != nil {
		return nil, err
	}
	write, err := Create(writeConfig, withDebug)
	if err != nil {
		return nil, err
	}
	return &DB{read, write}, nil
}

func (r *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

// WithinTransactionTimeout runs fn inside a transaction with a total
// runtime budget and, on postgres, a lock_timeout so that a blocked
// lock acquisition fails instead of queueing forever. The transaction
// rolls back on any error and advisory locks taken inside it are
// released by the database.
func (r *DB) WithinTransactionTimeout(ctx context.Context, budget time.Duration, fn func(ctx context.Context) error) error {
	if budget <= 0 {
		budget = DefaultTxBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", DefaultLockWait.Milliseconds())).Error; err != nil {
				return err
			}
		}
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

// AdvisoryLock takes a transaction-scoped exclusive advisory lock on
// key. It must be called inside WithinTransaction(Timeout); the lock is
// released when the transaction ends, never explicitly. On dialects
// without advisory locks (the sqlite test driver) this is a no-op:
// sqlite serializes writers on its own.
func (r *DB) AdvisoryLock(ctx context.Context, key int64) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok {
		return fmt.Errorf("advisory lock requested outside a transaction")
	}
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	tx = r.write.WithContext(ctx)

	return tx
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	tx = r.read.WithContext(ctx)

	return tx
}

package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/awsembako/backoffice/pkg/pg"
)

// SequenceRepository builds date-scoped transaction codes such as
// PNJ-20250101-003. The next number is never stored as standalone
// state: it is derived per call from the highest existing code under a
// per-prefix advisory lock, so it stays correct across processes and
// replicas. Gaps are tolerated when a generated code goes unused;
// duplicates are not.
type SequenceRepository struct {
	*pg.DB
}

func NewSequenceRepository(db *pg.DB) *SequenceRepository {
	return &SequenceRepository{
		db,
	}
}

// lockKey maps a prefix onto the advisory-lock key space. FNV-32a is
// stable and cheap; a cross-prefix collision only widens the critical
// section, it cannot produce a wrong code.
func lockKey(prefix string) int64 {
	h := fnv.New32a()
	h.Write([]byte(prefix))
	return int64(h.Sum32())
}

// NextCode must be called inside a bounded transaction
// (pg.WithinTransactionTimeout). Callers for the same prefix are
// totally ordered by lock acquisition; different prefixes do not
// contend. The table argument selects which header table defines the
// sequence.
func (r *SequenceRepository) NextCode(ctx context.Context, table string, prefix string) (string, error) {
	if err := r.AdvisoryLock(ctx, lockKey(prefix)); err != nil {
		return "", err
	}

	var lastCode string
	err := r.Write(ctx).
		Table(table).
		Select("kode").
		Where("kode LIKE ?", prefix+"-%").
		Order("kode DESC").
		Limit(1).
		Scan(&lastCode).
		Error
	if err != nil {
		return "", err
	}

	next := parseSuffix(lastCode, prefix) + 1
	return fmt.Sprintf("%s-%03d", prefix, next), nil
}

// parseSuffix extracts the trailing number of the highest existing
// code, defaulting to 0 when no code exists for the prefix yet or the
// suffix is malformed.
func parseSuffix(code string, prefix string) int64 {
	if code == "" || !strings.HasPrefix(code, prefix+"-") {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(code, prefix+"-"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

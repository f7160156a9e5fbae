package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextCodeInTx calls NextCode inside the bounded transaction its
// contract requires (see SequenceRepository.NextCode).
func nextCodeInTx(t *testing.T, repo *SequenceRepository, table, prefix string) (string, error) {
	t.Helper()
	var code string
	err := repo.WithinTransactionTimeout(context.Background(), 0, func(ctx context.Context) error {
		var err error
		code, err = repo.NextCode(ctx, table, prefix)
		return err
	})
	return code, err
}

func TestNextCode_StartsAtOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db.DB)

	code, err := nextCodeInTx(t, repo, "penjualan_headers", "PNJ-20250101")
	require.NoError(t, err)
	assert.Equal(t, "PNJ-20250101-001", code)
}

func TestNextCode_ContinuesFromHighestExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db.DB)
	ctx := context.Background()

	for _, kode := range []string{"PNJ-20250101-001", "PNJ-20250101-007", "PNJ-20250101-003"} {
		err := db.rawDB.Create(&PenjualanHeaderEntity{
			Kode:        kode,
			Status:      "SELESAI",
			StatusBayar: "LUNAS",
		}).Error
		require.NoError(t, err)
	}

	code, err := nextCodeInTx(t, repo, "penjualan_headers", "PNJ-20250101")
	require.NoError(t, err)
	assert.Equal(t, "PNJ-20250101-008", code)
}

func TestNextCode_PrefixesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db.DB)
	ctx := context.Background()

	err := db.rawDB.Create(&PenjualanHeaderEntity{
		Kode:        "PNJ-20250101-042",
		Status:      "SELESAI",
		StatusBayar: "LUNAS",
	}).Error
	require.NoError(t, err)

	code, err := nextCodeInTx(t, repo, "penjualan_headers", "PNJ-20250102")
	require.NoError(t, err)
	assert.Equal(t, "PNJ-20250102-001", code)

	code, err = nextCodeInTx(t, repo, "pembelian_headers", "PBL-20250101")
	require.NoError(t, err)
	assert.Equal(t, "PBL-20250101-001", code)
}

func TestNextCode_MalformedSuffixRestartsAtOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db.DB)

	err := db.rawDB.Create(&PenjualanHeaderEntity{
		Kode:        "PNJ-20250101-LEGACY",
		Status:      "SELESAI",
		StatusBayar: "LUNAS",
	}).Error
	require.NoError(t, err)

	code, err := nextCodeInTx(t, repo, "penjualan_headers", "PNJ-20250101")
	require.NoError(t, err)
	assert.Equal(t, "PNJ-20250101-001", code)
}

func TestParseSuffix(t *testing.T) {
	assert.Equal(t, int64(0), parseSuffix("", "PNJ-20250101"))
	assert.Equal(t, int64(3), parseSuffix("PNJ-20250101-003", "PNJ-20250101"))
	assert.Equal(t, int64(0), parseSuffix("PBL-20250101-003", "PNJ-20250101"))
	assert.Equal(t, int64(0), parseSuffix("PNJ-20250101-abc", "PNJ-20250101"))
}

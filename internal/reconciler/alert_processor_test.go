package reconciler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/internal/queue"
	"github.com/awsembako/backoffice/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertMessage(t *testing.T, alert model.StockAlert) *queue.Message {
	t.Helper()
	data, err := json.Marshal(alert)
	require.NoError(t, err)
	return &queue.Message{Data: data}
}

func TestStockAlertProcessor_DeduplicatesPerItemPerDay(t *testing.T) {
	mr, adapter := helpers.SetupTestRedis(t)
	defer mr.Close()
	p := NewStockAlertProcessor(adapter)
	ctx := context.Background()

	alert := model.StockAlert{BarangID: 7, Kode: "BRG-007", Nama: "Gula", Stok: 1, StokMinimal: 5}

	require.NoError(t, p.Process(ctx, alertMessage(t, alert)))

	// The dedup marker is in place; a second alert for the same item
	// is swallowed without error.
	keys := mr.Keys()
	require.NotEmpty(t, keys)
	require.NoError(t, p.Process(ctx, alertMessage(t, alert)))
	assert.Equal(t, keys, mr.Keys())

	// A different item alerts independently.
	other := model.StockAlert{BarangID: 8, Kode: "BRG-008", Nama: "Kopi", Stok: 0, StokMinimal: 3}
	require.NoError(t, p.Process(ctx, alertMessage(t, other)))
	assert.Len(t, mr.Keys(), len(keys)+1)
}

func TestStockAlertProcessor_MalformedPayload(t *testing.T) {
	mr, adapter := helpers.SetupTestRedis(t)
	defer mr.Close()
	p := NewStockAlertProcessor(adapter)

	err := p.Process(context.Background(), &queue.Message{Data: []byte("not json")})
	assert.Error(t, err)
}

func TestStockAlertProcessor_Type(t *testing.T) {
	_, adapter := helpers.SetupTestRedis(t)
	p := NewStockAlertProcessor(adapter)
	assert.Equal(t, "stock_alert", p.GetType())
}

package reconciler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/internal/queue"
	"github.com/awsembako/backoffice/pkg/logger"
	"github.com/awsembako/backoffice/pkg/redis"
)

const alertDedupTTL = 24 * time.Hour

// StockAlertProcessor consumes low-stock alerts published at checkout.
// Alerts are deduplicated per item per day so that a fast-selling item
// does not flood the log on every sale.
type StockAlertProcessor struct {
	redis redis.RedisAdapter
}

func NewStockAlertProcessor(adapter redis.RedisAdapter) *StockAlertProcessor {
	return &StockAlertProcessor{redis: adapter}
}

func (p *StockAlertProcessor) GetType() string {
	return "stock_alert"
}

func (p *StockAlertProcessor) Process(ctx context.Context, queueMessage *queue.Message) error {
	var alert model.StockAlert
	if err := json.Unmarshal(queueMessage.Data, &alert); err != nil {
		logger.Error("Failed to unmarshal stock alert", "error", err)
		return err // malformed payload moves to the DLQ
	}

	fresh, err := p.markSeen(alert.BarangID)
	if err != nil {
		logger.Warn("Failed to check alert dedup marker", "barang_id", alert.BarangID, "error", err)
		// Continue even if the check fails - a duplicate alert beats a
		// dropped one.
		fresh = true
	}
	if !fresh {
		return nil
	}

	logger.Warn("STOCK ALERT: item at or below minimum",
		"barang_id", alert.BarangID,
		"kode", alert.Kode,
		"nama", alert.Nama,
		"stok", alert.Stok,
		"stok_minimal", alert.StokMinimal,
		"kode_nota", alert.KodeNota,
	)
	return nil
}

// markSeen returns true when this is the first alert for the item
// today.
func (p *StockAlertProcessor) markSeen(barangID int64) (bool, error) {
	key := fmt.Sprintf("alert:barang:%d:%s", barangID, time.Now().Format("2006-01-02"))
	return p.redis.SetNX(key, []byte("1"), alertDedupTTL)
}

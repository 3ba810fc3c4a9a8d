package worker

import (
	"context"
	"time"

	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"go.uber.org/zap"
)

// StockMonitor periodically scans the catalog and exposes low-stock and
// out-of-stock counts as gauges. It only observes: the availability field
// on each product stays whatever the caller last set.
type StockMonitor struct {
	store    store.Store
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewStockMonitor creates a new stock monitor
func NewStockMonitor(st store.Store, interval time.Duration) *StockMonitor {
	return &StockMonitor{
		store:    st,
		interval: interval,
		logger:   util.GetLogger(),
		done:     make(chan struct{}),
	}
}

// Start runs the scan loop until the context is cancelled or Stop is
// called.
func (w *StockMonitor) Start(ctx context.Context) error {
	w.logger.Info("Starting stock monitor", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stock monitor context cancelled, stopping...")
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// Stop stops the worker
func (w *StockMonitor) Stop() {
	w.logger.Info("Stopping stock monitor...")
	close(w.done)
}

func (w *StockMonitor) scan(ctx context.Context) {
	products, err := w.store.GetProducts(ctx)
	if err != nil {
		w.logger.Error("Stock scan failed", zap.Error(err))
		return
	}

	lowStock := 0
	outOfStock := 0
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			outOfStock++
		case p.Quantity <= p.ThresholdValue:
			lowStock++
			w.logger.Warn("Product at or below threshold",
				zap.String("product_id", p.ID),
				zap.String("name", p.Name),
				zap.Int("quantity", p.Quantity),
				zap.Int("threshold", p.ThresholdValue))
		}
	}

	util.LowStockProducts.Set(float64(lowStock))
	util.OutOfStockProducts.Set(float64(outOfStock))
}

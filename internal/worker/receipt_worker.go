package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: fetches the committed sale,
// renders the PDF receipt, and optionally enqueues an email job with the
// PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ventapos/internal/infra"
	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID        string  `json:"sale_id"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

// ReceiptWorker renders PDF receipts for committed sales. Receipt generation
// is deliberately outside the sale transaction: a rendering failure never
// rolls back a sale.
type ReceiptWorker struct {
	saleRepo       repository.SaleRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	businessName   string
}

func NewReceiptWorker(
	saleRepo repository.SaleRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	businessName string,
) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:       saleRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		businessName:   businessName,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the sale (with items and tenders), retrying transient DB errors
//  3. Render the PDF receipt
//  4. Optionally enqueue an email job with the receipt attached
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	var sale *model.Sale
	fetchErr := withRetry(ctx, 3, func(attempt int) error {
		s, err := w.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("sale_id", payload.SaleID).
				Msg("receipt_worker: fetch attempt failed, retrying")
			return err
		}
		sale = s
		return nil
	})
	if fetchErr != nil {
		log.Error().Err(fetchErr).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found after retries")
		SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw, fetchErr.Error(), 3)
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.pdfStoragePath, w.businessName)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generation failed")
		SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw, err.Error(), 1)
		return
	}
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generated")

	if payload.CustomerEmail != nil && *payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.CustomerEmail,
			Subject: fmt.Sprintf("%s — receipt %s", w.businessName, sale.Code),
			Body:    fmt.Sprintf("Attached is your purchase receipt.\nTotal: $%s", sale.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.CustomerEmail).Msg("receipt_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

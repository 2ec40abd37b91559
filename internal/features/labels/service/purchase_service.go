package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"label-desk/internal/core/logger"
	addressdomain "label-desk/internal/features/address/domain"
	historydomain "label-desk/internal/features/history/domain"
	"label-desk/internal/features/labels/domain"
	"label-desk/internal/features/labels/ports"

	"go.uber.org/zap"
)

// Options configures a PurchaseService.
type Options struct {
	// DefaultFormat is the label file type used when a request has none.
	DefaultFormat string
	// Storage keeps label files permanently. Nil disables upload.
	Storage ports.LabelStorage
}

// PurchaseService buys a label from the quote's provider, keeps a permanent
// copy of the file and records the purchase in the history log.
type PurchaseService struct {
	purchasers []ports.LabelPurchaser
	fetcher    ports.LabelFetcher
	history    ports.HistoryRecorder
	opts       Options
	now        func() time.Time
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchasers []ports.LabelPurchaser, fetcher ports.LabelFetcher, history ports.HistoryRecorder, opts Options) *PurchaseService {
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = "PDF"
	}
	return &PurchaseService{
		purchasers: purchasers,
		fetcher:    fetcher,
		history:    history,
		opts:       opts,
		now:        time.Now,
	}
}

// Purchase buys the label. Once the provider has sold the label the call
// succeeds; later failures (download, upload, history) become a warning.
func (s *PurchaseService) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	if strings.TrimSpace(req.QuoteID) == "" || strings.TrimSpace(req.Provider) == "" {
		return nil, domain.ErrMissingQuote
	}
	if req.Format == "" {
		req.Format = s.opts.DefaultFormat
	}

	purchaser := s.purchaserFor(req.Provider)
	if purchaser == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderNotSupported, req.Provider)
	}

	log := logger.Named("labels").With(zap.String("provider", req.Provider), zap.String("quote_id", req.QuoteID))

	label, err := purchaser.PurchaseLabel(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Provider, err)
	}
	log.Info("Label purchased", zap.String("tracking_number", label.TrackingNumber), zap.Float64("cost", label.Cost))

	now := s.now()
	from, to := req.FromAddress, req.ToAddress
	record := historydomain.Record{
		TrackingNumber: label.TrackingNumber,
		Carrier:        label.Carrier,
		Service:        label.Service,
		Cost:           label.Cost,
		Currency:       label.Currency,
		Provider:       strings.ToLower(req.Provider),
		Signature:      req.Signature,
		CreatedAt:      now.UTC().Format(historydomain.TimestampLayout),
		FromAddress:    &from,
		ToAddress:      &to,
		LabelURLTemp:   label.LabelURL,
	}

	var warnings []string

	if s.opts.Storage != nil {
		stored, err := s.store(ctx, now, *label, to)
		if err != nil {
			log.Warn("Label storage failed", zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("Label purchased successfully, but Drive upload failed: %v", err))
		} else {
			record.GoogleDriveLink = stored.Link
			record.GoogleDriveFileID = stored.ID
		}
	}

	saved, err := s.history.Add(ctx, record)
	if err != nil {
		log.Error("Failed to record purchase in history", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("Label purchased successfully, but saving to history failed: %v", err))
		saved = &record
	}

	return &domain.PurchaseResult{
		Record:  *saved,
		Warning: strings.Join(warnings, "; "),
	}, nil
}

func (s *PurchaseService) purchaserFor(provider string) ports.LabelPurchaser {
	for _, p := range s.purchasers {
		if p.SupportsProvider(provider) {
			return p
		}
	}
	return nil
}

func (s *PurchaseService) store(ctx context.Context, now time.Time, label domain.PurchasedLabel, to addressdomain.Address) (*domain.StoredFile, error) {
	if label.LabelURL == "" {
		return nil, fmt.Errorf("provider returned no label URL")
	}

	content, err := s.fetcher.Fetch(ctx, label.LabelURL)
	if err != nil {
		return nil, err
	}

	recipient := to.Name
	if recipient == "" {
		recipient = "Unknown"
	}

	name := domain.StorageName(now, label, recipient)
	return s.opts.Storage.Store(ctx, name, content, map[string]string{
		"tracking_number": label.TrackingNumber,
		"carrier":         label.Carrier,
		"recipient":       recipient,
		"created_date":    now.Format("2006-01-02"),
	})
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"label-desk/internal/core/cache"
	"label-desk/internal/core/logger"
	addressdomain "label-desk/internal/features/address/domain"
	"label-desk/internal/features/rates/domain"
	"label-desk/internal/features/rates/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidParcel is returned when a dimension or the weight is not positive.
	ErrInvalidParcel = errors.New("parcel dimensions and weight must be positive")
	// ErrInvalidDestination is returned when the destination has no street, city or zip.
	ErrInvalidDestination = errors.New("to_address needs street, city and zip")
)

// Options configures a RateService.
type Options struct {
	// Sender is used when a request has no from_address.
	Sender addressdomain.Address
	// Timeout bounds each provider call.
	Timeout time.Duration
	// Cache stores complete results. Nil disables caching.
	Cache cache.Cache
	// CacheTTL is how long a cached result is served.
	CacheTTL time.Duration
}

// RateService quotes all providers concurrently and reconciles their answers.
type RateService struct {
	providers []ports.RateProvider
	opts      Options
	inflight  singleflight.Group
}

// NewRateService creates a new RateService. Provider order is kept in results.
func NewRateService(providers []ports.RateProvider, opts Options) *RateService {
	return &RateService{
		providers: providers,
		opts:      opts,
	}
}

// GetRates quotes every provider for the standard and signature variants.
// A failing provider is reported in Errors and never blocks the others.
// ErrNoRates is returned together with the result when no provider quoted anything.
func (s *RateService) GetRates(ctx context.Context, req domain.RateRequest) (*domain.RateResult, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	key, err := cacheKey(req)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	// Joined callers share one round, so it must outlive the caller that started it.
	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		result := s.quoteAll(shared, req)
		if countQuotes(result) == 0 {
			return result, domain.ErrNoRates
		}
		if len(result.Errors) == 0 {
			s.toCache(shared, key, result)
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val.(*domain.RateResult), res.Err
	}
}

func (s *RateService) normalize(req domain.RateRequest) (domain.RateRequest, error) {
	if !req.Parcel.Valid() {
		return req, ErrInvalidParcel
	}
	to := req.ToAddress
	if to.Street == "" || to.City == "" || to.Zip == "" {
		return req, ErrInvalidDestination
	}

	if req.FromAddress.Street == "" {
		req.FromAddress = s.opts.Sender
	}
	req.FromAddress = req.FromAddress.WithDefaults()
	req.ToAddress = req.ToAddress.WithDefaults()
	req.Parcel = req.Parcel.WithDefaults()
	return req, nil
}

// quoteAll fans out to every provider. Each provider gets its own timeout
// and quotes both variants in parallel.
func (s *RateService) quoteAll(ctx context.Context, req domain.RateRequest) *domain.RateResult {
	var (
		mu   sync.Mutex
		data = make(map[string]domain.RateQuoteSet)
		errs = make(map[string]domain.ProviderError)
		g    errgroup.Group
		log  = logger.Named("rates")
	)

	for _, p := range s.providers {
		p := p
		g.Go(func() error {
			set, perr := s.quoteProvider(ctx, p, req)

			mu.Lock()
			defer mu.Unlock()
			if perr.Base == "" {
				data[p.Name()] = set
			}
			if perr.Base != "" || perr.Signature != "" {
				errs[p.Name()] = perr
				log.Warn("Provider quote failed",
					zap.String("provider", p.Name()),
					zap.String("error", perr.Error()),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	return &domain.RateResult{
		Data:     data,
		Errors:   errs,
		Carriers: domain.TablesByProvider(data),
	}
}

func (s *RateService) quoteProvider(ctx context.Context, p ports.RateProvider, req domain.RateRequest) (domain.RateQuoteSet, domain.ProviderError) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	var (
		set             domain.RateQuoteSet
		baseErr, sigErr error
		g               errgroup.Group
	)
	g.Go(func() error {
		set.Base, baseErr = p.GetRates(ctx, req, false)
		return nil
	})
	g.Go(func() error {
		set.Signature, sigErr = p.GetRates(ctx, req, true)
		return nil
	})
	_ = g.Wait()

	if set.Base == nil {
		set.Base = []domain.RawRateQuote{}
	}
	if set.Signature == nil {
		set.Signature = []domain.RawRateQuote{}
	}

	return set, domain.ProviderError{Base: describe(baseErr), Signature: describe(sigErr)}
}

// describe turns a provider error into the message shown to the user.
func describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return domain.TimeoutMessage
	default:
		return err.Error()
	}
}

func countQuotes(r *domain.RateResult) int {
	n := 0
	for _, set := range r.Data {
		n += len(set.Base) + len(set.Signature)
	}
	return n
}

func cacheKey(req domain.RateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode rate request: %w", err)
	}
	sum := sha256.Sum256(payload)
	return "rates:" + hex.EncodeToString(sum[:]), nil
}

func (s *RateService) fromCache(ctx context.Context, key string) (*domain.RateResult, bool) {
	if s.opts.Cache == nil {
		return nil, false
	}

	raw, err := s.opts.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Get().Warn("Rate cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var result domain.RateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Get().Warn("Rate cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	result.Cached = true
	return &result, true
}

func (s *RateService) toCache(ctx context.Context, key string, result *domain.RateResult) {
	if s.opts.Cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		logger.Get().Warn("Failed to encode rate result", zap.Error(err))
		return
	}
	if err := s.opts.Cache.Set(ctx, key, raw, s.opts.CacheTTL); err != nil {
		logger.Get().Warn("Rate cache write failed", zap.Error(err))
	}
}

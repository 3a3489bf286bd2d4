package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RateTableStore caches a company's rate table. Get returns
// finance.ErrRateTableNotCached on a miss.
type RateTableStore interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*finance.RateTable, error)
	Set(ctx context.Context, tenantID uuid.UUID, table *finance.RateTable, ttl time.Duration) error
}

// BuildRecorder records statement build outcomes
type BuildRecorder interface {
	RecordBuild(ctx context.Context, tenantID uuid.UUID, elapsed time.Duration, err error)
}

// StatementServiceConfig holds the statement settings
type StatementServiceConfig struct {
	ReportingCurrency valueobject.Currency
	DefaultPageSize   int
	RateCacheTTL      time.Duration
	// Clock supplies the evaluation date; nil uses the system clock
	Clock finance.Clock
}

// StatementService builds customer statements on demand
type StatementService struct {
	customerRepo partner.CustomerRepository
	invoices     finance.InvoiceSource
	revenues     finance.RevenueSource
	currencyRepo finance.CurrencyRepository
	rates        RateTableStore
	metrics      BuildRecorder
	cfg          StatementServiceConfig
	logger       *zap.Logger
}

// NewStatementService creates a new StatementService. rates and metrics may
// be nil.
func NewStatementService(
	customerRepo partner.CustomerRepository,
	invoices finance.InvoiceSource,
	revenues finance.RevenueSource,
	currencyRepo finance.CurrencyRepository,
	rates RateTableStore,
	metrics BuildRecorder,
	cfg StatementServiceConfig,
	logger *zap.Logger,
) *StatementService {
	if cfg.Clock == nil {
		cfg.Clock = finance.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatementService{
		customerRepo: customerRepo,
		invoices:     invoices,
		revenues:     revenues,
		currencyRepo: currencyRepo,
		rates:        rates,
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger,
	}
}

// CustomerStatement loads the customer and computes its summary.
// localizer resolves the payment category label for the request's locale.
func (s *StatementService) CustomerStatement(
	ctx context.Context,
	tenantID, customerID uuid.UUID,
	opts finance.StatementOptions,
	localizer finance.Localizer,
) (*CustomerStatementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer_statement", "build",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrCustomerID, customerID.String(),
	)
	defer span.End()

	started := time.Now()
	summary, customer, err := s.build(ctx, tenantID, customerID, opts, localizer)
	if s.metrics != nil {
		s.metrics.RecordBuild(ctx, tenantID, time.Since(started), err)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceCount, summary.Counts.Invoices,
		telemetry.SpanAttrRevenueCount, summary.Counts.Revenues,
	)
	return &CustomerStatementResponse{
		Customer: ToCustomerResponse(customer),
		Summary:  summary,
	}, nil
}

func (s *StatementService) build(
	ctx context.Context,
	tenantID, customerID uuid.UUID,
	opts finance.StatementOptions,
	localizer finance.Localizer,
) (*finance.CustomerSummary, *partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, nil, err
	}

	table, err := s.rateTable(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	builder := finance.NewCustomerStatementBuilder(s.invoices, s.revenues, table, localizer,
		finance.WithDefaultPageSize(s.cfg.DefaultPageSize),
		finance.WithClock(s.cfg.Clock),
	)
	summary, err := builder.Build(ctx, tenantID, customerID, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build statement: %w", err)
	}
	return summary, customer, nil
}

// rateTable returns the cached rate table or rebuilds it from the company's
// currencies. Cache failures fall back to the database.
func (s *StatementService) rateTable(ctx context.Context, tenantID uuid.UUID) (*finance.RateTable, error) {
	if s.rates != nil {
		table, err := s.rates.Get(ctx, tenantID)
		if err == nil {
			return table, nil
		}
		if !errors.Is(err, finance.ErrRateTableNotCached) {
			s.logger.Warn("Rate table cache read failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}

	currencies, err := s.currencyRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}
	table, err := finance.RateTableFromCurrencies(s.cfg.ReportingCurrency, currencies)
	if err != nil {
		return nil, err
	}

	if s.rates != nil {
		if err := s.rates.Set(ctx, tenantID, table, s.cfg.RateCacheTTL); err != nil {
			s.logger.Warn("Rate table cache write failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
	return table, nil
}

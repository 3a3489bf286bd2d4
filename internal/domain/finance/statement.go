package finance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"golang.org/x/sync/errgroup"
)

// InvoicesLabelKey is the translation key for the category shown on
// payment-derived transaction entries.
const InvoicesLabelKey = "general.invoices"

// Clock supplies the evaluation date when the caller does not pass one
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now
func (SystemClock) Now() time.Time { return time.Now() }

// Localizer resolves plural-aware labels
type Localizer interface {
	Choice(key string, count int) string
}

// EntryKind distinguishes payment-derived from revenue-derived entries
type EntryKind string

const (
	EntryKindPayment EntryKind = "payment"
	EntryKindRevenue EntryKind = "revenue"
)

// TransactionCategory is the category label attached to an entry.
// Payment entries use the zero ID and the localized invoices label.
type TransactionCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TransactionEntry is one row of the statement's transaction history
type TransactionEntry struct {
	Kind            EntryKind           `json:"kind"`
	ID              uuid.UUID           `json:"id"`
	PaidAt          time.Time           `json:"paid_at"`
	Amount          valueobject.Money   `json:"amount"`
	ConvertedAmount valueobject.Money   `json:"converted_amount"`
	Category        TransactionCategory `json:"category"`
	Description     string              `json:"description,omitempty"`
	InvoiceID       *uuid.UUID          `json:"invoice_id,omitempty"`
	Account         *AccountRef         `json:"account,omitempty"`
}

// StatementAmounts holds the reporting-currency totals
type StatementAmounts struct {
	Paid    valueobject.Money `json:"paid"`
	Open    valueobject.Money `json:"open"`
	Overdue valueobject.Money `json:"overdue"`
}

// StatementCounts holds the number of source records
type StatementCounts struct {
	Invoices int `json:"invoices"`
	Revenues int `json:"revenues"`
}

// CustomerSummary is a customer's financial position. It is computed on
// demand and never persisted.
type CustomerSummary struct {
	CustomerID        uuid.UUID                          `json:"customer_id"`
	ReportingCurrency valueobject.Currency               `json:"reporting_currency"`
	EvaluationDate    time.Time                          `json:"evaluation_date"`
	Amounts           StatementAmounts                   `json:"amounts"`
	Counts            StatementCounts                    `json:"counts"`
	Transactions      shared.Paginated[TransactionEntry] `json:"transactions"`
}

// StatementOptions are the per-call inputs. Zero values select defaults:
// the clock's current date, the configured page size and page 1.
type StatementOptions struct {
	EvaluationDate time.Time
	PageSize       int
	Page           int
}

// CustomerStatementBuilder aggregates invoices, payments and revenues into a
// CustomerSummary.
type CustomerStatementBuilder struct {
	invoices        InvoiceSource
	revenues        RevenueSource
	converter       CurrencyConverter
	clock           Clock
	localizer       Localizer
	defaultPageSize int
}

// BuilderOption configures a CustomerStatementBuilder
type BuilderOption func(*CustomerStatementBuilder)

// WithDefaultPageSize sets the page size used when the caller passes none
func WithDefaultPageSize(size int) BuilderOption {
	return func(b *CustomerStatementBuilder) {
		if size > 0 {
			b.defaultPageSize = size
		}
	}
}

// WithClock overrides the clock
func WithClock(clock Clock) BuilderOption {
	return func(b *CustomerStatementBuilder) {
		b.clock = clock
	}
}

// NewCustomerStatementBuilder creates a builder
func NewCustomerStatementBuilder(
	invoices InvoiceSource,
	revenues RevenueSource,
	converter CurrencyConverter,
	localizer Localizer,
	opts ...BuilderOption,
) *CustomerStatementBuilder {
	b := &CustomerStatementBuilder{
		invoices:        invoices,
		revenues:        revenues,
		converter:       converter,
		clock:           SystemClock{},
		localizer:       localizer,
		defaultPageSize: shared.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes the customer's summary. A customer without invoices or
// revenues yields zero totals and an empty page. Any conversion failure
// aborts the whole computation.
func (b *CustomerStatementBuilder) Build(ctx context.Context, tenantID, customerID uuid.UUID, opts StatementOptions) (*CustomerSummary, error) {
	evaluation := opts.EvaluationDate
	if evaluation.IsZero() {
		evaluation = b.clock.Now()
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = b.defaultPageSize
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	var (
		invoices []Invoice
		revenues []Revenue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = b.invoices.FindByCustomerWithPayments(gctx, tenantID, customerID)
		if err != nil {
			return fmt.Errorf("fetch invoices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		revenues, err = b.revenues.FindByCustomer(gctx, tenantID, customerID)
		if err != nil {
			return fmt.Errorf("fetch revenues: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reporting := b.converter.ReportingCurrency()
	agg := aggregation{
		paid:    valueobject.Zero(reporting),
		open:    valueobject.Zero(reporting),
		overdue: valueobject.Zero(reporting),
	}
	today := dateOf(evaluation, evaluation.Location())
	invoiceCategory := TransactionCategory{ID: uuid.Nil, Name: b.localizer.Choice(InvoicesLabelKey, 2)}

	entries := make([]TransactionEntry, 0, len(revenues))
	for i := range invoices {
		invoice := &invoices[i]
		applied := valueobject.Zero(reporting)

		for _, payment := range invoice.Payments {
			converted, err := b.converter.Convert(payment.Amount)
			if err != nil {
				return nil, err
			}
			if err := agg.addPaid(converted); err != nil {
				return nil, err
			}
			if applied, err = applied.Add(converted); err != nil {
				return nil, err
			}
			invoiceID := invoice.ID
			entries = append(entries, TransactionEntry{
				Kind:            EntryKindPayment,
				ID:              payment.ID,
				PaidAt:          payment.PaidAt,
				Amount:          payment.Amount,
				ConvertedAmount: converted,
				Category:        invoiceCategory,
				Description:     payment.Description,
				InvoiceID:       &invoiceID,
			})
		}

		if invoice.IsPaid() {
			continue
		}

		total, err := b.converter.Convert(invoice.Amount)
		if err != nil {
			return nil, err
		}
		remainder, err := total.Subtract(applied)
		if err != nil {
			return nil, err
		}
		// Overpayment is already counted in paid; it must not offset other invoices.
		if remainder.IsNegative() {
			remainder = valueobject.Zero(reporting)
		}
		if isOpen(invoice.DueAt, today) {
			err = agg.addOpen(remainder)
		} else {
			err = agg.addOverdue(remainder)
		}
		if err != nil {
			return nil, err
		}
	}

	for i := range revenues {
		revenue := &revenues[i]
		converted, err := b.converter.Convert(revenue.Amount)
		if err != nil {
			return nil, err
		}
		if err := agg.addPaid(converted); err != nil {
			return nil, err
		}
		account := revenue.Account
		entries = append(entries, TransactionEntry{
			Kind:            EntryKindRevenue,
			ID:              revenue.ID,
			PaidAt:          revenue.PaidAt,
			Amount:          revenue.Amount,
			ConvertedAmount: converted,
			Category:        TransactionCategory{ID: revenue.Category.ID, Name: revenue.Category.Name},
			Description:     revenue.Description,
			Account:         &account,
		})
	}

	// Equal dates keep merge order: payments in invoice order, then revenues.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PaidAt.After(entries[j].PaidAt)
	})

	return &CustomerSummary{
		CustomerID:        customerID,
		ReportingCurrency: reporting,
		EvaluationDate:    today,
		Amounts: StatementAmounts{
			Paid:    agg.paid,
			Open:    agg.open,
			Overdue: agg.overdue,
		},
		Counts: StatementCounts{
			Invoices: len(invoices),
			Revenues: len(revenues),
		},
		Transactions: shared.PaginateSlice(entries, page, pageSize),
	}, nil
}

type aggregation struct {
	paid    valueobject.Money
	open    valueobject.Money
	overdue valueobject.Money
}

func (a *aggregation) addPaid(m valueobject.Money) (err error) {
	a.paid, err = a.paid.Add(m)
	return err
}

func (a *aggregation) addOpen(m valueobject.Money) (err error) {
	a.open, err = a.open.Add(m)
	return err
}

func (a *aggregation) addOverdue(m valueobject.Money) (err error) {
	a.overdue, err = a.overdue.Add(m)
	return err
}

// isOpen reports whether an invoice due at dueAt is still open on today.
// A due date falling on today is open.
func isOpen(dueAt, today time.Time) bool {
	return !dateOf(dueAt, today.Location()).Before(today)
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

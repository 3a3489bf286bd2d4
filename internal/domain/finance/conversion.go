package finance

import (
	"errors"
	"fmt"

	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrCodeConversionFailed is the domain error code for conversion failures
const ErrCodeConversionFailed = "CONVERSION_FAILED"

// ErrRateTableNotCached is returned by rate table caches on a miss
var ErrRateTableNotCached = errors.New("rate table not cached")

// CurrencyConverter converts amounts into a single reporting currency
type CurrencyConverter interface {
	ReportingCurrency() valueobject.Currency
	Convert(amount valueobject.Money) (valueobject.Money, error)
}

// ConversionError identifies the currency that could not be converted
type ConversionError struct {
	Currency valueobject.Currency
	Reason   string
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s: %s", e.Currency, e.Reason)
}

// Code returns the domain error code
func (e *ConversionError) Code() string {
	return ErrCodeConversionFailed
}

// RateTable converts between currencies using rates relative to a common
// base currency, the way company currencies are configured.
type RateTable struct {
	reporting valueobject.Currency
	rates     map[valueobject.Currency]decimal.Decimal
}

// NewRateTable builds a converter. The reporting currency must have a rate.
func NewRateTable(reporting valueobject.Currency, rates map[valueobject.Currency]decimal.Decimal) (*RateTable, error) {
	copied := make(map[valueobject.Currency]decimal.Decimal, len(rates))
	for code, rate := range rates {
		copied[code] = rate
	}
	rate, ok := copied[reporting]
	if !ok || !rate.IsPositive() {
		return nil, &ConversionError{Currency: reporting, Reason: "reporting currency has no rate"}
	}
	return &RateTable{reporting: reporting, rates: copied}, nil
}

// RateTableFromCurrencies builds a converter from configured company currencies.
// Disabled currencies keep their rate so historical records still convert.
func RateTableFromCurrencies(reporting valueobject.Currency, currencies []CompanyCurrency) (*RateTable, error) {
	rates := make(map[valueobject.Currency]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		rates[c.Code] = c.Rate
	}
	return NewRateTable(reporting, rates)
}

// ReportingCurrency returns the target currency
func (t *RateTable) ReportingCurrency() valueobject.Currency {
	return t.reporting
}

// Rates returns a copy of the rate map
func (t *RateTable) Rates() map[valueobject.Currency]decimal.Decimal {
	out := make(map[valueobject.Currency]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// Convert converts amount into the reporting currency
func (t *RateTable) Convert(amount valueobject.Money) (valueobject.Money, error) {
	source := amount.Currency()
	if source == t.reporting {
		return amount, nil
	}
	rate, ok := t.rates[source]
	if !ok {
		return valueobject.Money{}, &ConversionError{Currency: source, Reason: "no exchange rate configured"}
	}
	if !rate.IsPositive() {
		return valueobject.Money{}, &ConversionError{Currency: source, Reason: "exchange rate must be positive"}
	}
	converted := amount.Amount().Div(rate).Mul(t.rates[t.reporting])
	return valueobject.NewMoney(converted, t.reporting)
}

// Package importer turns uploaded spreadsheets into domain records.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/infrastructure/csvimport"
	"github.com/ledgerline/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MaxReportedErrors caps the row errors returned to the caller
const MaxReportedErrors = 100

// ObjectStorage archives raw uploads
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Upload is a file received from the import form
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CustomerImportResult represents the result of a customer import operation
type CustomerImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
	ArchiveKey   string               `json:"archive_key,omitempty"`
}

// customerSchema mirrors the customer form rules
var customerSchema = csvimport.Schema{
	{Column: "name", Required: true, MaxLength: 255},
	{Column: "email", MaxLength: 255, Email: true},
	{Column: "currency_code", Required: true, ExactLen: 3},
	{Column: "tax_number", MaxLength: 255},
	{Column: "phone", MaxLength: 50},
	{Column: "website", MaxLength: 255, URL: true},
	{Column: "reference", MaxLength: 255},
}

// CustomerImportService handles customer bulk import operations
type CustomerImportService struct {
	customerRepo partner.CustomerRepository
	storage      ObjectStorage
	logger       *zap.Logger
	now          func() time.Time
}

// NewCustomerImportService creates a new CustomerImportService.
// storage may be nil, in which case uploads are not archived.
func NewCustomerImportService(customerRepo partner.CustomerRepository, storage ObjectStorage, logger *zap.Logger) *CustomerImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerImportService{
		customerRepo: customerRepo,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
	}
}

// Import creates one customer per non-blank row. Rows are validated first;
// if any row fails nothing is saved and every failure is reported.
func (s *CustomerImportService) Import(ctx context.Context, tenantID uuid.UUID, upload Upload) (*CustomerImportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer_import", "import",
		telemetry.SpanAttrTenantID, tenantID.String(),
	)
	defer span.End()

	format, ok := csvimport.DetectFormat(upload.FileName, upload.ContentType)
	if !ok {
		return nil, shared.NewDomainError(csvimport.ErrCodeImportInvalidFile, "Only CSV and XLSX files can be imported")
	}
	parser, err := csvimport.ParserFor(format)
	if err != nil {
		return nil, shared.NewDomainError(csvimport.ErrCodeImportInvalidFile, err.Error())
	}
	headers, rows, err := parser.Parse(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, shared.NewDomainError(csvimport.ErrCodeImportInvalidFile, err.Error())
	}
	if missing := customerSchema.MissingColumns(headers); len(missing) > 0 {
		return nil, shared.NewDomainError(csvimport.ErrCodeImportInvalidFile,
			fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}

	result := &CustomerImportResult{TotalRows: len(rows)}
	result.ArchiveKey = s.archive(ctx, tenantID, upload)

	errs := csvimport.NewErrorCollection(MaxReportedErrors)
	customers := make([]*partner.Customer, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rowErrs := customerSchema.Validate(row); len(rowErrs) > 0 {
			result.ErrorRows++
			for _, e := range rowErrs {
				errs.Add(e)
			}
			continue
		}
		customer, err := customerFromRow(tenantID, row)
		if err != nil {
			result.ErrorRows++
			errs.Add(csvimport.RowError{Row: row.LineNumber, Code: csvimport.ErrCodeImportRowRejected, Message: err.Error()})
			continue
		}
		customers = append(customers, customer)
	}

	result.Errors = errs.Errors()
	result.IsTruncated = errs.IsTruncated()
	result.TotalErrors = errs.TotalCount()
	telemetry.SetAttributes(span, telemetry.SpanAttrRowCount, result.TotalRows)

	if result.ErrorRows > 0 {
		s.logger.Warn("Customer import rejected",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("error_rows", result.ErrorRows),
		)
		return result, nil
	}

	if err := s.customerRepo.SaveBatch(ctx, customers); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("save imported customers: %w", err)
	}
	result.ImportedRows = len(customers)

	s.logger.Info("Customers imported",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("imported_rows", result.ImportedRows),
	)
	return result, nil
}

// archive stores the raw upload and returns its key. Failures are logged and
// do not block the import.
func (s *CustomerImportService) archive(ctx context.Context, tenantID uuid.UUID, upload Upload) string {
	if s.storage == nil {
		return ""
	}
	key := path.Join("imports", "customers", tenantID.String(),
		s.now().UTC().Format("20060102T150405Z")+"-"+path.Base(strings.ReplaceAll(upload.FileName, "\\", "/")))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.storage.Put(ctx, key, upload.Data, contentType); err != nil {
		s.logger.Warn("Failed to archive import file",
			zap.String("tenant_id", tenantID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return ""
	}
	return key
}

func customerFromRow(tenantID uuid.UUID, row *csvimport.Row) (*partner.Customer, error) {
	currency := valueobject.Currency(strings.ToUpper(row.Get("currency_code")))
	customer, err := partner.NewCustomer(tenantID, row.Get("name"), row.GetOrDefault("email", ""), currency)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(customer.Email, row.Get("phone"), row.Get("website")); err != nil {
		return nil, err
	}
	customer.SetBilling(row.Get("tax_number"), row.Get("address"), row.Get("reference"))
	if raw := row.Get("enabled"); raw != "" {
		enabled, err := parseEnabled(raw)
		if err != nil {
			return nil, err
		}
		if !enabled {
			customer.Disable()
		}
	}
	return customer, nil
}

func parseEnabled(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("enabled must be yes or no, got %q", raw)
}

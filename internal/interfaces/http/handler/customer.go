package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/application/importer"
	partnerapp "github.com/ledgerline/backend/internal/application/partner"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/infrastructure/i18n"
	"github.com/ledgerline/backend/internal/interfaces/http/dto"
	"github.com/ledgerline/backend/internal/interfaces/http/middleware"
)

// CustomerService is the customer use case surface used by the handler
type CustomerService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter partnerapp.CustomerListFilter) (*shared.Paginated[partnerapp.CustomerResponse], error)
	Get(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
	CreateForm(ctx context.Context, tenantID uuid.UUID) (*partnerapp.CustomerFormResponse, error)
	EditForm(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerFormResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, in partnerapp.CustomerInput) (*partnerapp.CustomerResponse, error)
	InlineCreate(ctx context.Context, tenantID uuid.UUID, in partnerapp.InlineCustomerInput) (*partnerapp.CustomerResponse, error)
	Duplicate(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
	Update(ctx context.Context, tenantID, customerID uuid.UUID, in partnerapp.CustomerInput) (*partnerapp.CustomerResponse, error)
	Enable(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
	Disable(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

// StatementService builds the customer financial summary
type StatementService interface {
	CustomerStatement(ctx context.Context, tenantID, customerID uuid.UUID, opts finance.StatementOptions, localizer finance.Localizer) (*partnerapp.CustomerStatementResponse, error)
}

// CustomerImporter imports customers from an uploaded spreadsheet
type CustomerImporter interface {
	Import(ctx context.Context, tenantID uuid.UUID, upload importer.Upload) (*importer.CustomerImportResult, error)
}

// CustomerHandler handles the /incomes/customers endpoints
type CustomerHandler struct {
	BaseHandler
	customers     CustomerService
	statements    StatementService
	importer      CustomerImporter
	bundle        *i18n.Bundle
	maxUploadSize int64
}

// NewCustomerHandler creates a new CustomerHandler. maxUploadSize bounds
// import files; zero means no limit beyond the global body limit.
func NewCustomerHandler(
	customers CustomerService,
	statements StatementService,
	imports CustomerImporter,
	bundle *i18n.Bundle,
	maxUploadSize int64,
) *CustomerHandler {
	return &CustomerHandler{
		customers:     customers,
		statements:    statements,
		importer:      imports,
		bundle:        bundle,
		maxUploadSize: maxUploadSize,
	}
}

// CustomerRequest is the body of store and update
type CustomerRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required_if=CreateUser true,omitempty,email,max=255"`
	TaxNumber            string `json:"tax_number" binding:"max=255"`
	CurrencyCode         string `json:"currency_code" binding:"required,len=3"`
	Phone                string `json:"phone" binding:"max=50"`
	Address              string `json:"address"`
	Website              string `json:"website" binding:"omitempty,url,max=255"`
	Reference            string `json:"reference" binding:"max=255"`
	Enabled              *bool  `json:"enabled"`
	CreateUser           bool   `json:"create_user"`
	Password             string `json:"password" binding:"required_if=CreateUser true,omitempty,min=6,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required_if=CreateUser true,omitempty,eqfield=Password"`
}

func (r CustomerRequest) toInput() partnerapp.CustomerInput {
	return partnerapp.CustomerInput{
		Name:         r.Name,
		Email:        r.Email,
		TaxNumber:    r.TaxNumber,
		CurrencyCode: r.CurrencyCode,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		Reference:    r.Reference,
		Enabled:      r.Enabled,
		CreateUser:   r.CreateUser,
		Password:     r.Password,
	}
}

// InlineCustomerRequest is the body of the inline create endpoint
type InlineCustomerRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	CurrencyCode string `json:"currency_code" binding:"required,len=3"`
}

// CustomerListQuery holds the index query string
type CustomerListQuery struct {
	dto.ListRequest
	Enabled *bool `form:"enabled"`
}

// StatementQuery holds the show query string
type StatementQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Date  string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// FieldRequest asks for form fragments. Type "create_user" expands to the
// password pair; Fields names fragments directly.
type FieldRequest struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

// FieldResponse carries a rendered HTML fragment
type FieldResponse struct {
	HTML string `json:"html"`
}

// List returns a page of customers.
// GET /incomes/customers
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var query CustomerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.customers.List(c.Request.Context(), tenantID, partnerapp.CustomerListFilter{
		Search:   query.Search,
		Enabled:  query.Enabled,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Show returns the customer with its statement.
// GET /incomes/customers/:id
func (h *CustomerHandler) Show(c *gin.Context) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var query StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	opts := finance.StatementOptions{PageSize: query.Limit, Page: query.Page}
	if query.Date != "" {
		// format already checked by binding
		opts.EvaluationDate, _ = time.Parse(time.DateOnly, query.Date)
	}

	statement, err := h.statements.CustomerStatement(c.Request.Context(), tenantID, customerID, opts, h.localizer(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// CreateForm returns the data of the create form.
// GET /incomes/customers/create
func (h *CustomerHandler) CreateForm(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	form, err := h.customers.CreateForm(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, form)
}

// Store creates a customer, optionally with a portal user.
// POST /incomes/customers
func (h *CustomerHandler) Store(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), tenantID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.Created(c, customer, h.flash(c, "messages.success.added", 1))
}

// Duplicate clones a customer and returns the clone.
// POST /incomes/customers/:id/duplicate
func (h *CustomerHandler) Duplicate(c *gin.Context) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	clone, err := h.customers.Duplicate(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.Created(c, clone, h.flash(c, "messages.success.duplicated", 1))
}

// Import creates customers from an uploaded CSV or XLSX file.
// POST /incomes/customers/import
func (h *CustomerHandler) Import(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	header, err := c.FormFile("import")
	if err != nil {
		header, err = c.FormFile("file")
	}
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeImportInvalidFile, "An import file is required")
		return
	}
	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Import file exceeds maximum allowed size")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeImportInvalidFile, "Unable to read the import file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeImportInvalidFile, "Unable to read the import file")
		return
	}

	result, err := h.importer.Import(c.Request.Context(), tenantID, importer.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.ErrorRows > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.Response{
			Success: false,
			Data:    result,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeValidation,
				Message:   "Import rejected: some rows are invalid",
				RequestID: getRequestID(c),
				Timestamp: time.Now(),
			},
		})
		return
	}
	h.SuccessWithMessage(c, result, h.flash(c, "messages.success.imported", 2))
}

// EditForm returns the customer and the enabled currencies.
// GET /incomes/customers/:id/edit
func (h *CustomerHandler) EditForm(c *gin.Context) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	form, err := h.customers.EditForm(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, form)
}

// Update replaces the customer fields.
// PUT /incomes/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), tenantID, customerID, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.SuccessWithMessage(c, customer, h.flash(c, "messages.success.updated", 1))
}

// Enable marks the customer enabled.
// POST /incomes/customers/:id/enable
func (h *CustomerHandler) Enable(c *gin.Context) {
	h.toggle(c, h.customers.Enable, "messages.success.enabled")
}

// Disable marks the customer disabled.
// POST /incomes/customers/:id/disable
func (h *CustomerHandler) Disable(c *gin.Context) {
	h.toggle(c, h.customers.Disable, "messages.success.disabled")
}

func (h *CustomerHandler) toggle(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*partnerapp.CustomerResponse, error), key string) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	customer, err := fn(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, customer, h.flash(c, key, 1))
}

// Destroy deletes a customer that has no invoices or revenues.
// DELETE /incomes/customers/:id
func (h *CustomerHandler) Destroy(c *gin.Context) {
	tenantID, customerID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), tenantID, customerID); err != nil {
		h.handleError(c, err)
		return
	}
	h.SuccessWithMessage(c, nil, h.flash(c, "messages.success.deleted", 1))
}

// Currency returns the customer picked on a document form.
// GET /incomes/customers/currency?customer_id=
func (h *CustomerHandler) Currency(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		h.NotFound(c, "Customer not found")
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Inline creates a customer from the minimal fields of another form.
// POST /incomes/customers/inline
func (h *CustomerHandler) Inline(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req InlineCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	customer, err := h.customers.InlineCreate(c.Request.Context(), tenantID, partnerapp.InlineCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		CurrencyCode: req.CurrencyCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.Created(c, customer, "")
}

var passwordFieldTemplate = template.Must(template.New("password").Parse(
	`<div class="form-group col-md-6 password"><label for="{{.Name}}" class="control-label">{{.Label}}</label>` +
		`<div class="input-group"><div class="input-group-addon"><i class="fa fa-key"></i></div>` +
		`<input class="form-control" placeholder="{{.Label}}" name="{{.Name}}" type="password" id="{{.Name}}"></div></div>`,
))

var fieldLabels = map[string]string{
	"password":              "auth.password.current",
	"password_confirmation": "auth.password.current_confirm",
}

// Field renders the extra form inputs requested by the customer form.
// POST /incomes/customers/field
func (h *CustomerHandler) Field(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}

	fields := req.Fields
	if req.Type == "create_user" {
		fields = []string{"password", "password_confirmation"}
	}

	localizer := h.localizer(c)
	var buf bytes.Buffer
	for _, field := range fields {
		key, ok := fieldLabels[field]
		if !ok {
			continue
		}
		if err := passwordFieldTemplate.Execute(&buf, struct{ Name, Label string }{field, localizer.Trans(key, nil)}); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.Success(c, FieldResponse{HTML: buf.String()})
}

// handleError localizes the customer specific errors before HandleError
func (h *CustomerHandler) handleError(c *gin.Context, err error) {
	localizer := h.localizer(c)

	var fieldErr *shared.FieldError
	if errors.As(err, &fieldErr) && fieldErr.Code == partnerapp.ErrCodeEmailTaken {
		localized := *fieldErr
		localized.Message = localizer.Trans("customers.error.email", nil)
		err = &localized
	}

	var conflictErr *shared.StateConflictError
	if errors.As(err, &conflictErr) {
		localized := *conflictErr
		localized.Message = h.deleteWarning(localizer, conflictErr)
		err = &localized
	}
	h.HandleError(c, err)
}

// deleteWarning lists the non-empty relations, e.g. "invoices, revenues"
func (h *CustomerHandler) deleteWarning(localizer *i18n.Localizer, conflict *shared.StateConflictError) string {
	labels := map[string]string{
		partnerapp.RelationInvoices: "general.invoices",
		partnerapp.RelationRevenues: "general.revenues",
	}
	var related []string
	for _, relation := range []string{partnerapp.RelationInvoices, partnerapp.RelationRevenues} {
		if conflict.Details[relation] > 0 {
			related = append(related, strings.ToLower(localizer.Choice(labels[relation], 2)))
		}
	}
	return localizer.Trans("messages.warning.deleted", map[string]string{
		"name": conflict.Subject,
		"text": strings.Join(related, ", "),
	})
}

// flash builds a success message such as "Customer added!"
func (h *CustomerHandler) flash(c *gin.Context, key string, count int) string {
	localizer := h.localizer(c)
	return localizer.Trans(key, map[string]string{"type": localizer.Choice("general.customers", count)})
}

func (h *CustomerHandler) localizer(c *gin.Context) *i18n.Localizer {
	if l := middleware.GetLocalizer(c); l != nil {
		return l
	}
	return h.bundle.LocalizerFor(c.GetHeader("Accept-Language"))
}

func (h *CustomerHandler) tenant(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return uuid.Nil, false
	}
	return tenantID, true
}

func (h *CustomerHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, customerID, true
}

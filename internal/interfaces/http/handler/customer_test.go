package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/application/importer"
	partnerapp "github.com/ledgerline/backend/internal/application/partner"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/infrastructure/csvimport"
	"github.com/ledgerline/backend/internal/infrastructure/i18n"
	"github.com/ledgerline/backend/internal/interfaces/http/dto"
	"github.com/ledgerline/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) response(args mock.Arguments) (*partnerapp.CustomerResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) form(args mock.Arguments) (*partnerapp.CustomerFormResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerFormResponse), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, tenantID uuid.UUID, filter partnerapp.CustomerListFilter) (*shared.Paginated[partnerapp.CustomerResponse], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partnerapp.CustomerResponse]), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, customerID))
}

func (m *MockCustomerService) CreateForm(ctx context.Context, tenantID uuid.UUID) (*partnerapp.CustomerFormResponse, error) {
	return m.form(m.Called(ctx, tenantID))
}

func (m *MockCustomerService) EditForm(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerFormResponse, error) {
	return m.form(m.Called(ctx, tenantID, customerID))
}

func (m *MockCustomerService) Create(ctx context.Context, tenantID uuid.UUID, in partnerapp.CustomerInput) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, in))
}

func (m *MockCustomerService) InlineCreate(ctx context.Context, tenantID uuid.UUID, in partnerapp.InlineCustomerInput) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, in))
}

func (m *MockCustomerService) Duplicate(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, customerID))
}

func (m *MockCustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, in partnerapp.CustomerInput) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, customerID, in))
}

func (m *MockCustomerService) Enable(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, customerID))
}

func (m *MockCustomerService) Disable(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, tenantID, customerID))
}

func (m *MockCustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return m.Called(ctx, tenantID, customerID).Error(0)
}

type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) CustomerStatement(ctx context.Context, tenantID, customerID uuid.UUID, opts finance.StatementOptions, localizer finance.Localizer) (*partnerapp.CustomerStatementResponse, error) {
	args := m.Called(ctx, tenantID, customerID, opts, localizer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerStatementResponse), args.Error(1)
}

type MockCustomerImporter struct {
	mock.Mock
}

func (m *MockCustomerImporter) Import(ctx context.Context, tenantID uuid.UUID, upload importer.Upload) (*importer.CustomerImportResult, error) {
	args := m.Called(ctx, tenantID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.CustomerImportResult), args.Error(1)
}

type customerFixture struct {
	router     *gin.Engine
	customers  *MockCustomerService
	statements *MockStatementService
	imports    *MockCustomerImporter
	tenantID   uuid.UUID
}

func newCustomerFixture(t *testing.T, maxUploadSize int64) *customerFixture {
	t.Helper()
	middleware.SetupValidator()
	bundle, err := i18n.NewBundle("en-GB")
	require.NoError(t, err)

	f := &customerFixture{
		customers:  new(MockCustomerService),
		statements: new(MockStatementService),
		imports:    new(MockCustomerImporter),
		tenantID:   uuid.New(),
	}
	h := NewCustomerHandler(f.customers, f.statements, f.imports, bundle, maxUploadSize)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Anonymous") == "" {
			c.Set(middleware.TenantIDKey, f.tenantID.String())
		}
		c.Next()
	})
	g := r.Group("/api/v1/incomes/customers")
	g.GET("", h.List)
	g.GET("/create", h.CreateForm)
	g.GET("/currency", h.Currency)
	g.POST("", h.Store)
	g.POST("/inline", h.Inline)
	g.POST("/field", h.Field)
	g.POST("/import", h.Import)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.EditForm)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Destroy)
	g.POST("/:id/duplicate", h.Duplicate)
	g.POST("/:id/enable", h.Enable)
	g.POST("/:id/disable", h.Disable)
	f.router = r
	return f
}

func (f *customerFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCustomerHandler_List(t *testing.T) {
	f := newCustomerFixture(t, 0)
	enabled := true
	f.customers.On("List", mock.Anything, f.tenantID, partnerapp.CustomerListFilter{
		Search:   "acme",
		Enabled:  &enabled,
		OrderBy:  "name",
		OrderDir: "asc",
		Page:     2,
		PageSize: 10,
	}).Return(&shared.Paginated[partnerapp.CustomerResponse]{
		Items:    []partnerapp.CustomerResponse{{Name: "Acme Ltd"}},
		Total:    11,
		Page:     2,
		PageSize: 10,
	}, nil)

	w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers?search=acme&enabled=true&sort=name&direction=asc&page=2&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	f.customers.AssertExpectations(t)
}

func TestCustomerHandler_ListRejectsBadDirection(t *testing.T) {
	f := newCustomerFixture(t, 0)

	w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers?direction=up", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	f.customers.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerHandler_RequiresTenant(t *testing.T) {
	f := newCustomerFixture(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/incomes/customers", nil)
	req.Header.Set("X-Test-Anonymous", "1")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerHandler_Show(t *testing.T) {
	f := newCustomerFixture(t, 0)
	customerID := uuid.New()
	evaluation := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	f.statements.On("CustomerStatement", mock.Anything, f.tenantID, customerID,
		finance.StatementOptions{EvaluationDate: evaluation, PageSize: 5, Page: 2}, mock.Anything,
	).Return(&partnerapp.CustomerStatementResponse{
		Customer: partnerapp.CustomerResponse{ID: customerID, Name: "Acme Ltd"},
		Summary:  &finance.CustomerSummary{CustomerID: customerID, ReportingCurrency: "USD"},
	}, nil)

	w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers/"+customerID.String()+"?limit=5&page=2&date=2026-03-31", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, "USD", summary["reporting_currency"])
	f.statements.AssertExpectations(t)
}

func TestCustomerHandler_ShowErrors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		w, _ := f.do(t, http.MethodGet, "/api/v1/incomes/customers/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		w, _ := f.do(t, http.MethodGet, "/api/v1/incomes/customers/"+uuid.NewString()+"?date=31-03-2026", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.statements.On("CustomerStatement", mock.Anything, f.tenantID, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("NOT_FOUND", "customer not found"))
		w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("conversion failure", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.statements.On("CustomerStatement", mock.Anything, f.tenantID, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &finance.ConversionError{Currency: "GBP", Reason: "no rate"})
		w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeConversionFailed, resp.Error.Code)
	})
}

func TestCustomerHandler_Store(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.customers.On("Create", mock.Anything, f.tenantID, mock.MatchedBy(func(in partnerapp.CustomerInput) bool {
			return in.Name == "Acme Ltd" && in.CurrencyCode == "USD" && !in.CreateUser
		})).Return(&partnerapp.CustomerResponse{Name: "Acme Ltd"}, nil)

		w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers", map[string]any{
			"name":          "Acme Ltd",
			"currency_code": "USD",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Customer added!", resp.Message)
	})

	t.Run("create user requires matching passwords", func(t *testing.T) {
		f := newCustomerFixture(t, 0)

		w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers", map[string]any{
			"name":                  "Acme Ltd",
			"email":                 "billing@acme.test",
			"currency_code":         "USD",
			"create_user":           true,
			"password":              "secret1",
			"password_confirmation": "secret2",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "password_confirmation", resp.Error.Details[0].Field)
		f.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("create user requires email", func(t *testing.T) {
		f := newCustomerFixture(t, 0)

		w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers", map[string]any{
			"name":                  "Acme Ltd",
			"currency_code":         "USD",
			"create_user":           true,
			"password":              "secret1",
			"password_confirmation": "secret1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})

	t.Run("email taken is localized", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.customers.On("Create", mock.Anything, f.tenantID, mock.Anything).
			Return(nil, shared.NewFieldError("email", partnerapp.ErrCodeEmailTaken, "email in use"))

		w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers", map[string]any{
			"name":                  "Acme Ltd",
			"email":                 "billing@acme.test",
			"currency_code":         "USD",
			"create_user":           true,
			"password":              "secret1",
			"password_confirmation": "secret1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "This email has already been taken.", resp.Error.Details[0].Message)
	})
}

func TestCustomerHandler_Update(t *testing.T) {
	f := newCustomerFixture(t, 0)
	customerID := uuid.New()
	f.customers.On("Update", mock.Anything, f.tenantID, customerID, mock.AnythingOfType("partner.CustomerInput")).
		Return(&partnerapp.CustomerResponse{ID: customerID, Name: "Acme Holdings"}, nil)

	w, resp := f.do(t, http.MethodPut, "/api/v1/incomes/customers/"+customerID.String(), map[string]any{
		"name":          "Acme Holdings",
		"currency_code": "EUR",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer updated!", resp.Message)
}

func TestCustomerHandler_Duplicate(t *testing.T) {
	f := newCustomerFixture(t, 0)
	customerID := uuid.New()
	f.customers.On("Duplicate", mock.Anything, f.tenantID, customerID).
		Return(&partnerapp.CustomerResponse{ID: uuid.New(), Name: "Acme Ltd"}, nil)

	w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers/"+customerID.String()+"/duplicate", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Customer duplicated!", resp.Message)
}

func TestCustomerHandler_EnableDisable(t *testing.T) {
	f := newCustomerFixture(t, 0)
	customerID := uuid.New()
	f.customers.On("Enable", mock.Anything, f.tenantID, customerID).
		Return(&partnerapp.CustomerResponse{ID: customerID, Enabled: true}, nil)
	f.customers.On("Disable", mock.Anything, f.tenantID, customerID).
		Return(&partnerapp.CustomerResponse{ID: customerID, Enabled: false}, nil)

	w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers/"+customerID.String()+"/enable", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer enabled!", resp.Message)

	w, resp = f.do(t, http.MethodPost, "/api/v1/incomes/customers/"+customerID.String()+"/disable", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer disabled!", resp.Message)
}

func TestCustomerHandler_Destroy(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		customerID := uuid.New()
		f.customers.On("Delete", mock.Anything, f.tenantID, customerID).Return(nil)

		w, resp := f.do(t, http.MethodDelete, "/api/v1/incomes/customers/"+customerID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Customer deleted!", resp.Message)
	})

	t.Run("related records block delete", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		customerID := uuid.New()
		f.customers.On("Delete", mock.Anything, f.tenantID, customerID).Return(&shared.StateConflictError{
			Code:    "INVALID_STATE",
			Message: "customer has related records",
			Subject: "Acme Ltd",
			Details: map[string]int64{partnerapp.RelationInvoices: 2, partnerapp.RelationRevenues: 1},
		})

		w, resp := f.do(t, http.MethodDelete, "/api/v1/incomes/customers/"+customerID.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
		assert.Equal(t, "You cannot delete Acme Ltd because it has related invoices, revenues.", resp.Error.Message)
		assert.Equal(t, int64(2), resp.Error.Counts[partnerapp.RelationInvoices])
	})
}

func TestCustomerHandler_Currency(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		customerID := uuid.New()
		f.customers.On("Get", mock.Anything, f.tenantID, customerID).
			Return(&partnerapp.CustomerResponse{ID: customerID, CurrencyCode: "EUR"}, nil)

		w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers/currency?customer_id="+customerID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "EUR", resp.Data.(map[string]any)["currency_code"])
	})

	t.Run("bad id", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		w, _ := f.do(t, http.MethodGet, "/api/v1/incomes/customers/currency?customer_id=zzz", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCustomerHandler_FormsAndInline(t *testing.T) {
	f := newCustomerFixture(t, 0)
	customerID := uuid.New()
	f.customers.On("CreateForm", mock.Anything, f.tenantID).
		Return(&partnerapp.CustomerFormResponse{Currencies: map[string]string{"USD": "US Dollar"}}, nil)
	f.customers.On("EditForm", mock.Anything, f.tenantID, customerID).
		Return(&partnerapp.CustomerFormResponse{
			Customer:   &partnerapp.CustomerResponse{ID: customerID},
			Currencies: map[string]string{"USD": "US Dollar"},
		}, nil)
	f.customers.On("InlineCreate", mock.Anything, f.tenantID, partnerapp.InlineCustomerInput{
		Name: "Quick Co", CurrencyCode: "USD",
	}).Return(&partnerapp.CustomerResponse{Name: "Quick Co"}, nil)

	w, resp := f.do(t, http.MethodGet, "/api/v1/incomes/customers/create", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Data.(map[string]any)["currencies"], "USD")

	w, _ = f.do(t, http.MethodGet, "/api/v1/incomes/customers/"+customerID.String()+"/edit", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/v1/incomes/customers/inline", map[string]any{"name": "Quick Co", "currency_code": "USD"})
	assert.Equal(t, http.StatusCreated, w.Code)
	f.customers.AssertExpectations(t)
}

func TestCustomerHandler_Field(t *testing.T) {
	f := newCustomerFixture(t, 0)

	w, resp := f.do(t, http.MethodPost, "/api/v1/incomes/customers/field", FieldRequest{Type: "create_user"})

	assert.Equal(t, http.StatusOK, w.Code)
	html := resp.Data.(map[string]any)["html"].(string)
	assert.Contains(t, html, `name="password"`)
	assert.Contains(t, html, `name="password_confirmation"`)
	assert.Contains(t, html, "Password Confirmation")

	w, resp = f.do(t, http.MethodPost, "/api/v1/incomes/customers/field", FieldRequest{Fields: []string{"unknown"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.(map[string]any)["html"])
}

func multipartUpload(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestCustomerHandler_Import(t *testing.T) {
	csv := []byte("name,currency_code\nAcme,USD\n")

	post := func(f *customerFixture, field string, data []byte) (*httptest.ResponseRecorder, dto.Response) {
		body, contentType := multipartUpload(t, field, "customers.csv", data)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/incomes/customers/import", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("imported", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.imports.On("Import", mock.Anything, f.tenantID, mock.MatchedBy(func(u importer.Upload) bool {
			return u.FileName == "customers.csv" && bytes.Equal(u.Data, csv)
		})).Return(&importer.CustomerImportResult{TotalRows: 1, ImportedRows: 1}, nil)

		w, resp := post(f, "import", csv)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Customers imported!", resp.Message)
	})

	t.Run("file field fallback", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.imports.On("Import", mock.Anything, f.tenantID, mock.Anything).
			Return(&importer.CustomerImportResult{TotalRows: 1, ImportedRows: 1}, nil)

		w, _ := post(f, "file", csv)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejected rows", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		f.imports.On("Import", mock.Anything, f.tenantID, mock.Anything).
			Return(&importer.CustomerImportResult{
				TotalRows: 1,
				ErrorRows: 1,
				Errors:    []csvimport.RowError{{Row: 2, Column: "email", Message: "invalid email"}},
			}, nil)

		w, resp := post(f, "import", csv)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.EqualValues(t, 1, resp.Data.(map[string]any)["error_rows"])
	})

	t.Run("missing file", func(t *testing.T) {
		f := newCustomerFixture(t, 0)
		w, resp := post(f, "other", csv)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeImportInvalidFile, resp.Error.Code)
	})

	t.Run("too large", func(t *testing.T) {
		f := newCustomerFixture(t, 8)
		w, resp := post(f, "import", csv)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodePayloadTooLarge, resp.Error.Code)
	})
}

package partner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Field error codes returned by the portal user branch
const (
	ErrCodeEmailRequired = "EMAIL_REQUIRED"
	ErrCodeEmailTaken    = "EMAIL_TAKEN"
)

// Relation names used in delete conflict details
const (
	RelationInvoices = "invoices"
	RelationRevenues = "revenues"
)

// CustomerAccountStore saves a customer and its new portal user atomically
type CustomerAccountStore interface {
	SaveWithUser(ctx context.Context, customer *partner.Customer, user *identity.User) error
}

// RelationCounter counts records of one kind that reference a customer
type RelationCounter interface {
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
}

// CustomerServiceConfig holds the settings the customer service depends on
type CustomerServiceConfig struct {
	// ListLimit is the index page size when the caller passes none
	ListLimit int
	// DefaultLocale is assigned to portal users created from the form
	DefaultLocale string
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	userRepo     identity.UserRepository
	accounts     CustomerAccountStore
	invoices     RelationCounter
	revenues     RelationCounter
	currencyRepo finance.CurrencyRepository
	cfg          CustomerServiceConfig
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	userRepo identity.UserRepository,
	accounts CustomerAccountStore,
	invoices RelationCounter,
	revenues RelationCounter,
	currencyRepo finance.CurrencyRepository,
	cfg CustomerServiceConfig,
	logger *zap.Logger,
) *CustomerService {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = shared.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		accounts:     accounts,
		invoices:     invoices,
		revenues:     revenues,
		currencyRepo: currencyRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.cfg.ListLimit
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Enabled != nil {
		domainFilter.Filters["enabled"] = *filter.Enabled
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	page := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get retrieves a customer by ID. It also backs the currency lookup used by
// document forms.
func (s *CustomerService) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// CreateForm returns the data for an empty customer form
func (s *CustomerService) CreateForm(ctx context.Context, tenantID uuid.UUID) (*CustomerFormResponse, error) {
	currencies, err := s.FormCurrencies(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &CustomerFormResponse{Currencies: currencies}, nil
}

// EditForm returns the customer and the currencies for the edit form
func (s *CustomerService) EditForm(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerFormResponse, error) {
	customer, err := s.Get(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	currencies, err := s.FormCurrencies(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &CustomerFormResponse{Customer: customer, Currencies: currencies}, nil
}

// FormCurrencies maps enabled currency codes to names
func (s *CustomerService) FormCurrencies(ctx context.Context, tenantID uuid.UUID) (map[string]string, error) {
	currencies, err := s.currencyRepo.FindEnabled(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}
	out := make(map[string]string, len(currencies))
	for _, c := range currencies {
		out[c.Code.String()] = c.Name
	}
	return out, nil
}

// Create creates a customer. With CreateUser set, a portal user is created
// and linked in the same transaction; an email already used by any user is
// rejected with a field error and nothing is written.
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, in CustomerInput) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer_service", "create",
		telemetry.SpanAttrTenantID, tenantID.String(),
	)
	defer span.End()

	customer, err := partner.NewCustomer(tenantID, in.Name, in.Email, normalizeCurrency(in.CurrencyCode))
	if err != nil {
		return nil, err
	}
	if err := applyCustomerInput(customer, in); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, customer, in); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.Bool("with_user", customer.HasUser()),
	)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// InlineCreate creates a customer from the minimal inline form
func (s *CustomerService) InlineCreate(ctx context.Context, tenantID uuid.UUID, in InlineCustomerInput) (*CustomerResponse, error) {
	return s.Create(ctx, tenantID, CustomerInput{
		Name:         in.Name,
		Email:        in.Email,
		CurrencyCode: in.CurrencyCode,
	})
}

// Duplicate clones a customer under a new ID. The clone is not linked to any
// user.
func (s *CustomerService) Duplicate(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	clone := customer.Duplicate()
	if err := s.customerRepo.Save(ctx, clone); err != nil {
		return nil, fmt.Errorf("save duplicated customer: %w", err)
	}

	s.logger.Info("Customer duplicated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("source_id", customerID.String()),
		zap.String("customer_id", clone.ID.String()),
	)
	response := ToCustomerResponse(clone)
	return &response, nil
}

// Update replaces the customer's fields. The portal user branch runs only
// when the customer has no linked user yet.
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, in CustomerInput) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer_service", "update",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrCustomerID, customerID.String(),
	)
	defer span.End()

	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Rename(in.Name); err != nil {
		return nil, err
	}
	if err := customer.SetCurrency(normalizeCurrency(in.CurrencyCode)); err != nil {
		return nil, err
	}
	if err := applyCustomerInput(customer, in); err != nil {
		return nil, err
	}

	if customer.HasUser() {
		in.CreateUser = false
	}
	if err := s.persist(ctx, customer, in); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Customer updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()),
	)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Enable marks a customer as enabled
func (s *CustomerService) Enable(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.toggle(ctx, tenantID, customerID, true)
}

// Disable marks a customer as disabled
func (s *CustomerService) Disable(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.toggle(ctx, tenantID, customerID, false)
}

// Delete soft deletes a customer. A customer still referenced by invoices or
// revenues is kept and a StateConflictError lists the related counts.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}

	invoices, err := s.invoices.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	revenues, err := s.revenues.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return fmt.Errorf("count revenues: %w", err)
	}

	if invoices > 0 || revenues > 0 {
		s.logger.Warn("Customer delete refused",
			zap.String("tenant_id", tenantID.String()),
			zap.String("customer_id", customerID.String()),
			zap.Int64("invoices", invoices),
			zap.Int64("revenues", revenues),
		)
		return &shared.StateConflictError{
			Code:    shared.ErrInvalidState.Code,
			Message: fmt.Sprintf("Customer %s has related records", customer.Name),
			Subject: customer.Name,
			Details: map[string]int64{
				RelationInvoices: invoices,
				RelationRevenues: revenues,
			},
		}
	}

	if err := s.customerRepo.DeleteForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}
	s.logger.Info("Customer deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return nil
}

func (s *CustomerService) toggle(ctx context.Context, tenantID, customerID uuid.UUID, enabled bool) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if enabled {
		customer.Enable()
	} else {
		customer.Disable()
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// persist saves the customer, creating and linking a portal user first when
// requested
func (s *CustomerService) persist(ctx context.Context, customer *partner.Customer, in CustomerInput) error {
	if !in.CreateUser {
		if err := s.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("save customer: %w", err)
		}
		return nil
	}

	user, err := s.newPortalUser(ctx, customer, in.Password)
	if err != nil {
		return err
	}
	if err := customer.LinkUser(user.ID); err != nil {
		return err
	}
	if err := s.accounts.SaveWithUser(ctx, customer, user); err != nil {
		return fmt.Errorf("save customer with user: %w", err)
	}
	return nil
}

func (s *CustomerService) newPortalUser(ctx context.Context, customer *partner.Customer, password string) (*identity.User, error) {
	if customer.Email == "" {
		return nil, shared.NewFieldError("email", ErrCodeEmailRequired, "Email is required to create a user")
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if exists {
		s.logger.Warn("Portal user email already taken",
			zap.String("tenant_id", customer.TenantID.String()),
			zap.String("email", customer.Email),
		)
		return nil, shared.NewFieldError("email", ErrCodeEmailTaken, "The email has already been taken")
	}
	return identity.NewCustomerUser(customer.TenantID, customer.Name, customer.Email, password, s.cfg.DefaultLocale)
}

func applyCustomerInput(customer *partner.Customer, in CustomerInput) error {
	if err := customer.SetContact(in.Email, in.Phone, in.Website); err != nil {
		return err
	}
	customer.SetBilling(in.TaxNumber, in.Address, in.Reference)
	if in.Enabled != nil {
		if *in.Enabled {
			customer.Enable()
		} else {
			customer.Disable()
		}
	}
	return nil
}

func normalizeCurrency(code string) valueobject.Currency {
	return valueobject.Currency(strings.ToUpper(strings.TrimSpace(code)))
}

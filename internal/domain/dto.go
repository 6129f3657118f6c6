package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type ClientDTO struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	Address        string               `json:"address,omitempty"`
	Classification ClientClassification `json:"classification"`
	Type           ClientType           `json:"type"`
	Notes          string               `json:"notes,omitempty"`
	ProjectCount   int                  `json:"projectCount"`
	CreatedAt      string               `json:"createdAt"` // ISO 8601
	UpdatedAt      string               `json:"updatedAt"` // ISO 8601
}

// ClientWithProjectsDTO includes a client with its projects
type ClientWithProjectsDTO struct {
	ClientDTO
	Projects []ProjectDTO `json:"projects"`
}

type ProjectDTO struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"clientId"`
	ClientName    string          `json:"clientName,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Address       string          `json:"address,omitempty"`
	ServiceType   string          `json:"serviceType,omitempty"`
	Status        ProjectStatus   `json:"status"`
	Priority      ProjectPriority `json:"priority"`
	Progress      int             `json:"progress"`
	StartDate     *string         `json:"startDate,omitempty"` // ISO 8601 date
	DueDate       *string         `json:"dueDate,omitempty"`
	CompletedDate *string         `json:"completedDate,omitempty"`
	AssignedStaff []string        `json:"assignedStaff"`
	Images        []string        `json:"images"`
	Documents     []string        `json:"documents"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type QuoteDTO struct {
	ID                uuid.UUID   `json:"id"`
	ProjectID         uuid.UUID   `json:"projectId"`
	ProjectTitle      string      `json:"projectTitle,omitempty"`
	ClientName        string      `json:"clientName,omitempty"`
	MaterialsEstimate float64     `json:"materialsEstimate"`
	LaborEstimate     float64     `json:"laborEstimate"`
	TotalEstimate     float64     `json:"totalEstimate"`
	Status            QuoteStatus `json:"status"`
	Notes             string      `json:"notes,omitempty"`
	SentDate          *string     `json:"sentDate,omitempty"`
	ValidUntil        *string     `json:"validUntil,omitempty"`
	ApprovedDate      *string     `json:"approvedDate,omitempty"`
	RejectedDate      *string     `json:"rejectedDate,omitempty"`
	CreatedAt         string      `json:"createdAt"`
	UpdatedAt         string      `json:"updatedAt"`
}

type ServiceOrderDTO struct {
	ID                     uuid.UUID            `json:"id"`
	ProjectID              uuid.UUID            `json:"projectId"`
	ProjectTitle           string               `json:"projectTitle,omitempty"`
	Details                string               `json:"details,omitempty"`
	AssignedStaff          []string             `json:"assignedStaff"`
	AssignedSubcontractors []string             `json:"assignedSubcontractors"`
	SupervisorID           *uuid.UUID           `json:"supervisorId,omitempty"`
	SupervisorName         string               `json:"supervisorName,omitempty"`
	StartDate              *string              `json:"startDate,omitempty"`
	EndDate                *string              `json:"endDate,omitempty"`
	DueDate                *string              `json:"dueDate,omitempty"`
	Status                 ServiceOrderStatus   `json:"status"`
	BeforeImages           []string             `json:"beforeImages"`
	AfterImages            []string             `json:"afterImages"`
	ClientSignature        string               `json:"clientSignature,omitempty"`
	SignedDate             *string              `json:"signedDate,omitempty"`
	Language               ServiceOrderLanguage `json:"language"`
	CreatedAt              string               `json:"createdAt"`
	UpdatedAt              string               `json:"updatedAt"`
}

type StaffDTO struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Role         string            `json:"role,omitempty"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Availability StaffAvailability `json:"availability"`
	Skills       []string          `json:"skills"`
	CreatedAt    string            `json:"createdAt"`
	UpdatedAt    string            `json:"updatedAt"`
}

type SubcontractorDTO struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Company   string                `json:"company,omitempty"`
	Specialty string                `json:"specialty,omitempty"`
	Email     string                `json:"email,omitempty"`
	Phone     string                `json:"phone,omitempty"`
	Rate      float64               `json:"rate"`
	RateType  SubcontractorRateType `json:"rateType"`
	Status    SubcontractorStatus   `json:"status"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
}

type SupplierDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Company      string         `json:"company,omitempty"`
	Category     string         `json:"category,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	PaymentTerms string         `json:"paymentTerms,omitempty"`
	Status       SupplierStatus `json:"status"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type InvoiceDTO struct {
	ID            uuid.UUID     `json:"id"`
	ProjectID     uuid.UUID     `json:"projectId"`
	ProjectTitle  string        `json:"projectTitle,omitempty"`
	ClientID      uuid.UUID     `json:"clientId"`
	ClientName    string        `json:"clientName,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Amount        float64       `json:"amount"`
	Tax           float64       `json:"tax"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     *string       `json:"issueDate,omitempty"`
	DueDate       *string       `json:"dueDate,omitempty"`
	PaidDate      *string       `json:"paidDate,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	Items         []InvoiceItem `json:"items"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

type PaymentDTO struct {
	ID             uuid.UUID            `json:"id"`
	Amount         float64              `json:"amount"`
	Date           string               `json:"date"` // ISO 8601 date
	RecipientType  PaymentRecipientType `json:"recipientType"`
	RecipientID    uuid.UUID            `json:"recipientId"`
	RecipientName  string               `json:"recipientName,omitempty"`
	PaymentType    string               `json:"paymentType,omitempty"`
	Status         PaymentStatus        `json:"status"`
	Description    string               `json:"description,omitempty"`
	ProjectID      *uuid.UUID           `json:"projectId,omitempty"`
	ProjectTitle   string               `json:"projectTitle,omitempty"`
	ServiceOrderID *uuid.UUID           `json:"serviceOrderId,omitempty"`
	InvoiceID      *uuid.UUID           `json:"invoiceId,omitempty"`
	CreatedByID    *uuid.UUID           `json:"createdById,omitempty"`
	CreatedByName  string               `json:"createdByName,omitempty"`
	CreatedAt      string               `json:"createdAt"`
	UpdatedAt      string               `json:"updatedAt"`
}

type PurchaseOrderDTO struct {
	ID              uuid.UUID              `json:"id"`
	SupplierID      uuid.UUID              `json:"supplierId"`
	SupplierName    string                 `json:"supplierName,omitempty"`
	OrderNumber     string                 `json:"orderNumber"`
	ProjectID       *uuid.UUID             `json:"projectId,omitempty"`
	ProjectTitle    string                 `json:"projectTitle,omitempty"`
	QuoteID         *uuid.UUID             `json:"quoteId,omitempty"`
	DeliveryAddress string                 `json:"deliveryAddress,omitempty"`
	OrderDate       *string                `json:"orderDate,omitempty"`
	ExpectedDate    *string                `json:"expectedDate,omitempty"`
	Status          PurchaseOrderStatus    `json:"status"`
	TotalAmount     Money                  `json:"totalAmount"`
	Notes           string                 `json:"notes,omitempty"`
	Items           []PurchaseOrderItemDTO `json:"items"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

type PurchaseOrderItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    Money     `json:"quantity"`
	UnitPrice   Money     `json:"unitPrice"`
	TotalPrice  Money     `json:"totalPrice"`
}

type ActivityDTO struct {
	ID          uuid.UUID    `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	UserID      *uuid.UUID   `json:"userId,omitempty"`
	ProjectID   *uuid.UUID   `json:"projectId,omitempty"`
	ClientID    *uuid.UUID   `json:"clientId,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt string    `json:"createdAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Report DTOs

// PaymentsSummaryDTO aggregates outgoing payments by recipient type and status
type PaymentsSummaryDTO struct {
	TotalPaid        float64            `json:"totalPaid"`
	TotalPending     float64            `json:"totalPending"`
	CountByStatus    map[string]int     `json:"countByStatus"`
	ByRecipientType  map[string]float64 `json:"byRecipientType"`
	RecentPayments   []PaymentDTO       `json:"recentPayments"`
	MonthlyTotals    []SeriesPointDTO   `json:"monthlyTotals"`
	TopPaymentTypes  []NameValueDTO     `json:"topPaymentTypes"`
	PaymentsThisWeek int                `json:"paymentsThisWeek"`
}

// InvoicesSummaryDTO aggregates invoicing totals
type InvoicesSummaryDTO struct {
	TotalInvoiced     float64        `json:"totalInvoiced"`
	TotalPaid         float64        `json:"totalPaid"`
	TotalOutstanding  float64        `json:"totalOutstanding"`
	TotalOverdue      float64        `json:"totalOverdue"`
	CountByStatus     map[string]int `json:"countByStatus"`
	AveragePaidAmount float64        `json:"averagePaidAmount"`
}

// SeriesPointDTO is one point on a date-keyed time series
type SeriesPointDTO struct {
	Date    string  `json:"date"` // ISO 8601 date
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

// NameValueDTO is a labeled numeric value for category breakdowns
type NameValueDTO struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FinancialSummaryDTO combines income, expenses and profit over a period
type FinancialSummaryDTO struct {
	TotalIncome       float64          `json:"totalIncome"`
	TotalExpenses     float64          `json:"totalExpenses"`
	NetProfit         float64          `json:"netProfit"`
	Series            []SeriesPointDTO `json:"series"`
	ExpensesByType    []NameValueDTO   `json:"expensesByType"`
	IncomeByClient    []NameValueDTO   `json:"incomeByClient"`
	ExpenseByCategory []NameValueDTO   `json:"expenseByCategory"`
}

// Request DTOs

type CreateClientRequest struct {
	Name           string               `json:"name" validate:"required,max=200"`
	Email          string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string               `json:"phone,omitempty" validate:"max=50"`
	Address        string               `json:"address,omitempty" validate:"max=500"`
	Classification ClientClassification `json:"classification,omitempty" validate:"omitempty,oneof=residential commercial industrial"`
	Type           ClientType           `json:"type,omitempty" validate:"omitempty,oneof=client prospect"`
	Notes          string               `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name           string               `json:"name" validate:"required,max=200"`
	Email          string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string               `json:"phone,omitempty" validate:"max=50"`
	Address        string               `json:"address,omitempty" validate:"max=500"`
	Classification ClientClassification `json:"classification,omitempty" validate:"omitempty,oneof=residential commercial industrial"`
	Type           ClientType           `json:"type,omitempty" validate:"omitempty,oneof=client prospect"`
	Notes          string               `json:"notes,omitempty"`
}

type CreateProjectRequest struct {
	ClientID      uuid.UUID       `json:"clientId" validate:"required"`
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	Address       string          `json:"address,omitempty" validate:"max=500"`
	ServiceType   string          `json:"serviceType,omitempty" validate:"max=100"`
	Status        ProjectStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending quoted approved scheduled in_progress on_hold completed cancelled"`
	Priority      ProjectPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Progress      *int            `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	StartDate     FlexDate        `json:"startDate,omitempty"`
	DueDate       FlexDate        `json:"dueDate,omitempty"`
	AssignedStaff []string        `json:"assignedStaff,omitempty"`
}

type UpdateProjectRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	Address       string          `json:"address,omitempty" validate:"max=500"`
	ServiceType   string          `json:"serviceType,omitempty" validate:"max=100"`
	Status        ProjectStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending quoted approved scheduled in_progress on_hold completed cancelled"`
	Priority      ProjectPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Progress      *int            `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	StartDate     FlexDate        `json:"startDate,omitempty"`
	DueDate       FlexDate        `json:"dueDate,omitempty"`
	CompletedDate FlexDate        `json:"completedDate,omitempty"`
	AssignedStaff []string        `json:"assignedStaff,omitempty"`
}

type CreateQuoteRequest struct {
	ProjectID         uuid.UUID `json:"projectId" validate:"required"`
	MaterialsEstimate float64   `json:"materialsEstimate" validate:"gte=0"`
	LaborEstimate     float64   `json:"laborEstimate" validate:"gte=0"`
	Notes             string    `json:"notes,omitempty"`
	ValidUntil        FlexDate  `json:"validUntil,omitempty"`
}

type UpdateQuoteRequest struct {
	MaterialsEstimate float64  `json:"materialsEstimate" validate:"gte=0"`
	LaborEstimate     float64  `json:"laborEstimate" validate:"gte=0"`
	Notes             string   `json:"notes,omitempty"`
	ValidUntil        FlexDate `json:"validUntil,omitempty"`
}

type CreateServiceOrderRequest struct {
	ProjectID              uuid.UUID            `json:"projectId" validate:"required"`
	Details                string               `json:"details,omitempty"`
	AssignedStaff          []string             `json:"assignedStaff,omitempty"`
	AssignedSubcontractors []string             `json:"assignedSubcontractors,omitempty"`
	SupervisorID           *uuid.UUID           `json:"supervisorId,omitempty"`
	StartDate              FlexDate             `json:"startDate,omitempty"`
	EndDate                FlexDate             `json:"endDate,omitempty"`
	DueDate                FlexDate             `json:"dueDate,omitempty"`
	Language               ServiceOrderLanguage `json:"language,omitempty" validate:"omitempty,oneof=english spanish"`
}

type UpdateServiceOrderRequest struct {
	Details                string               `json:"details,omitempty"`
	AssignedStaff          []string             `json:"assignedStaff,omitempty"`
	AssignedSubcontractors []string             `json:"assignedSubcontractors,omitempty"`
	SupervisorID           *uuid.UUID           `json:"supervisorId,omitempty"`
	StartDate              FlexDate             `json:"startDate,omitempty"`
	EndDate                FlexDate             `json:"endDate,omitempty"`
	DueDate                FlexDate             `json:"dueDate,omitempty"`
	Status                 ServiceOrderStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
	Language               ServiceOrderLanguage `json:"language,omitempty" validate:"omitempty,oneof=english spanish"`
}

// CompleteServiceOrderRequest closes out a work order with the client sign-off
type CompleteServiceOrderRequest struct {
	ClientSignature string   `json:"clientSignature" validate:"required"`
	SignedDate      FlexDate `json:"signedDate,omitempty"`
	AfterImages     []string `json:"afterImages,omitempty"`
}

type CreateStaffRequest struct {
	Name         string            `json:"name" validate:"required,max=200"`
	Role         string            `json:"role,omitempty" validate:"max=100"`
	Email        string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string            `json:"phone,omitempty" validate:"max=50"`
	Availability StaffAvailability `json:"availability,omitempty" validate:"omitempty,oneof=available assigned on_leave"`
	Skills       []string          `json:"skills,omitempty"`
}

type UpdateStaffRequest struct {
	Name         string            `json:"name" validate:"required,max=200"`
	Role         string            `json:"role,omitempty" validate:"max=100"`
	Email        string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string            `json:"phone,omitempty" validate:"max=50"`
	Availability StaffAvailability `json:"availability,omitempty" validate:"omitempty,oneof=available assigned on_leave"`
	Skills       []string          `json:"skills,omitempty"`
}

type CreateSubcontractorRequest struct {
	Name      string                `json:"name" validate:"required,max=200"`
	Company   string                `json:"company,omitempty" validate:"max=200"`
	Specialty string                `json:"specialty,omitempty" validate:"max=200"`
	Email     string                `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string                `json:"phone,omitempty" validate:"max=50"`
	Rate      float64               `json:"rate,omitempty" validate:"gte=0"`
	RateType  SubcontractorRateType `json:"rateType,omitempty" validate:"omitempty,oneof=hourly daily fixed"`
	Status    SubcontractorStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive blacklisted"`
}

type UpdateSubcontractorRequest struct {
	Name      string                `json:"name" validate:"required,max=200"`
	Company   string                `json:"company,omitempty" validate:"max=200"`
	Specialty string                `json:"specialty,omitempty" validate:"max=200"`
	Email     string                `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string                `json:"phone,omitempty" validate:"max=50"`
	Rate      float64               `json:"rate,omitempty" validate:"gte=0"`
	RateType  SubcontractorRateType `json:"rateType,omitempty" validate:"omitempty,oneof=hourly daily fixed"`
	Status    SubcontractorStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive blacklisted"`
}

type CreateSupplierRequest struct {
	Name         string         `json:"name" validate:"required,max=200"`
	Company      string         `json:"company,omitempty" validate:"max=200"`
	Category     string         `json:"category,omitempty" validate:"max=100"`
	Email        string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string         `json:"phone,omitempty" validate:"max=50"`
	PaymentTerms string         `json:"paymentTerms,omitempty" validate:"max=100"`
	Status       SupplierStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type UpdateSupplierRequest struct {
	Name         string         `json:"name" validate:"required,max=200"`
	Company      string         `json:"company,omitempty" validate:"max=200"`
	Category     string         `json:"category,omitempty" validate:"max=100"`
	Email        string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string         `json:"phone,omitempty" validate:"max=50"`
	PaymentTerms string         `json:"paymentTerms,omitempty" validate:"max=100"`
	Status       SupplierStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type CreateInvoiceRequest struct {
	ProjectID     uuid.UUID     `json:"projectId" validate:"required"`
	ClientID      uuid.UUID     `json:"clientId" validate:"required"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty" validate:"max=50"` // generated when empty
	Amount        float64       `json:"amount" validate:"gte=0"`
	Tax           float64       `json:"tax,omitempty" validate:"gte=0"`
	IssueDate     FlexDate      `json:"issueDate,omitempty"`
	DueDate       FlexDate      `json:"dueDate,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty" validate:"max=100"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

type UpdateInvoiceRequest struct {
	Amount        float64       `json:"amount" validate:"gte=0"`
	Tax           float64       `json:"tax,omitempty" validate:"gte=0"`
	Status        InvoiceStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	IssueDate     FlexDate      `json:"issueDate,omitempty"`
	DueDate       FlexDate      `json:"dueDate,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty" validate:"max=100"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

// MarkInvoicePaidRequest records payment of an invoice
type MarkInvoicePaidRequest struct {
	PaidDate      FlexDate `json:"paidDate,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty" validate:"max=100"`
}

type CreatePaymentRequest struct {
	Amount         float64              `json:"amount" validate:"required,gt=0"`
	Date           FlexDate             `json:"date" validate:"required"`
	RecipientType  PaymentRecipientType `json:"recipientType" validate:"required,oneof=subcontractor staff supplier"`
	RecipientID    uuid.UUID            `json:"recipientId" validate:"required"`
	PaymentType    string               `json:"paymentType,omitempty" validate:"max=100"`
	Status         PaymentStatus        `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Description    string               `json:"description,omitempty"`
	ProjectID      *uuid.UUID           `json:"projectId,omitempty"`
	ServiceOrderID *uuid.UUID           `json:"serviceOrderId,omitempty"`
	InvoiceID      *uuid.UUID           `json:"invoiceId,omitempty"`
}

type UpdatePaymentRequest struct {
	Amount         float64              `json:"amount" validate:"required,gt=0"`
	Date           FlexDate             `json:"date" validate:"required"`
	RecipientType  PaymentRecipientType `json:"recipientType" validate:"required,oneof=subcontractor staff supplier"`
	RecipientID    uuid.UUID            `json:"recipientId" validate:"required"`
	PaymentType    string               `json:"paymentType,omitempty" validate:"max=100"`
	Status         PaymentStatus        `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Description    string               `json:"description,omitempty"`
	ProjectID      *uuid.UUID           `json:"projectId,omitempty"`
	ServiceOrderID *uuid.UUID           `json:"serviceOrderId,omitempty"`
	InvoiceID      *uuid.UUID           `json:"invoiceId,omitempty"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID      uuid.UUID                        `json:"supplierId" validate:"required"`
	ProjectID       *uuid.UUID                       `json:"projectId,omitempty"`
	QuoteID         *uuid.UUID                       `json:"quoteId,omitempty"`
	DeliveryAddress string                           `json:"deliveryAddress,omitempty" validate:"max=500"`
	OrderDate       FlexDate                         `json:"orderDate,omitempty"`
	ExpectedDate    FlexDate                         `json:"expectedDate,omitempty"`
	Status          PurchaseOrderStatus              `json:"status,omitempty" validate:"omitempty,oneof=draft ordered received cancelled"`
	Notes           string                           `json:"notes,omitempty"`
	Items           []CreatePurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdatePurchaseOrderRequest struct {
	DeliveryAddress string                           `json:"deliveryAddress,omitempty" validate:"max=500"`
	OrderDate       FlexDate                         `json:"orderDate,omitempty"`
	ExpectedDate    FlexDate                         `json:"expectedDate,omitempty"`
	Status          PurchaseOrderStatus              `json:"status,omitempty" validate:"omitempty,oneof=draft ordered received cancelled"`
	Notes           string                           `json:"notes,omitempty"`
	Items           []CreatePurchaseOrderItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

type CreatePurchaseOrderItemRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Quantity    Money  `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
}

// Auth request DTOs

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=100"`
	Password string   `json:"password" validate:"required,min=8,max=128"`
	Name     string   `json:"name" validate:"required,max=200"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin manager staff"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session info returned on successful login
type LoginResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// UserRole represents the role of an application user
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleStaff   UserRole = "staff"
)

// User represents an application user account
type User struct {
	BaseModel
	Username string   `gorm:"type:varchar(100);not null;uniqueIndex"`
	Password string   `gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Name     string   `gorm:"type:varchar(200);not null"`
	Role     UserRole `gorm:"type:varchar(50);not null;default:'staff'"`
}

// ClientClassification represents the market segment of a client
type ClientClassification string

const (
	ClientClassificationResidential ClientClassification = "residential"
	ClientClassificationCommercial  ClientClassification = "commercial"
	ClientClassificationIndustrial  ClientClassification = "industrial"
)

// ClientType distinguishes paying clients from prospects
type ClientType string

const (
	ClientTypeClient   ClientType = "client"
	ClientTypeProspect ClientType = "prospect"
)

// Client represents a customer or prospect of the contracting business
type Client struct {
	BaseModel
	Name           string               `gorm:"type:varchar(200);not null;index"`
	Email          string               `gorm:"type:varchar(255)"`
	Phone          string               `gorm:"type:varchar(50)"`
	Address        string               `gorm:"type:varchar(500)"`
	Classification ClientClassification `gorm:"type:varchar(50);not null;default:'residential';index"`
	Type           ClientType           `gorm:"type:varchar(50);not null;default:'client';index"`
	Notes          string               `gorm:"type:text"`
	Projects       []Project            `gorm:"foreignKey:ClientID"`
}

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusQuoted     ProjectStatus = "quoted"
	ProjectStatusApproved   ProjectStatus = "approved"
	ProjectStatusScheduled  ProjectStatus = "scheduled"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusPending, ProjectStatusQuoted, ProjectStatusApproved,
		ProjectStatusScheduled, ProjectStatusInProgress, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// ProjectPriority represents the urgency of a project
type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "low"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityHigh   ProjectPriority = "high"
)

// Project represents a painting job performed for a client
type Project struct {
	BaseModel
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID"`
	Title         string          `gorm:"type:varchar(200);not null;index"`
	Description   string          `gorm:"type:text"`
	Address       string          `gorm:"type:varchar(500)"`
	ServiceType   string          `gorm:"type:varchar(100);column:service_type"`
	Status        ProjectStatus   `gorm:"type:varchar(50);not null;default:'pending';index"`
	Priority      ProjectPriority `gorm:"type:varchar(50);not null;default:'medium'"`
	Progress      int             `gorm:"not null;default:0"` // 0-100
	StartDate     *time.Time      `gorm:"type:date;column:start_date"`
	DueDate       *time.Time      `gorm:"type:date;column:due_date"`
	CompletedDate *time.Time      `gorm:"type:date;column:completed_date"`
	AssignedStaff pq.StringArray  `gorm:"type:text[];column:assigned_staff"`
	Images        pq.StringArray  `gorm:"type:text[]"`
	Documents     pq.StringArray  `gorm:"type:text[]"`
	Quotes        []Quote         `gorm:"foreignKey:ProjectID"`
	ServiceOrders []ServiceOrder  `gorm:"foreignKey:ProjectID"`
	Invoices      []Invoice       `gorm:"foreignKey:ProjectID"`
}

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// Quote represents a cost estimate offered to a client for a project
type Quote struct {
	BaseModel
	ProjectID         uuid.UUID   `gorm:"type:uuid;not null;index;column:project_id"`
	Project           *Project    `gorm:"foreignKey:ProjectID"`
	MaterialsEstimate float64     `gorm:"type:decimal(15,2);not null;default:0;column:materials_estimate"`
	LaborEstimate     float64     `gorm:"type:decimal(15,2);not null;default:0;column:labor_estimate"`
	TotalEstimate     float64     `gorm:"type:decimal(15,2);not null;default:0;column:total_estimate"`
	Status            QuoteStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	Notes             string      `gorm:"type:text"`
	SentDate          *time.Time  `gorm:"type:date;column:sent_date"`
	ValidUntil        *time.Time  `gorm:"type:date;column:valid_until"`
	ApprovedDate      *time.Time  `gorm:"type:date;column:approved_date"`
	RejectedDate      *time.Time  `gorm:"type:date;column:rejected_date"`
}

// ServiceOrderStatus represents the lifecycle status of a service order
type ServiceOrderStatus string

const (
	ServiceOrderStatusPending    ServiceOrderStatus = "pending"
	ServiceOrderStatusInProgress ServiceOrderStatus = "in_progress"
	ServiceOrderStatusCompleted  ServiceOrderStatus = "completed"
)

// ServiceOrderLanguage is the language the printed work order is issued in
type ServiceOrderLanguage string

const (
	ServiceOrderLanguageEnglish ServiceOrderLanguage = "english"
	ServiceOrderLanguageSpanish ServiceOrderLanguage = "spanish"
)

// ServiceOrder represents a field work order for a project
type ServiceOrder struct {
	BaseModel
	ProjectID              uuid.UUID            `gorm:"type:uuid;not null;index;column:project_id"`
	Project                *Project             `gorm:"foreignKey:ProjectID"`
	Details                string               `gorm:"type:text"`
	AssignedStaff          pq.StringArray       `gorm:"type:text[];column:assigned_staff"`
	AssignedSubcontractors pq.StringArray       `gorm:"type:text[];column:assigned_subcontractors"`
	SupervisorID           *uuid.UUID           `gorm:"type:uuid;column:supervisor_id"`
	Supervisor             *Staff               `gorm:"foreignKey:SupervisorID"`
	StartDate              *time.Time           `gorm:"type:date;column:start_date"`
	EndDate                *time.Time           `gorm:"type:date;column:end_date"`
	DueDate                *time.Time           `gorm:"type:date;column:due_date"`
	Status                 ServiceOrderStatus   `gorm:"type:varchar(50);not null;default:'pending';index"`
	BeforeImages           pq.StringArray       `gorm:"type:text[];column:before_images"`
	AfterImages            pq.StringArray       `gorm:"type:text[];column:after_images"`
	ClientSignature        string               `gorm:"type:text;column:client_signature"`
	SignedDate             *time.Time           `gorm:"column:signed_date"`
	Language               ServiceOrderLanguage `gorm:"type:varchar(20);not null;default:'english'"`
}

// StaffAvailability represents the current availability of a staff member
type StaffAvailability string

const (
	StaffAvailable StaffAvailability = "available"
	StaffAssigned  StaffAvailability = "assigned"
	StaffOnLeave   StaffAvailability = "on_leave"
)

// Staff represents an employee of the contracting business
type Staff struct {
	BaseModel
	Name         string            `gorm:"type:varchar(200);not null;index"`
	Role         string            `gorm:"type:varchar(100)"`
	Email        string            `gorm:"type:varchar(255)"`
	Phone        string            `gorm:"type:varchar(50)"`
	Availability StaffAvailability `gorm:"type:varchar(50);not null;default:'available';index"`
	Skills       pq.StringArray    `gorm:"type:text[]"`
}

// SubcontractorRateType represents how a subcontractor bills
type SubcontractorRateType string

const (
	RateTypeHourly SubcontractorRateType = "hourly"
	RateTypeDaily  SubcontractorRateType = "daily"
	RateTypeFixed  SubcontractorRateType = "fixed"
)

// SubcontractorStatus represents the standing of a subcontractor
type SubcontractorStatus string

const (
	SubcontractorActive      SubcontractorStatus = "active"
	SubcontractorInactive    SubcontractorStatus = "inactive"
	SubcontractorBlacklisted SubcontractorStatus = "blacklisted"
)

// Subcontractor represents an external crew or individual hired per job
type Subcontractor struct {
	BaseModel
	Name      string                `gorm:"type:varchar(200);not null;index"`
	Company   string                `gorm:"type:varchar(200)"`
	Specialty string                `gorm:"type:varchar(200)"`
	Email     string                `gorm:"type:varchar(255)"`
	Phone     string                `gorm:"type:varchar(50)"`
	Rate      float64               `gorm:"type:decimal(15,2);not null;default:0"`
	RateType  SubcontractorRateType `gorm:"type:varchar(50);not null;default:'hourly';column:rate_type"`
	Status    SubcontractorStatus   `gorm:"type:varchar(50);not null;default:'active';index"`
}

// SupplierStatus represents the standing of a supplier
type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "active"
	SupplierInactive SupplierStatus = "inactive"
)

// Supplier represents a materials vendor
type Supplier struct {
	BaseModel
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Company        string          `gorm:"type:varchar(200)"`
	Category       string          `gorm:"type:varchar(100);index"`
	Email          string          `gorm:"type:varchar(255)"`
	Phone          string          `gorm:"type:varchar(50)"`
	PaymentTerms   string          `gorm:"type:varchar(100);column:payment_terms"`
	Status         SupplierStatus  `gorm:"type:varchar(50);not null;default:'active';index"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:SupplierID"`
}

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (is InvoiceStatus) IsValid() bool {
	switch is {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceItem is a billed line item stored on the invoice
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice represents a bill issued to a client for a project
type Invoice struct {
	BaseModel
	ProjectID     uuid.UUID     `gorm:"type:uuid;not null;index;column:project_id"`
	Project       *Project      `gorm:"foreignKey:ProjectID"`
	ClientID      uuid.UUID     `gorm:"type:uuid;not null;index;column:client_id"`
	Client        *Client       `gorm:"foreignKey:ClientID"`
	InvoiceNumber string        `gorm:"type:varchar(50);not null;uniqueIndex;column:invoice_number"`
	Amount        float64       `gorm:"type:decimal(15,2);not null;default:0"`
	Tax           float64       `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount   float64       `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	Status        InvoiceStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	IssueDate     *time.Time    `gorm:"type:date;column:issue_date"`
	DueDate       *time.Time    `gorm:"type:date;column:due_date"`
	PaidDate      *time.Time    `gorm:"type:date;column:paid_date"`
	PaymentMethod string        `gorm:"type:varchar(100);column:payment_method"`
	Items         string        `gorm:"type:jsonb"` // serialized []InvoiceItem
}

// PaymentRecipientType classifies who a payment is made to
type PaymentRecipientType string

const (
	RecipientSubcontractor PaymentRecipientType = "subcontractor"
	RecipientStaff         PaymentRecipientType = "staff"
	RecipientSupplier      PaymentRecipientType = "supplier"
)

// PaymentStatus represents the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment represents an outgoing payment to a subcontractor, staff member or supplier
type Payment struct {
	BaseModel
	Amount         float64              `gorm:"type:decimal(15,2);not null"`
	Date           time.Time            `gorm:"type:date;not null;index"`
	RecipientType  PaymentRecipientType `gorm:"type:varchar(50);not null;index;column:recipient_type"`
	RecipientID    uuid.UUID            `gorm:"type:uuid;not null;column:recipient_id"`
	PaymentType    string               `gorm:"type:varchar(100);column:payment_type"` // materials, labor, subcontract, ...
	Status         PaymentStatus        `gorm:"type:varchar(50);not null;default:'pending';index"`
	Description    string               `gorm:"type:text"`
	ProjectID      *uuid.UUID           `gorm:"type:uuid;index;column:project_id"`
	Project        *Project             `gorm:"foreignKey:ProjectID"`
	ServiceOrderID *uuid.UUID           `gorm:"type:uuid;column:service_order_id"`
	ServiceOrder   *ServiceOrder        `gorm:"foreignKey:ServiceOrderID"`
	InvoiceID      *uuid.UUID           `gorm:"type:uuid;column:invoice_id"`
	Invoice        *Invoice             `gorm:"foreignKey:InvoiceID"`
	CreatedByID    *uuid.UUID           `gorm:"type:uuid;column:created_by_id"`
	CreatedBy      *User                `gorm:"foreignKey:CreatedByID"`
}

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder represents a materials order placed with a supplier
type PurchaseOrder struct {
	BaseModel
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index;column:supplier_id"`
	Supplier        *Supplier           `gorm:"foreignKey:SupplierID"`
	OrderNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex;column:order_number"`
	ProjectID       *uuid.UUID          `gorm:"type:uuid;index;column:project_id"`
	Project         *Project            `gorm:"foreignKey:ProjectID"`
	QuoteID         *uuid.UUID          `gorm:"type:uuid;column:quote_id"`
	Quote           *Quote              `gorm:"foreignKey:QuoteID"`
	DeliveryAddress string              `gorm:"type:varchar(500);column:delivery_address"`
	OrderDate       *time.Time          `gorm:"type:date;column:order_date"`
	ExpectedDate    *time.Time          `gorm:"type:date;column:expected_date"`
	Status          PurchaseOrderStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	Notes           string              `gorm:"type:text"`
	Items           []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// PurchaseOrderItem represents a line item on a purchase order.
// TotalPrice is persisted as a fixed-precision decimal to avoid
// floating-point drift on monetary totals.
type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index;column:purchase_order_id"`
	PurchaseOrder   *PurchaseOrder  `gorm:"foreignKey:PurchaseOrderID"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:total_price"`
}

// ActivityType represents the kind of event recorded in the activity log
type ActivityType string

const (
	ActivityClientCreated       ActivityType = "client_created"
	ActivityClientUpdated       ActivityType = "client_updated"
	ActivityProjectCreated      ActivityType = "project_created"
	ActivityProjectUpdated      ActivityType = "project_updated"
	ActivityQuoteSent           ActivityType = "quote_sent"
	ActivityQuoteApproved       ActivityType = "quote_approved"
	ActivityQuoteRejected       ActivityType = "quote_rejected"
	ActivityServiceOrderSigned  ActivityType = "service_order_signed"
	ActivityInvoiceCreated      ActivityType = "invoice_created"
	ActivityInvoicePaid         ActivityType = "invoice_paid"
	ActivityPaymentRecorded     ActivityType = "payment_recorded"
	ActivityPurchaseOrderPlaced ActivityType = "purchase_order_placed"
)

// Activity represents an append-only audit log entry
type Activity struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Type        ActivityType `gorm:"type:varchar(100);not null;index"`
	Description string       `gorm:"type:varchar(2000);not null"`
	UserID      *uuid.UUID   `gorm:"type:uuid;column:user_id"`
	ProjectID   *uuid.UUID   `gorm:"type:uuid;index;column:project_id"`
	ClientID    *uuid.UUID   `gorm:"type:uuid;index;column:client_id"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// Session represents a persisted login session.
// Data holds an opaque JSON blob; expired rows are swept by a background job.
type Session struct {
	SID       string    `gorm:"type:varchar(128);primaryKey;column:sid"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	Data      string    `gorm:"type:jsonb;not null;default:'{}'"`
	ExpiresAt time.Time `gorm:"not null;index;column:expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the default table name
func (Session) TableName() string {
	return "sessions"
}

// NumberSequence tracks the last issued sequence number per document kind and
// year. Invoices and purchase orders draw from separate counters.
type NumberSequence struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind         string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_number_sequences_kind_year"`
	Year         int       `gorm:"not null;uniqueIndex:idx_number_sequences_kind_year"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

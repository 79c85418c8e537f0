package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property status values
const (
	PropertyForRent = "for_rent"
	PropertyForSale = "for_sale"
	PropertyRented  = "rented"
	PropertySold    = "sold"
)

// RentAgreement status values
const (
	AgreementActive         = "active"
	AgreementExpired        = "expired"
	AgreementTerminated     = "terminated"
	AgreementPendingRenewal = "pending_renewal"
)

// Payment status values
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Requirement status values
const (
	RequirementOpen   = "open"
	RequirementOnHold = "on_hold"
	RequirementClosed = "closed"
)

// Property represents a listed property. Properties are never deleted through
// the API; they leave circulation by status (`sold`, `rented`).
type Property struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Title            string    `json:"title" gorm:"not null" validate:"required,min=2,max=255"`
	Type             string    `json:"type" gorm:"not null;index" validate:"required,oneof=residential commercial"`
	Address          string    `json:"address" gorm:"not null"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	AreaSqft         int       `json:"area_sqft" gorm:"not null"`
	Price            float64   `json:"price" gorm:"not null"`
	Status           string    `json:"status" gorm:"not null;default:'for_rent';index" validate:"oneof=for_rent for_sale rented sold"`
	FurnishingStatus string    `json:"furnishing_status" gorm:"default:'unfurnished'" validate:"omitempty,oneof=furnished semi_furnished unfurnished"`
	Bedrooms         *int      `json:"bedrooms"`
	Bathrooms        *int      `json:"bathrooms"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Owners     []PropertyOwner  `json:"owners,omitempty" gorm:"foreignKey:PropertyID"`
	Brokers    []PropertyBroker `json:"brokers,omitempty" gorm:"foreignKey:PropertyID"`
	Agreements []RentAgreement  `json:"agreements,omitempty" gorm:"foreignKey:PropertyID"`
}

// Owner represents a property owner. Linked to properties via PropertyOwner.
type Owner struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	FullName  string    `json:"full_name" gorm:"not null;index" validate:"required,min=2,max=255"`
	Phone     string    `json:"phone" gorm:"not null" validate:"required"`
	Email     *string   `json:"email,omitempty"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Properties []PropertyOwner `json:"properties,omitempty" gorm:"foreignKey:OwnerID"`
}

// Broker represents a real-estate broker. Linked to properties via PropertyBroker.
type Broker struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	FullName      string    `json:"full_name" gorm:"not null;index" validate:"required,min=2,max=255"`
	Phone         string    `json:"phone" gorm:"not null" validate:"required"`
	Email         *string   `json:"email,omitempty"`
	AgencyName    *string   `json:"agency_name,omitempty"`
	AgencyAddress *string   `json:"agency_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Tenant represents a renting customer (not a platform tenant).
type Tenant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	FullName  string    `json:"full_name" gorm:"not null;index" validate:"required,min=2,max=255"`
	Phone     string    `json:"phone" gorm:"not null" validate:"required"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Agreements []RentAgreement `json:"agreements,omitempty" gorm:"foreignKey:TenantID"`
}

// PropertyOwner is the ownership join row. The schema supports split
// ownership, but the single-select flow always writes a single row at 100%.
type PropertyOwner struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID          uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	OwnerID             uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	OwnershipPercentage float64   `json:"ownership_percentage" gorm:"not null;default:100"`
	CreatedAt           time.Time `json:"created_at"`

	Owner    *Owner    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// PropertyBroker is the broker-assignment join row.
type PropertyBroker struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	BrokerID   uuid.UUID `json:"broker_id" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"created_at"`

	Broker *Broker `json:"broker,omitempty" gorm:"foreignKey:BrokerID"`
}

// RentAgreement links exactly one property and one tenant. The owner is
// captured at signing time so the agreement stays meaningful even if
// ownership rows change later.
type RentAgreement struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PropertyID      uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	TenantID        uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OwnerID         uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	StartDate       time.Time `json:"start_date" gorm:"not null"`
	EndDate         time.Time `json:"end_date" gorm:"not null;index"`
	MonthlyRent     float64   `json:"monthly_rent" gorm:"not null"`
	SecurityDeposit float64   `json:"security_deposit" gorm:"default:0"`
	TermsConditions string    `json:"terms_conditions"`
	Status          string    `json:"status" gorm:"not null;default:'active';index" validate:"oneof=active expired terminated pending_renewal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Owner    *Owner    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:RentAgreementID"`
}

// DaysRemaining returns the whole days until the agreement's end date,
// negative once the end date has passed.
func (a *RentAgreement) DaysRemaining(now time.Time) int {
	return int(a.EndDate.Sub(now).Hours() / 24)
}

// Payment records money received against an agreement. Payments are not
// reconciled against the agreement's expected schedule.
type Payment struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RentAgreementID uuid.UUID `json:"rent_agreement_id" gorm:"type:uuid;not null;index"`
	PaymentType     string    `json:"payment_type" gorm:"not null;default:'rent'" validate:"oneof=rent security_deposit maintenance utility other"`
	Amount          float64   `json:"amount" gorm:"not null"`
	PaymentDate     time.Time `json:"payment_date" gorm:"not null;index"`
	PaymentMethod   string    `json:"payment_method" gorm:"not null"`
	ReferenceNumber *string   `json:"reference_number,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status" gorm:"not null;default:'completed';index" validate:"oneof=completed pending failed refunded"`
	CreatedAt       time.Time `json:"created_at"`

	RentAgreement *RentAgreement `json:"rent_agreement,omitempty" gorm:"foreignKey:RentAgreementID"`
}

// Requirement is a standalone customer inquiry, not linked to a property.
type Requirement struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	CustomerName      string     `json:"customer_name" gorm:"not null;index" validate:"required,min=2,max=255"`
	CustomerPhone     string     `json:"customer_phone" gorm:"not null" validate:"required"`
	CustomerEmail     *string    `json:"customer_email,omitempty"`
	Profession        *string    `json:"profession,omitempty"`
	RequirementType   string     `json:"requirement_type" gorm:"not null;default:'rent'" validate:"oneof=rent sale both"`
	PropertyType      string     `json:"property_type" gorm:"not null;default:'residential'" validate:"oneof=residential commercial"`
	BudgetMin         *float64   `json:"budget_min,omitempty"`
	BudgetMax         *float64   `json:"budget_max,omitempty"`
	PreferredLocation string     `json:"preferred_location"`
	AreaPreference    string     `json:"area_preference"`
	AdditionalNotes   string     `json:"additional_notes"`
	InquiryDate       time.Time  `json:"inquiry_date" gorm:"not null"`
	FollowUpDate      *time.Time `json:"follow_up_date,omitempty"`
	AssignedTo        *string    `json:"assigned_to,omitempty"`
	Status            string     `json:"status" gorm:"not null;default:'open';index" validate:"oneof=open on_hold closed"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ActivityLog is a best-effort audit trail of entity changes, shown in the
// dashboard's recent-activity widget. Failures to write it never fail the
// triggering operation.
type ActivityLog struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	EntityType string         `json:"entity_type" gorm:"not null;index"`
	EntityID   uuid.UUID      `json:"entity_id" gorm:"type:uuid;not null;index"`
	Action     string         `json:"action" gorm:"not null"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

// BeforeCreate hooks assign IDs application-side so the models work on both
// PostgreSQL and the in-memory SQLite used in tests.

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (o *Owner) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (b *Broker) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (po *PropertyOwner) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

func (pb *PropertyBroker) BeforeCreate(tx *gorm.DB) error {
	if pb.ID == uuid.Nil {
		pb.ID = uuid.New()
	}
	return nil
}

func (a *RentAgreement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (r *Requirement) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

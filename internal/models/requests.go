package models

import (
	"time"

	"github.com/google/uuid"
)

// DateOnly is the wire format for date fields (form date inputs send no time
// component).
const DateOnly = "2006-01-02"

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateOnly, s)
}

// CreatePropertyRequest carries the property form payload. OwnerID and
// BrokerID drive the join-row linkage; both are optional.
type CreatePropertyRequest struct {
	Title            string     `json:"title" binding:"required,min=2,max=255"`
	Type             string     `json:"type" binding:"required,oneof=residential commercial"`
	Address          string     `json:"address" binding:"required"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	ZipCode          string     `json:"zip_code"`
	AreaSqft         int        `json:"area_sqft" binding:"required,gt=0"`
	Price            float64    `json:"price" binding:"required,gt=0"`
	Status           string     `json:"status" binding:"required,oneof=for_rent for_sale rented sold"`
	FurnishingStatus string     `json:"furnishing_status" binding:"omitempty,oneof=furnished semi_furnished unfurnished"`
	Bedrooms         *int       `json:"bedrooms"`
	Bathrooms        *int       `json:"bathrooms"`
	Description      string     `json:"description"`
	OwnerID          *uuid.UUID `json:"owner_id"`
	BrokerID         *uuid.UUID `json:"broker_id"`
}

// UpdatePropertyRequest mirrors the create payload; the owner/broker fields
// REPLACE existing join rows (absent means unlinked).
type UpdatePropertyRequest = CreatePropertyRequest

// CreateOwnerRequest carries the owner form payload.
type CreateOwnerRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=255"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  string  `json:"address"`
}

// CreateBrokerRequest carries the broker form payload.
type CreateBrokerRequest struct {
	FullName      string  `json:"full_name" binding:"required,min=2,max=255"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email" binding:"omitempty,email"`
	AgencyName    *string `json:"agency_name"`
	AgencyAddress *string `json:"agency_address"`
}

// CreateTenantRequest carries the tenant form payload.
type CreateTenantRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=255"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
}

// CreateAgreementRequest carries the rent-agreement form payload. The owner
// is required: agreement creation links the owner to the property and the
// linkage step is meaningless without one.
type CreateAgreementRequest struct {
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	TenantID        uuid.UUID `json:"tenant_id" binding:"required"`
	OwnerID         uuid.UUID `json:"owner_id" binding:"required"`
	StartDate       string    `json:"start_date" binding:"required"`
	EndDate         string    `json:"end_date" binding:"required"`
	MonthlyRent     float64   `json:"monthly_rent" binding:"required,gt=0"`
	SecurityDeposit float64   `json:"security_deposit" binding:"omitempty,gte=0"`
	TermsConditions string    `json:"terms_conditions"`
	Status          string    `json:"status" binding:"omitempty,oneof=active expired terminated pending_renewal"`
}

// UpdateAgreementRequest carries editable agreement fields.
type UpdateAgreementRequest struct {
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	MonthlyRent     float64 `json:"monthly_rent" binding:"required,gt=0"`
	SecurityDeposit float64 `json:"security_deposit" binding:"omitempty,gte=0"`
	TermsConditions string  `json:"terms_conditions"`
	Status          string  `json:"status" binding:"required,oneof=active expired terminated pending_renewal"`
}

// CreatePaymentRequest carries the payment form payload.
type CreatePaymentRequest struct {
	RentAgreementID uuid.UUID `json:"rent_agreement_id" binding:"required"`
	PaymentType     string    `json:"payment_type" binding:"omitempty,oneof=rent security_deposit maintenance utility other"`
	Amount          float64   `json:"amount" binding:"required,gt=0"`
	PaymentDate     string    `json:"payment_date" binding:"required"`
	PaymentMethod   string    `json:"payment_method" binding:"required"`
	ReferenceNumber *string   `json:"reference_number"`
	Notes           *string   `json:"notes"`
	Status          string    `json:"status" binding:"omitempty,oneof=completed pending failed refunded"`
}

// CreateRequirementRequest carries the customer inquiry form payload.
type CreateRequirementRequest struct {
	CustomerName      string   `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerPhone     string   `json:"customer_phone" binding:"required"`
	CustomerEmail     *string  `json:"customer_email" binding:"omitempty,email"`
	Profession        *string  `json:"profession"`
	RequirementType   string   `json:"requirement_type" binding:"required,oneof=rent sale both"`
	PropertyType      string   `json:"property_type" binding:"required,oneof=residential commercial"`
	BudgetMin         *float64 `json:"budget_min"`
	BudgetMax         *float64 `json:"budget_max"`
	PreferredLocation string   `json:"preferred_location"`
	AreaPreference    string   `json:"area_preference"`
	AdditionalNotes   string   `json:"additional_notes"`
	InquiryDate       string   `json:"inquiry_date" binding:"required"`
	FollowUpDate      *string  `json:"follow_up_date"`
	AssignedTo        *string  `json:"assigned_to"`
	Status            string   `json:"status" binding:"omitempty,oneof=open on_hold closed"`
}

// UpdateRequirementRequest mirrors the create payload.
type UpdateRequirementRequest = CreateRequirementRequest

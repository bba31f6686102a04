package models

import "strings"

// Activity groups related billable sub-activities, e.g. "Customs clearance".
type Activity struct {
	Base        `bson:",inline"`
	Code        string        `bson:"code" json:"code"`
	Name        BilingualText `bson:"name" json:"name"`
	Description BilingualText `bson:"description" json:"description"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
}

func (a *Activity) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(a.Code) == "" {
		verr.Add("code", "code is required")
	}
	if a.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	return verr.OrNil()
}

// SubActivity is a billable service offered under an Activity.
type SubActivity struct {
	Base           `bson:",inline"`
	ActivityID     string          `bson:"activityId" json:"activityId"`
	Code           string          `bson:"code" json:"code"`
	Name           BilingualText   `bson:"name" json:"name"`
	Unit           string          `bson:"unit" json:"unit"`                     // e.g. "container", "pallet"
	PricingMethods []PricingMethod `bson:"pricingMethods" json:"pricingMethods"` // methods this sub-activity may be priced by
	IsActive       bool            `bson:"isActive" json:"isActive"`
}

func (s *SubActivity) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(s.ActivityID) == "" {
		verr.Add("activityId", "activity is required")
	}
	if s.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	if len(s.PricingMethods) == 0 {
		verr.Add("pricingMethods", "at least one pricing method is required")
	}
	for _, m := range s.PricingMethods {
		if !m.Valid() {
			verr.Add("pricingMethods", "unknown pricing method "+string(m))
		}
	}
	return verr.OrNil()
}

// SupportsMethod reports whether the sub-activity may be priced by m.
func (s *SubActivity) SupportsMethod(m PricingMethod) bool {
	for _, candidate := range s.PricingMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// Option is the lookup row shown in the sub-activity picker.
func (s *SubActivity) Option() SubActivityOption {
	name := s.Name.Display()
	if s.Code != "" {
		name = s.Code + " - " + name
	}
	return SubActivityOption{ID: s.ID, DisplayName: name}
}

// SubActivityOption is one entry of the by-method lookup.
type SubActivityOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// PartyDetails is shared by customers and vendors.
type PartyDetails struct {
	Code      string        `bson:"code" json:"code"`
	Name      BilingualText `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email,omitempty"`
	Phone     string        `bson:"phone" json:"phone,omitempty"`
	TaxNumber string        `bson:"taxNumber" json:"taxNumber,omitempty"`
	Address   BilingualText `bson:"address" json:"address"`
	IsActive  bool          `bson:"isActive" json:"isActive"`
}

func (p PartyDetails) validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(p.Code) == "" {
		verr.Add("code", "code is required")
	}
	if p.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		verr.Add("email", "email is not valid")
	}
	return verr.OrNil()
}

// Customer is billed through customer price lists.
type Customer struct {
	Base         `bson:",inline"`
	PartyDetails `bson:",inline"`
	CreditLimit  float64 `bson:"creditLimit" json:"creditLimit"`
}

func (c *Customer) Validate() error { return c.PartyDetails.validate() }

// Vendor supplies services priced through vendor price lists.
type Vendor struct {
	Base         `bson:",inline"`
	PartyDetails `bson:",inline"`
	PaymentTerms int `bson:"paymentTerms" json:"paymentTerms"` // days
}

func (v *Vendor) Validate() error { return v.PartyDetails.validate() }

// TransactionDirection says whether a transaction type books revenue or cost.
type TransactionDirection string

const (
	DirectionIncome  TransactionDirection = "income"
	DirectionExpense TransactionDirection = "expense"
)

// TransactionType classifies financial movements in the back office.
type TransactionType struct {
	Base      `bson:",inline"`
	Code      string               `bson:"code" json:"code"`
	Name      BilingualText        `bson:"name" json:"name"`
	Direction TransactionDirection `bson:"direction" json:"direction"`
	IsActive  bool                 `bson:"isActive" json:"isActive"`
}

func (t *TransactionType) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(t.Code) == "" {
		verr.Add("code", "code is required")
	}
	if t.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	if t.Direction != DirectionIncome && t.Direction != DirectionExpense {
		verr.Add("direction", "must be income or expense")
	}
	return verr.OrNil()
}

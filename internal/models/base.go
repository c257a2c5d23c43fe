package models

import "time"

// SoftDelete is embedded by every entity that is hidden instead of removed.
type SoftDelete struct {
	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `gorm:"size:100" json:"deleted_by,omitempty"`
}

// MarkDeleted flags the row as deleted by actor at the given time.
func (s *SoftDelete) MarkDeleted(actor string, at time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &at
	if actor != "" {
		s.DeletedBy = &actor
	} else {
		s.DeletedBy = nil
	}
}

// Restore clears all soft-delete bookkeeping.
func (s *SoftDelete) Restore() {
	s.IsDeleted = false
	s.DeletedAt = nil
	s.DeletedBy = nil
}

// DeletePolicy is what happens to children when a parent row is removed.
type DeletePolicy string

const (
	DeleteRestrict DeletePolicy = "RESTRICT"
	DeleteCascade  DeletePolicy = "CASCADE"
)

// Relation names one parent to child foreign key.
type Relation struct {
	Parent string
	Field  string
	Policy DeletePolicy
}

// DeletionPolicies lists the delete behaviour of every owned collection.
// Merchants never cascade to their children; a deal owns its payments.
// The constraint tags on the model fields must agree with this table.
var DeletionPolicies = []Relation{
	{Parent: "Merchant", Field: "Principals", Policy: DeleteRestrict},
	{Parent: "Merchant", Field: "BankAccounts", Policy: DeleteRestrict},
	{Parent: "Merchant", Field: "Offers", Policy: DeleteRestrict},
	{Parent: "Merchant", Field: "Deals", Policy: DeleteRestrict},
	{Parent: "Deal", Field: "Payments", Policy: DeleteCascade},
}

// PolicyFor returns the delete policy of parent.field, RESTRICT when unlisted.
func PolicyFor(parent, field string) DeletePolicy {
	for _, r := range DeletionPolicies {
		if r.Parent == parent && r.Field == field {
			return r.Policy
		}
	}
	return DeleteRestrict
}

// AllModels is the migration set in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Merchant{},
		&Principal{},
		&BankAccount{},
		&Offer{},
		&Deal{},
		&DealSequence{},
		&Payment{},
		&RenewalInfo{},
		&DealRenewalJunction{},
		&DealRenewalRelationship{},
	}
}

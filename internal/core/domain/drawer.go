package domain

import "github.com/shopspring/decimal"

// DrawerType classifies a cash container within the custody hierarchy.
type DrawerType string

const (
	Physical   DrawerType = "PHYSICAL"
	Safe       DrawerType = "SAFE"
	MasterSafe DrawerType = "MASTER_SAFE"
)

// Drawer is a configured cash container: a till, an in-store safe, or the
// master safe. Drawers are referenced, never owned, by sessions.
type Drawer struct {
	DrawerID string     `json:"drawerID"` // Primary Key (UUID)
	StoreID  string     `json:"storeID"`  // FK -> stores.store_id
	Name     string     `json:"name"`
	Type     DrawerType `json:"type"`
	IsActive bool       `json:"isActive"`

	// IsShared is only meaningful for physical drawers; nil means the choice
	// has not been made yet and must be supplied on the first open. Safes and
	// the master safe are implicitly shared regardless of this field.
	IsShared *bool `json:"isShared,omitempty"`

	MinClose decimal.Decimal `json:"minClose"`
	MaxClose decimal.Decimal `json:"maxClose"`

	BlindCount              bool `json:"blindCount"`
	IndividualDenominations bool `json:"individualDenominations"`
	ElectronicBlindCount    bool `json:"electronicBlindCount"`

	AuditFields
}

// EffectiveShared reports whether multiple employees may attach to an open
// session on this drawer. Safes and the master safe are always shared.
func (d *Drawer) EffectiveShared() (shared bool, decided bool) {
	if d.Type != Physical {
		return true, true
	}
	if d.IsShared == nil {
		return false, false
	}
	return *d.IsShared, true
}

// transferPaths is the fixed directed hierarchy of allowed cash movements.
var transferPaths = map[DrawerType][]DrawerType{
	Physical:   {Physical, Safe},
	Safe:       {Physical, MasterSafe},
	MasterSafe: {Safe},
}

// CanTransferTo reports whether cash may move from a drawer of type t to a
// drawer of type dest.
func (t DrawerType) CanTransferTo(dest DrawerType) bool {
	for _, allowed := range transferPaths[t] {
		if allowed == dest {
			return true
		}
	}
	return false
}

package dto

import (
	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDrawerRequest configures a new drawer.
type CreateDrawerRequest struct {
	StoreID string `json:"storeID" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=PHYSICAL SAFE MASTER_SAFE"`

	IsShared *bool `json:"isShared,omitempty"`

	MinClose decimal.Decimal `json:"minClose"`
	MaxClose decimal.Decimal `json:"maxClose"`

	BlindCount              bool `json:"blindCount"`
	IndividualDenominations bool `json:"individualDenominations"`
	ElectronicBlindCount    bool `json:"electronicBlindCount"`
}

// UpdateDrawerRequest edits drawer configuration. Nil fields are untouched.
type UpdateDrawerRequest struct {
	Name                    *string          `json:"name,omitempty"`
	IsActive                *bool            `json:"isActive,omitempty"`
	IsShared                *bool            `json:"isShared,omitempty"`
	MinClose                *decimal.Decimal `json:"minClose,omitempty"`
	MaxClose                *decimal.Decimal `json:"maxClose,omitempty"`
	BlindCount              *bool            `json:"blindCount,omitempty"`
	IndividualDenominations *bool            `json:"individualDenominations,omitempty"`
	ElectronicBlindCount    *bool            `json:"electronicBlindCount,omitempty"`
}

// DrawerResponse is the externally visible shape of a drawer.
type DrawerResponse struct {
	DrawerID                string          `json:"drawerID"`
	StoreID                 string          `json:"storeID"`
	Name                    string          `json:"name"`
	Type                    string          `json:"type"`
	IsActive                bool            `json:"isActive"`
	IsShared                *bool           `json:"isShared,omitempty"`
	MinClose                decimal.Decimal `json:"minClose"`
	MaxClose                decimal.Decimal `json:"maxClose"`
	BlindCount              bool            `json:"blindCount"`
	IndividualDenominations bool            `json:"individualDenominations"`
	ElectronicBlindCount    bool            `json:"electronicBlindCount"`
}

// ToDrawerResponse converts a domain.Drawer to its response DTO.
func ToDrawerResponse(d *domain.Drawer) DrawerResponse {
	return DrawerResponse{
		DrawerID:                d.DrawerID,
		StoreID:                 d.StoreID,
		Name:                    d.Name,
		Type:                    string(d.Type),
		IsActive:                d.IsActive,
		IsShared:                d.IsShared,
		MinClose:                d.MinClose,
		MaxClose:                d.MaxClose,
		BlindCount:              d.BlindCount,
		IndividualDenominations: d.IndividualDenominations,
		ElectronicBlindCount:    d.ElectronicBlindCount,
	}
}

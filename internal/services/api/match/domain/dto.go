// Package domain holds DTOs for match http and service contracts
package domain

// GenerateInput requests one matching pass for an anchor entity
type GenerateInput struct {
	AnchorID int64   `json:"anchor_id" validate:"required,min=1" example:"42"`
	TopK     int     `json:"top_k,omitempty" validate:"omitempty,min=1,max=200" example:"20"`
	MinScore float64 `json:"min_score,omitempty" validate:"omitempty,min=0,max=100" example:"40"`
}

// GenerateResult reports how many opportunities were created or refreshed
type GenerateResult struct {
	Created int `json:"created" example:"7"`
}

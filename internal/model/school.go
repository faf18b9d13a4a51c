package model

import "time"

// School holds the letterhead details printed on generated papers.
type School struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Logo         *string   `json:"logo,omitempty"`
	Address      string    `json:"address"`
	MobileNumber string    `json:"mobile_number"`
	CreatedBy    int       `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSchoolRequest is the multipart form payload for adding a school.
// The logo file is handled separately by the media service.
type CreateSchoolRequest struct {
	Name         string `form:"name" binding:"required,min=2,max=200"`
	Address      string `form:"address" binding:"required"`
	MobileNumber string `form:"mobile_number" binding:"required,max=20"`
}

// UpdateSchoolRequest is the multipart form payload for updating school
// details. A new logo file, when present, replaces the stored one.
type UpdateSchoolRequest struct {
	Name         string `form:"name" binding:"required,min=2,max=200"`
	Address      string `form:"address" binding:"required"`
	MobileNumber string `form:"mobile_number" binding:"required,max=20"`
}

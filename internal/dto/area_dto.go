package dto

import (
	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/models"
)

// CreateAreaRequest is the request body for creating (or reusing) an area
type CreateAreaRequest struct {
	Label string `json:"label" binding:"required,max=100"`
}

// AreaDTO represents an area in responses
type AreaDTO struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// AreaListResponse is the response for listing areas
type AreaListResponse struct {
	Areas []AreaDTO `json:"areas"`
}

// AreaResponse wraps a single area
type AreaResponse struct {
	Area AreaDTO `json:"area"`
}

// AreaToDTO converts an Area model to AreaDTO
func AreaToDTO(a *models.Area) AreaDTO {
	return AreaDTO{
		ID:    a.ID,
		Label: a.Name,
	}
}

// AreasToDTO converts a slice of Area models to DTOs
func AreasToDTO(areas []models.Area) []AreaDTO {
	dtos := make([]AreaDTO, len(areas))
	for i, a := range areas {
		dtos[i] = AreaToDTO(&a)
	}
	return dtos
}

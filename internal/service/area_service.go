package service

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/repository"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

type AreaService struct {
	areaRepo *repository.AreaRepository
}

func NewAreaService(areaRepo *repository.AreaRepository) *AreaService {
	return &AreaService{areaRepo: areaRepo}
}

func (s *AreaService) List(userID uuid.UUID) (*dto.AreaListResponse, error) {
	areas, err := s.areaRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to list areas", http.StatusInternalServerError)
	}

	return &dto.AreaListResponse{
		Areas: dto.AreasToDTO(areas),
	}, nil
}

// Create resolves or creates an area by label. Creation is an idempotent
// upsert keyed on (user, lowercased label): submitting "Work" twice returns
// the same area both times.
func (s *AreaService) Create(userID uuid.UUID, label string) (*dto.AreaDTO, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperrors.ValidationError("Label is required")
	}

	area, err := s.areaRepo.FindOrCreate(userID, label)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to create area", http.StatusInternalServerError)
	}

	result := dto.AreaToDTO(area)
	return &result, nil
}

package service

import (
	"errors"

	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/repository"
)

type ProfileService struct {
	profileRepo *repository.RestaurantProfileRepository
}

func NewProfileService(profileRepo *repository.RestaurantProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(userID uint) (*models.RestaurantProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, errors.New("restaurant profile not found")
	}
	return profile, nil
}

// UpdateProfile saves the restaurant details and marks onboarding complete:
// the required fields in the request are exactly what ordering needs.
func (s *ProfileService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.RestaurantProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, errors.New("restaurant profile not found")
	}

	profile.RestaurantName = req.RestaurantName
	profile.Country = req.Country
	profile.City = req.City
	profile.LogoURL = req.LogoURL
	profile.WebsiteURL = req.WebsiteURL
	profile.WhatsappNumber = req.WhatsappNumber
	profile.OnboardingCompleted = true

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/africahouse/tradeportal/internal/markdown"
	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
)

const maxDescriptionLength = 10000

var ErrDescriptionTooLong = errors.New("product description is too long")

// ProfileView is a vendor profile with its markdown description rendered
// and its uploaded images resolved to URLs.
type ProfileView struct {
	Profile         *model.CompanyProfile
	DescriptionHTML string
	LogoURL         string
	ProductImages   []string
}

type ProfileService struct {
	profileRepository repository.CompanyProfileRepository
	fileRepository    repository.FileRepository
	fileService       *FileService
	parser            *markdown.Parser
}

func NewProfileService(
	profileRepository repository.CompanyProfileRepository,
	fileRepository repository.FileRepository,
	fileService *FileService,
) *ProfileService {
	return &ProfileService{
		profileRepository: profileRepository,
		fileRepository:    fileRepository,
		fileService:       fileService,
		parser:            markdown.NewParser(),
	}
}

func (s *ProfileService) ByUserID(userID string) (*ProfileView, error) {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: profile}

	if profile.Description != "" {
		html, err := s.parser.Parse([]byte(profile.Description))
		if err != nil {
			return nil, fmt.Errorf("failed to render description: %w", err)
		}
		view.DescriptionHTML = string(html)
	}

	logo, err := s.fileRepository.FileByType(model.FileOwnerCompanyProfile, profile.ID, model.FileTypeLogo)
	if err == nil {
		view.LogoURL = s.fileService.URL(logo)
	}

	products, err := s.fileRepository.ByOwner(model.FileOwnerCompanyProfile, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile images: %w", err)
	}
	for _, f := range products {
		if f.Type == model.FileTypeProduct {
			view.ProductImages = append(view.ProductImages, s.fileService.URL(&f))
		}
	}

	return view, nil
}

// Update saves the vendor's markdown description, creating the profile on
// first save.
func (s *ProfileService) Update(userID, description string) (*model.CompanyProfile, error) {
	if len(description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		profile = &model.CompanyProfile{UserID: userID}
	}

	profile.Description = description
	err = s.profileRepository.Upsert(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// UploadedImage is what the upload endpoints hand back to the client.
type UploadedImage struct {
	ID  string
	URL string
}

// UploadLogo stores a new logo for the vendor, replacing any existing one.
func (s *ProfileService) UploadLogo(userID string, file multipart.File, header *multipart.FileHeader) (*UploadedImage, error) {
	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}

	old, err := s.fileRepository.FileByType(model.FileOwnerCompanyProfile, profile.ID, model.FileTypeLogo)
	if err == nil {
		if err := s.fileService.Delete(old.ID); err != nil {
			return nil, fmt.Errorf("failed to replace logo: %w", err)
		}
	} else if !errors.Is(err, repository.ErrFileNotFound) {
		return nil, fmt.Errorf("failed to look up logo: %w", err)
	}

	uploaded, err := s.fileService.Upload(userID, model.FileOwnerCompanyProfile, profile.ID, model.FileTypeLogo, file, header)
	if err != nil {
		return nil, err
	}
	return &UploadedImage{ID: uploaded.ID, URL: s.fileService.URL(uploaded)}, nil
}

// AddProductImage stores an additional product image on the vendor's profile.
func (s *ProfileService) AddProductImage(userID string, file multipart.File, header *multipart.FileHeader) (*UploadedImage, error) {
	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.fileService.Upload(userID, model.FileOwnerCompanyProfile, profile.ID, model.FileTypeProduct, file, header)
	if err != nil {
		return nil, err
	}
	return &UploadedImage{ID: uploaded.ID, URL: s.fileService.URL(uploaded)}, nil
}

// RemoveImage deletes an uploaded image, refusing files the vendor does
// not own.
func (s *ProfileService) RemoveImage(userID, fileID string) error {
	file, err := s.fileRepository.ByID(fileID)
	if err != nil {
		return err
	}
	if file.UserID != userID {
		return repository.ErrFileNotFound
	}

	return s.fileService.Delete(fileID)
}

// EnsureProfile returns the vendor's profile, creating an empty one if
// needed (image uploads may arrive before the first description save).
func (s *ProfileService) EnsureProfile(userID string) (*model.CompanyProfile, error) {
	profile, err := s.profileRepository.ByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile = &model.CompanyProfile{UserID: userID}
	err = s.profileRepository.Upsert(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/africahouse/tradeportal/internal/ctxkeys"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/service"
	"github.com/africahouse/tradeportal/internal/validation"
)

// Multipart uploads are parsed with a little headroom over the 5MB
// per-image limit enforced by validation.
const maxUploadParseSize = 6 << 20

type profileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *profileHandler {
	return &profileHandler{profileService: profileService}
}

// Get returns the vendor's own profile with the description rendered to
// HTML and image URLs resolved
func (h *profileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	view, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			respondJSON(w, http.StatusOK, map[string]any{
				"description":     "",
				"descriptionHtml": "",
				"logoUrl":         "",
				"productImages":   []string{},
			})
			return
		}
		slog.Error("failed to load profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"description":     view.Profile.Description,
		"descriptionHtml": view.DescriptionHTML,
		"logoUrl":         view.LogoURL,
		"productImages":   view.ProductImages,
	})
}

type updateProfileRequest struct {
	Description string `json:"description"`
}

// Update saves the vendor's markdown product description
func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileService.Update(user.ID, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrDescriptionTooLong) {
			respondError(w, http.StatusBadRequest, "Product description is too long.")
			return
		}
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to save profile.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"description": profile.Description,
	})
}

// UploadLogo replaces the vendor's logo image
func (h *profileHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "logo")
}

// UploadProductImage adds a product image to the vendor's profile
func (h *profileHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "image")
}

func (h *profileHandler) uploadImage(w http.ResponseWriter, r *http.Request, field string) {
	user := ctxkeys.User(r.Context())

	if err := r.ParseMultipartForm(maxUploadParseSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer func() { _ = file.Close() }()

	if err := validation.ValidateFile(header, validation.ImageConstraints); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var uploaded *service.UploadedImage
	if field == "logo" {
		uploaded, err = h.profileService.UploadLogo(user.ID, file, header)
	} else {
		uploaded, err = h.profileService.AddProductImage(user.ID, file, header)
	}
	if err != nil {
		slog.Error("failed to upload image", "error", err, "user_id", user.ID, "kind", field)
		respondError(w, http.StatusInternalServerError, "Failed to upload image.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"id":  uploaded.ID,
		"url": uploaded.URL,
	})
}

// DeleteImage removes one of the vendor's uploaded images
func (h *profileHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	err := h.profileService.RemoveImage(user.ID, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "Image not found.")
			return
		}
		slog.Error("failed to delete image", "error", err, "user_id", user.ID, "file_id", fileID)
		respondError(w, http.StatusInternalServerError, "Failed to delete image.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

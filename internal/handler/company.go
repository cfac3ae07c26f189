package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/service"
)

type companyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// List returns the company directory, optionally filtered by the q
// keyword across name, services and address
func (h *companyHandler) List(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")

	companies, err := h.companyService.Directory(keyword)
	if err != nil {
		slog.Error("failed to list companies", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load the company directory.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"companies": companies,
		"count":     len(companies),
	})
}

func (h *companyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	company, err := h.companyService.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			respondError(w, http.StatusNotFound, "Company not found.")
			return
		}
		slog.Error("failed to get company", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load company.")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

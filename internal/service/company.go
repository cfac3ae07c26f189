package service

import (
	"fmt"
	"strings"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
)

type CompanyService struct {
	companyRepository repository.CompanyRepository
}

func NewCompanyService(companyRepository repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepository: companyRepository}
}

// Directory returns companies matching keyword, or all companies when the
// keyword is blank.
func (s *CompanyService) Directory(keyword string) ([]model.Company, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		companies, err := s.companyRepository.All()
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}
		return companies, nil
	}

	companies, err := s.companyRepository.Search(keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return companies, nil
}

func (s *CompanyService) ByID(id string) (*model.Company, error) {
	return s.companyRepository.ByID(id)
}

// CompanyPromptEntry is the JSON shape fed into the chat system prompt.
type CompanyPromptEntry struct {
	Name     string   `json:"name"`
	Website  string   `json:"website"`
	Services []string `json:"services"`
	Contact  string   `json:"contact"`
}

// PromptData flattens the directory for the assistant's system prompt.
func (s *CompanyService) PromptData() ([]CompanyPromptEntry, error) {
	companies, err := s.companyRepository.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	entries := make([]CompanyPromptEntry, 0, len(companies))
	for _, c := range companies {
		var services []string
		if c.Services != "" {
			for _, svc := range strings.Split(c.Services, ",") {
				services = append(services, strings.TrimSpace(svc))
			}
		}

		entries = append(entries, CompanyPromptEntry{
			Name:     c.Name,
			Website:  c.Address,
			Services: services,
			Contact:  fmt.Sprintf("%s | %s | %s", c.Email, c.Phone, c.Mobile),
		})
	}

	return entries, nil
}

package service

import (
	"testing"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryFixtures() []model.Company {
	return []model.Company{
		{
			Name:     "Karachi Textile Mills",
			Address:  "www.karachitextile.com",
			Phone:    "+92 21 34567890",
			Mobile:   "+92 300 1234567",
			Email:    "info@karachitextile.com",
			Services: "Yarn manufacturing, Fabric processing, Cotton exports",
		},
		{
			Name:     "Kigali Coffee Exporters",
			Address:  "www.kigalicoffee.rw",
			Phone:    "+250 788 123456",
			Mobile:   "+250 722 334455",
			Email:    "info@kigalicoffee.rw",
			Services: "Arabica beans, Specialty coffee",
		},
		{
			Name:     "Volcano Leather Works",
			Address:  "www.volcanoleather.rw",
			Phone:    "+250 789 665544",
			Mobile:   "+250 721 123456",
			Email:    "orders@volcanoleather.rw",
			Services: "Leather bags, Handmade belts",
		},
	}
}

func TestDirectoryListsAllWithoutKeyword(t *testing.T) {
	svc := newCompanyService(t, directoryFixtures()...)

	companies, err := svc.Directory("")
	require.NoError(t, err)
	require.Len(t, companies, 3)

	// Sorted by name.
	assert.Equal(t, "Karachi Textile Mills", companies[0].Name)
	assert.Equal(t, "Kigali Coffee Exporters", companies[1].Name)
	assert.Equal(t, "Volcano Leather Works", companies[2].Name)
}

func TestDirectoryKeywordSearch(t *testing.T) {
	svc := newCompanyService(t, directoryFixtures()...)

	tests := []struct {
		keyword string
		want    []string
	}{
		{"coffee", []string{"Kigali Coffee Exporters"}},
		{"LEATHER", []string{"Volcano Leather Works"}},
		{"cotton", []string{"Karachi Textile Mills"}},
		{".rw", []string{"Kigali Coffee Exporters", "Volcano Leather Works"}},
		{"  coffee  ", []string{"Kigali Coffee Exporters"}},
		{"blockchain", nil},
	}

	for _, tc := range tests {
		companies, err := svc.Directory(tc.keyword)
		require.NoError(t, err, "keyword %q", tc.keyword)

		var names []string
		for _, c := range companies {
			names = append(names, c.Name)
		}
		assert.Equal(t, tc.want, names, "keyword %q", tc.keyword)
	}
}

func TestCompanyByID(t *testing.T) {
	svc := newCompanyService(t, directoryFixtures()...)

	companies, err := svc.Directory("")
	require.NoError(t, err)

	got, err := svc.ByID(companies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, companies[0].Name, got.Name)

	_, err = svc.ByID("no-such-id")
	assert.ErrorIs(t, err, repository.ErrCompanyNotFound)
}

func TestPromptDataShape(t *testing.T) {
	svc := newCompanyService(t, model.Company{
		Name:      "Kigali Coffee Exporters",
		Address:   "www.kigalicoffee.rw",
		Phone:     "+250 788 123456",
		Mobile:    "+250 722 334455",
		Email:     "info@kigalicoffee.rw",
		Services:  "Arabica beans, Specialty coffee,Organic coffee",
		CreatedAt: time.Now(),
	})

	entries, err := svc.PromptData()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Kigali Coffee Exporters", entry.Name)
	assert.Equal(t, "www.kigalicoffee.rw", entry.Website)
	assert.Equal(t, []string{"Arabica beans", "Specialty coffee", "Organic coffee"}, entry.Services)
	assert.Equal(t, "info@kigalicoffee.rw | +250 788 123456 | +250 722 334455", entry.Contact)
}

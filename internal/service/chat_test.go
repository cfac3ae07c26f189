package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/africahouse/tradeportal/internal/db"
	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyService(t *testing.T, companies ...model.Company) *CompanyService {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	repo := repository.NewCompanyRepository(database)
	for i := range companies {
		c := companies[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.CreatedAt = time.Now()
		require.NoError(t, repo.Create(&c))
	}

	return NewCompanyService(repo)
}

func sampleCompany() model.Company {
	return model.Company{
		Name:     "Kigali Coffee Exporters",
		Address:  "www.kigalicoffee.rw",
		Phone:    "+250 788 123456",
		Mobile:   "+250 722 334455",
		Email:    "info@kigalicoffee.rw",
		Services: "Arabica beans, Specialty coffee",
	}
}

func TestAskUsesFirstHealthyModel(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Kigali Coffee exports arabica beans."}},
			},
		})
	}))
	defer server.Close()

	svc := NewChatService(newCompanyService(t, sampleCompany()), "key-123", server.URL, []string{"model-a", "model-b"}, "support@example.com", 5*time.Second)

	reply, modelUsed, err := svc.Ask(context.Background(), "What does Kigali Coffee do?")
	require.NoError(t, err)
	assert.Equal(t, "Kigali Coffee exports arabica beans.", reply)
	assert.Equal(t, "model-a", modelUsed)

	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "model-a", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Kigali Coffee Exporters")
	assert.Equal(t, "What does Kigali Coffee do?", gotReq.Messages[1].Content)
}

func TestAskFallsThroughRateLimitedModels(t *testing.T) {
	var models []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		models = append(models, req.Model)

		if req.Model != "model-c" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "answer"}},
			},
		})
	}))
	defer server.Close()

	svc := NewChatService(newCompanyService(t), "key", server.URL, []string{"model-a", "model-b", "model-c"}, "support@example.com", 5*time.Second)

	reply, modelUsed, err := svc.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "answer", reply)
	assert.Equal(t, "model-c", modelUsed)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, models)
}

func TestAskReturnsFallbackWhenAllModelsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewChatService(newCompanyService(t), "key", server.URL, []string{"model-a", "model-b"}, "support@example.com", 5*time.Second)

	reply, modelUsed, err := svc.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fallback", modelUsed)
	assert.Contains(t, reply, "technical difficulties")
	assert.Contains(t, reply, "support@example.com")
}

func TestAskWithoutAPIKey(t *testing.T) {
	svc := NewChatService(newCompanyService(t), "", "http://unused", []string{"model-a"}, "support@example.com", time.Second)

	_, _, err := svc.Ask(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

func TestSystemPromptScopesToDirectory(t *testing.T) {
	svc := NewChatService(newCompanyService(t, sampleCompany()), "key", "http://unused", nil, "support@example.com", time.Second)

	prompt := svc.SystemPrompt()
	assert.Contains(t, prompt, "Kigali Coffee Exporters")
	assert.Contains(t, prompt, "www.kigalicoffee.rw")
	assert.Contains(t, prompt, "listed partner companies")
}

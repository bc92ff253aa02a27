package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyprep/content-service/internal/models"
)

func TestGetQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/quizzes/quiz-1/questions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"title": "Remote Quiz", "sections": []}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	doc, err := client.GetQuestions(context.Background(), KindQuiz, "quiz-1")

	require.NoError(t, err)
	root, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Remote Quiz", root["title"])
}

func TestGetQuestions_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.GetQuestions(context.Background(), KindPastPaper, "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSaveQuestions(t *testing.T) {
	var received []models.Section

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/past-papers/pp-2/questions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(SaveResponse{
			Success: true,
			Data: &SaveResponseData{
				QuestionsDataURL: "https://cdn.example.com/pp-2.json",
			},
		})
	}))
	defer server.Close()

	sections := []models.Section{
		{SectionID: "sec_a", SectionName: "Section A", Questions: []models.Question{
			{ID: "q1", QuestionText: "Q?", QuestionType: models.ShortAnswer, Marks: 1},
		}},
	}

	client := NewClient(server.URL, "token")
	resp, err := client.SaveQuestions(context.Background(), KindPastPaper, "pp-2", sections)

	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "https://cdn.example.com/pp-2.json", resp.Data.QuestionsDataURL)
	require.Len(t, received, 1)
	assert.Equal(t, "sec_a", received[0].SectionID)
}

func TestSaveQuestions_RejectedByRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(SaveResponse{
			Success: false,
			Error:   "questions payload too large",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.SaveQuestions(context.Background(), KindQuiz, "quiz-9", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions payload too large")
}

func TestSaveQuestions_SuccessFlagFalse(t *testing.T) {
	// 200 with success=false is still a rejection.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SaveResponse{Success: false})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.SaveQuestions(context.Background(), KindQuiz, "quiz-9", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 200")
}

func TestProxy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects/sub-1", r.URL.Path)
		assert.Equal(t, "page=2", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": "sub-1"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result, err := client.Proxy(context.Background(), http.MethodGet, "subjects/sub-1",
		url.Values{"page": []string{"2"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, "application/json", result.ContentType)
	assert.JSONEq(t, `{"id": "sub-1"}`, string(result.Body))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/api/", "")
	assert.Equal(t, "http://example.com/api", client.baseURL)
}

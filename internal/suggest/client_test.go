package suggest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_PostsPromptAndNames(t *testing.T) {
	var gotBody request
	var gotMethod, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Write([]byte(`{"suggestedCalculators": ["BMI Calculator", "Length Converter"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	names := []string{"BMI Calculator", "Length Converter", "Acreage Calculator"}
	got, err := c.Suggest(context.Background(), "how heavy am I for my height", names)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "how heavy am I for my height", gotBody.Prompt)
	assert.Equal(t, names, gotBody.CalculatorNames)
	assert.Equal(t, []string{"BMI Calculator", "Length Converter"}, got)
}

func TestSuggest_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"suggestedCalculators": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("sekrit"))
	_, err := c.Suggest(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestSuggest_EmptySuggestionList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggestedCalculators": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Suggest(context.Background(), "nothing fits", []string{"BMI Calculator"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggest_ServerErrorAfterRetries(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetries(1))
	_, err := c.Suggest(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestSuggest_NonRetryableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Suggest(context.Background(), "anything", nil)
	assert.ErrorContains(t, err, "404")
}

func TestSuggest_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Suggest(context.Background(), "anything", nil)
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestSuggest_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"somethingElse": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Suggest(context.Background(), "anything", nil)
	assert.ErrorContains(t, err, "suggestedCalculators")
}

func TestSuggest_UnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", WithRetries(0))
	_, err := c.Suggest(context.Background(), "anything", nil)
	assert.ErrorContains(t, err, "call suggestion service")
}

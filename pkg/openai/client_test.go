package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanvega/seoforge-backend/pkg/config"
)

func testConfig() config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:      "sk-test",
		Model:       "gpt-4o",
		Timeout:     5 * time.Second,
		Temperature: 0.7,
	}
}

func outputTextBody(text string) string {
	body := map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "  "

	_, err := NewClient(cfg)
	require.Error(t, err)
}

func TestGenerateText(t *testing.T) {
	var captured responsesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, responsesPath, r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(outputTextBody(`{"seoTitle":"x"}`)))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	out, err := client.GenerateText(context.Background(), "describe this product")
	require.NoError(t, err)
	assert.Equal(t, `{"seoTitle":"x"}`, out)

	assert.Equal(t, "gpt-4o", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	require.Len(t, captured.Input, 1)
	assert.Equal(t, "user", captured.Input[0].Role)
}

func TestGenerateText_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateText_NoOutputText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[{"type":"reasoning"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output_text")
}

func TestGenerateText_Refusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[],"refusal":"cannot comply"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot comply")
}

func TestDescribeImages(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(outputTextBody("white ceramic mug with matte finish")))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	out, err := client.DescribeImages(context.Background(), "describe the product images", []ImageInput{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "white ceramic mug with matte finish", out)

	input := raw["input"].([]any)
	require.Len(t, input, 1)
	content := input[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 3)

	first := content[0].(map[string]any)
	assert.Equal(t, "input_text", first["type"])

	second := content[1].(map[string]any)
	assert.Equal(t, "input_image", second["type"])
	assert.Equal(t, "https://cdn.example.com/a.jpg", second["image_url"])
}

func TestDescribeImages_RequiresImages(t *testing.T) {
	client, err := NewClient(testConfig())
	require.NoError(t, err)

	_, err = client.DescribeImages(context.Background(), "describe", nil)
	require.Error(t, err)

	_, err = client.DescribeImages(context.Background(), "describe", []ImageInput{{URL: "  "}})
	require.Error(t, err)
}

func TestExtractOutputText_ConcatenatesAssistantMessages(t *testing.T) {
	var resp responsesResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"output": [
			{"type": "reasoning"},
			{"type": "message", "role": "assistant", "content": [
				{"type": "output_text", "text": "part one "},
				{"type": "output_text", "text": "part two"}
			]}
		]
	}`), &resp))

	assert.Equal(t, "part one part two", extractOutputText(resp))
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = "fale_fetch"
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return res, text.Text
}

func TestHandleFaleFetch_Success(t *testing.T) {
	var got fetchRequest
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fetch", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"content":"<h1>Fale</h1>"}`))
	}))
	defer api.Close()

	res, text := callTool(t, handleFaleFetch(api.URL+"/", api.Client()), map[string]any{"url": "https://example.com/"})

	assert.False(t, res.IsError)
	assert.Equal(t, "<h1>Fale</h1>", text)
	assert.Equal(t, "https://example.com/", got.URL)
}

func TestHandleFaleFetch_APIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"invalid URL"}`))
	}))
	defer api.Close()

	res, text := callTool(t, handleFaleFetch(api.URL, api.Client()), map[string]any{"url": "not-a-valid-url"})

	assert.True(t, res.IsError)
	assert.Contains(t, text, "500")
	assert.Contains(t, text, "invalid URL")
}

func TestHandleFaleFetch_MissingURL(t *testing.T) {
	res, text := callTool(t, handleFaleFetch("http://127.0.0.1:0", http.DefaultClient), map[string]any{})

	assert.True(t, res.IsError)
	assert.Equal(t, "url is required", text)
}

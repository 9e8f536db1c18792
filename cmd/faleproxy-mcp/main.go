package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// fetchRequest mirrors the faleproxy API request model.
type fetchRequest struct {
	URL string `json:"url"`
}

// fetchResponse covers both the 200/500 and the 400 response shapes.
type fetchResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error"`
}

func main() {
	apiURL := os.Getenv("FALE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3001"
	}

	s := server.NewMCPServer(
		"faleproxy",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	falefetchTool := mcp.NewTool("fale_fetch",
		mcp.WithDescription("Fetch a web page through faleproxy and return its HTML with every text occurrence of the source term replaced. Link targets are left unchanged."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http or https URL of the page to fetch"),
		),
	)
	s.AddTool(falefetchTool, handleFaleFetch(apiURL, &http.Client{Timeout: 60 * time.Second}))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// handleFaleFetch proxies the tool call to POST {apiURL}/fetch.
func handleFaleFetch(apiURL string, client *http.Client) server.ToolHandlerFunc {
	endpoint := strings.TrimRight(apiURL, "/") + "/fetch"

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := json.Marshal(fetchRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var fr fetchResponse
		if err := json.Unmarshal(respBody, &fr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response (HTTP %d): %v", resp.StatusCode, err)), nil
		}

		if resp.StatusCode != http.StatusOK || !fr.Success {
			errMsg := fr.Error
			if errMsg == "" {
				errMsg = "fetch failed"
			}
			return mcp.NewToolResultError(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, errMsg)), nil
		}

		return mcp.NewToolResultText(fr.Content), nil
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

func main() {
	if len(os.Args) < 4 {
		slog.Error("Usage: ask <server-url> <profile> <question>")
		os.Exit(1)
	}

	serverURL := os.Args[1]
	profile := os.Args[2]
	question := os.Args[3]

	reqBody := map[string]string{
		"question": question,
		"profile":  profile,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		slog.Error("Failed to marshal request", "error", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/api/query", serverURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Error("Failed to create request", "error", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Error("Failed to submit query", "error", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read response", "error", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Query failed", "status", resp.StatusCode, "body", string(body))
		os.Exit(1)
	}

	var response struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		slog.Error("Failed to decode response", "error", err)
		os.Exit(1)
	}

	fmt.Println(response.Answer)
}

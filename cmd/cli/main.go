// Command cli triggers a preflight pass on a remote api instance and prints
// the returned results.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	body, _ := json.Marshal(map[string]any{"parallel": true})
	req, _ := http.NewRequest(http.MethodPost, api+"/api/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintln(os.Stderr, "API returned status:", resp.Status)
		os.Exit(1)
	}

	var out struct {
		Success int `json:"success"`
		Failed  int `json:"failed"`
		Results []struct {
			URL          string `json:"url"`
			Status       string `json:"status"`
			Code         string `json:"code"`
			ResponseTime string `json:"response_time"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintln(os.Stderr, "Bad response:", err)
		os.Exit(1)
	}

	for _, r := range out.Results {
		fmt.Printf("%-48s %s %s (%s)\n", r.URL, r.Status, r.Code, r.ResponseTime)
	}
	fmt.Printf("\n%d ok, %d failed\n", out.Success, out.Failed)
	if out.Failed > 0 {
		os.Exit(1)
	}
}

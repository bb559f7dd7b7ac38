package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type statusItem struct {
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Status        string     `json:"status"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	AgeSeconds    *int64     `json:"age_seconds"`
}

func main() {
	def := os.Getenv("API_BASE")
	if def == "" {
		def = "http://localhost:8000"
	}
	api := flag.String("api", def, "monitor base URL")
	flag.Parse()

	items, err := fetchStatus(strings.TrimRight(*api, "/"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "URL", "Status", "Last check"})
	for _, it := range items {
		t.AppendRow(table.Row{it.Name, it.URL, colorizeStatus(it.Status), lastCheck(it)})
	}
	t.Render()
}

func fetchStatus(base string) ([]statusItem, error) {
	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Get(base + "/api/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status: %s", resp.Status)
	}
	var items []statusItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return items, nil
}

func colorizeStatus(s string) string {
	switch s {
	case "UP":
		return text.FgGreen.Sprint(s)
	case "DOWN":
		return text.FgRed.Sprint(s)
	default:
		return text.FgYellow.Sprint(s)
	}
}

func lastCheck(it statusItem) string {
	if it.AgeSeconds == nil {
		return "never checked"
	}
	return fmt.Sprintf("%ds ago", *it.AgeSeconds)
}

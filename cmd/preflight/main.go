// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/multierr"

	"github.com/hamed0406/uptimebot/internal/config"
	"github.com/hamed0406/uptimebot/internal/probe"
)

func main() {
	failed := false
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, text.FgRed.Sprint("✖"), msg)
		failed = true
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, text.FgYellow.Sprint("⚠"), msg) }
	ok := func(msg string) { fmt.Println(text.FgGreen.Sprint("✔"), msg) }

	if err := config.LoadDotEnv(); err != nil {
		fail(err.Error())
	}
	cfg, err := config.FromEnv()
	for _, e := range multierr.Errors(err) {
		fail(e.Error())
	}

	if cfg.BotToken == "" {
		warn("BOT_TOKEN is empty; Telegram notifications and commands are disabled.")
	} else {
		ok("BOT_TOKEN present")
	}
	if cfg.ChatID == "" {
		warn("CHAT_ID is empty; no destination and no authorized command sender.")
	} else {
		ok("CHAT_ID=" + cfg.ChatID)
	}
	if cfg.SelfURL == "" {
		warn("SELF_URL / RENDER_EXTERNAL_URL empty; keep-alive ping disabled.")
	} else {
		ok("keep-alive -> " + cfg.SelfURL)
	}
	if cfg.ProbeProxyURL != "" {
		if _, err := probe.NewHTTPClient(probe.ClientConfig{ProxyURL: cfg.ProbeProxyURL}); err != nil {
			fail("PROBE_PROXY_URL: " + err.Error())
		} else {
			ok("probe proxy " + cfg.ProbeProxyURL)
		}
	}
	if len(cfg.AdminAPIKeys) == 0 {
		warn("ADMIN_API_KEYS is empty; /test is open to anyone (rate limited).")
	}
	if raw := os.Getenv("ADMIN_API_KEYS"); strings.Contains(raw, " ") {
		warn("ADMIN_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "URL"})
	for i, tg := range cfg.Targets {
		t.AppendRow(table.Row{i + 1, tg.Name, tg.URL})
	}
	t.AppendFooter(table.Row{"", "interval", cfg.CheckInterval})
	t.AppendFooter(table.Row{"", "keyword", fmt.Sprintf("%q (min %d chars)", cfg.ExpectedKeyword, cfg.MinHTMLLength)})
	t.Render()

	if failed {
		os.Exit(1)
	}
	ok("preflight passed")
}

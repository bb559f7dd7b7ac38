package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/hamed0406/uptimebot/internal/domain"
)

const (
	defaultDomainURL  = "https://betorspin101.com/pt-br/"
	defaultDomainName = "Primary"
	maxExtraTargets   = 4
)

type Config struct {
	Addr     string // HTTP bind address, e.g. ":8000"
	LogDir   string // empty means stdout only
	LogLevel string

	// Notification channel
	BotToken        string
	ChatID          string // destination and the only authorized command sender
	TelegramAPIURL  string
	SlackWebhookURL string

	// Targets and classification
	Targets         []domain.Target
	TargetsFile     string
	CheckInterval   time.Duration
	ExpectedKeyword string
	MinHTMLLength   int

	// Probe client
	MaxBodyBytes  int64
	ProbeTimeout  time.Duration
	ProbeProxyURL string // probe requests only
	UserAgent     string

	// Keep-alive
	SelfURL           string
	KeepAliveInterval time.Duration

	// /test endpoint
	AdminAPIKeys []string
	TestRPM      int
	TestBurst    int
}

// LoadDotEnv loads variables from the given files (".env" by default) without
// overriding the real environment. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv reads the configuration. The returned Config is always usable; the
// error lists targets that were dropped and other recoverable problems.
func FromEnv() (Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		port := strings.TrimSpace(os.Getenv("PORT"))
		if port == "" {
			port = "8000"
		}
		addr = ":" + port
	}

	selfURL := env("SELF_URL", "")
	if selfURL == "" {
		selfURL = env("RENDER_EXTERNAL_URL", "")
	}

	cfg := Config{
		Addr:     addr,
		LogDir:   env("LOG_DIR", ""),
		LogLevel: env("LOG_LEVEL", "info"),

		BotToken:        env("BOT_TOKEN", ""),
		ChatID:          env("CHAT_ID", ""),
		TelegramAPIURL:  env("TELEGRAM_API_URL", ""),
		SlackWebhookURL: env("SLACK_WEBHOOK_URL", ""),

		TargetsFile:     env("TARGETS_FILE", ""),
		CheckInterval:   seconds("CHECK_INTERVAL_SECONDS", 60),
		ExpectedKeyword: env("EXPECTED_KEYWORD", "Betorspin"),
		MinHTMLLength:   intAtLeast("MIN_HTML_LENGTH", 5000, 0),

		MaxBodyBytes:  int64(intAtLeast("MAX_BODY_BYTES", 5<<20, 1)),
		ProbeTimeout:  seconds("PROBE_TIMEOUT_SECONDS", 10),
		ProbeProxyURL: env("PROBE_PROXY_URL", ""),
		UserAgent:     env("USER_AGENT", "UptimeMonitor/1.0"),

		SelfURL:           selfURL,
		KeepAliveInterval: seconds("KEEPALIVE_INTERVAL_SECONDS", 240),

		AdminAPIKeys: splitCSV(os.Getenv("ADMIN_API_KEYS")),
		TestRPM:      intAtLeast("TEST_RPM", 6, 1),
		TestBurst:    intAtLeast("TEST_BURST", 2, 1),
	}

	candidates := envTargets()
	var errs error
	if cfg.TargetsFile != "" {
		fromFile, err := LoadTargetsFile(cfg.TargetsFile)
		errs = multierr.Append(errs, err)
		candidates = append(candidates, fromFile...)
	}

	targets, err := ValidateTargets(candidates)
	cfg.Targets = targets
	errs = multierr.Append(errs, err)
	if len(targets) == 0 {
		errs = multierr.Append(errs, errors.New("no valid targets configured"))
	}
	return cfg, errs
}

// envTargets reads DOMAIN_URL/DOMAIN_NAME and the numbered _2.._5 variants.
func envTargets() []domain.Target {
	out := []domain.Target{{
		Name: env("DOMAIN_NAME", defaultDomainName),
		URL:  env("DOMAIN_URL", defaultDomainURL),
	}}
	for i := 2; i <= maxExtraTargets+1; i++ {
		u := env(fmt.Sprintf("DOMAIN_URL_%d", i), "")
		if u == "" {
			continue
		}
		out = append(out, domain.Target{
			Name: env(fmt.Sprintf("DOMAIN_NAME_%d", i), hostOf(u)),
			URL:  u,
		})
	}
	return out
}

type targetsFile struct {
	Targets []domain.Target `yaml:"targets"`
}

// LoadTargetsFile parses a YAML document of the form
//
//	targets:
//	  - name: Shop
//	    url: https://shop.example.com/
func LoadTargetsFile(path string) ([]domain.Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	var f targetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse targets file %s: %w", path, err)
	}
	for i := range f.Targets {
		f.Targets[i].Name = strings.TrimSpace(f.Targets[i].Name)
		f.Targets[i].URL = strings.TrimSpace(f.Targets[i].URL)
		if f.Targets[i].Name == "" {
			f.Targets[i].Name = hostOf(f.Targets[i].URL)
		}
	}
	return f.Targets, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("http_protocol", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})
	return v
}

// ValidateTargets drops invalid targets and repeated URLs (first wins),
// keeping the order of the rest.
func ValidateTargets(in []domain.Target) ([]domain.Target, error) {
	out := make([]domain.Target, 0, len(in))
	seen := make(map[string]bool, len(in))
	var errs error
	for _, t := range in {
		if err := validate.Struct(t); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("target %q (%s): %w", t.Name, t.URL, err))
			continue
		}
		if seen[t.URL] {
			errs = multierr.Append(errs, fmt.Errorf("target %q: duplicate url %s", t.Name, t.URL))
			continue
		}
		seen[t.URL] = true
		out = append(out, t)
	}
	return out, errs
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intAtLeast(key string, def, min int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= min {
			return n
		}
	}
	return def
}

func seconds(key string, def int) time.Duration {
	return time.Duration(intAtLeast(key, def, 1)) * time.Second
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}

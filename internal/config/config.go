package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "jobradar"
	ConfigFileName = "config.json"
	DBFileName     = "jobs.db"
)

// Experience is the preferred seniority band. Jobs asking for years
// outside [MinYears-Tolerance, MaxYears+Tolerance] take the penalty.
type Experience struct {
	MinYears  int `json:"min_years"`
	MaxYears  int `json:"max_years"`
	Tolerance int `json:"tolerance"`
	Penalty   int `json:"penalty"`
}

// Scoring holds composite score weights and the recency decay window.
type Scoring struct {
	QualificationWeight float64 `json:"qualification_weight"`
	RecencyWeight       float64 `json:"recency_weight"`
	RecencyWindowDays   int     `json:"recency_window_days"`
}

// AI selects and tunes the analysis provider.
type AI struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Concurrency  int    `json:"concurrency"`
	MaxAttempts  int    `json:"max_attempts"`
	InitialDelay string `json:"initial_delay"`
}

// Config contains scan preferences and pipeline tuning.
type Config struct {
	DatabasePath      string         `json:"database_path"`
	MailboxPath       string         `json:"mailbox_path"`
	ResumeDir         string         `json:"resume_dir"`
	ExcludeKeywords   []string       `json:"exclude_keywords"`
	LocationBonuses   map[string]int `json:"location_bonuses"`
	RemoteBonus       int            `json:"remote_bonus"`
	Experience        Experience     `json:"experience"`
	MinBaselineScore  int            `json:"min_baseline_score"`
	Scoring           Scoring        `json:"scoring"`
	AI                AI             `json:"ai"`
	ParseConcurrency  int            `json:"parse_concurrency"`
	FollowUpThreshold int            `json:"followup_threshold"`
	FeedURLs          []string       `json:"feed_urls"`
	ProxyURLs         []string       `json:"proxy_urls"`
	ProxyBan          string         `json:"proxy_ban"`
	ScanSchedule      string         `json:"scan_schedule"`
	ScanLookbackDays  int            `json:"scan_lookback_days"`
}

func DefaultConfig() Config {
	return Config{
		ExcludeKeywords: []string{},
		LocationBonuses: map[string]int{},
		RemoteBonus:     envInt("JOBRADAR_REMOTE_BONUS", 25),
		Experience: Experience{
			MinYears:  1,
			MaxYears:  10,
			Tolerance: 2,
			Penalty:   30,
		},
		MinBaselineScore: envInt("JOBRADAR_MIN_BASELINE_SCORE", 40),
		Scoring: Scoring{
			QualificationWeight: 0.7,
			RecencyWeight:       0.3,
			RecencyWindowDays:   30,
		},
		AI: AI{
			Provider:     envString("JOBRADAR_AI_PROVIDER", "gemini"),
			Model:        envString("JOBRADAR_AI_MODEL", ""),
			Concurrency:  envInt("JOBRADAR_AI_CONCURRENCY", 3),
			MaxAttempts:  3,
			InitialDelay: "2s",
		},
		ParseConcurrency:  4,
		FollowUpThreshold: 70,
		FeedURLs:          []string{},
		ProxyURLs:         []string{},
		ProxyBan:          "10m",
		ScanSchedule:      envString("JOBRADAR_SCAN_SCHEDULE", "@every 6h"),
		ScanLookbackDays:  7,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func Load() (Config, error) {
	// Provider API keys may live in a local .env.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyFallbacks(cfg)
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return applyFallbacks(cfg)
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return applyFallbacks(cfg)
}

func applyFallbacks(cfg Config) (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		cfg.DatabasePath = envString("JOBRADAR_DB", filepath.Join(dir, DBFileName))
	}
	if strings.TrimSpace(cfg.MailboxPath) == "" {
		cfg.MailboxPath = envString("JOBRADAR_MAILBOX", "")
	}
	if strings.TrimSpace(cfg.ResumeDir) == "" {
		cfg.ResumeDir = envString("JOBRADAR_RESUMES", filepath.Join(dir, "resumes"))
	}
	if cfg.ParseConcurrency <= 0 {
		cfg.ParseConcurrency = 4
	}
	if cfg.AI.Concurrency <= 0 {
		cfg.AI.Concurrency = 3
	}
	if cfg.AI.MaxAttempts <= 0 {
		cfg.AI.MaxAttempts = 3
	}
	return cfg, nil
}

// ProxyBanDuration parses the configured proxy cooldown after a ban.
func (c Config) ProxyBanDuration() time.Duration {
	if d, err := time.ParseDuration(c.ProxyBan); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}

// RetryDelay parses the configured initial backoff delay.
func (a AI) RetryDelay() time.Duration {
	if d, err := time.ParseDuration(a.InitialDelay); err == nil && d > 0 {
		return d
	}
	return 2 * time.Second
}

// Init writes the default config file if it doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	resumeDir := filepath.Join(dir, "resumes")
	if _, err := os.Stat(resumeDir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(resumeDir, 0o755); err != nil {
			return created, err
		}
		created = append(created, resumeDir)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

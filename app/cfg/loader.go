package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Telegram configuration
	BotToken         string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token (required)" required:"true"`
	ModerationChatID int64  `long:"moderation-chat-id" env:"MODERATION_GROUP_ID" description:"Telegram moderation group chat ID (required)" required:"true"`
	ChannelID        string `long:"channel-id" env:"CHANNEL_ID" default:"@techstannews" description:"Public Telegram channel identifier"`

	// Application configuration
	SourcesDir         string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing news source configuration files"`
	KeywordsFile       string `long:"keywords-file" env:"KEYWORDS_FILE" description:"YAML file with the keyword lexicon (built-in defaults when empty)"`
	DBPath             string `long:"db-path" env:"DB_PATH" default:"./data/techstan.db" description:"Path to the sqlite database file"`
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP status server port"`
	CheckInterval      int    `long:"check-interval" env:"CHECK_INTERVAL" default:"30" description:"News check interval in minutes"`
	StartupDelay       int    `long:"startup-delay" env:"STARTUP_DELAY" default:"10" description:"Delay before the first news check in seconds"`
	ReportInterval     int    `long:"report-interval" env:"REPORT_INTERVAL" default:"24" description:"Daily report interval in hours (0 disables reports)"`
	FailureCooldown    int    `long:"failure-cooldown" env:"FAILURE_COOLDOWN" default:"60" description:"Cooldown before retrying a failed cycle in seconds"`
	RepublishOnFailure bool   `long:"republish-on-failure" env:"REPUBLISH_ON_FAILURE" description:"Return an approved item to the moderation queue when publishing fails"`
	UTMCampaign        string `long:"utm-campaign" env:"UTM_CAMPAIGN" default:"techstan_news" description:"utm_campaign value added to published links"`
	UTMContent         string `long:"utm-content" env:"UTM_CONTENT" default:"news_post" description:"utm_content value added to published links"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; TechstanBot/1.0)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Almaty)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BotToken:           raw.BotToken,
		ModerationChatID:   raw.ModerationChatID,
		ChannelID:          raw.ChannelID,
		SourcesDir:         raw.SourcesDir,
		KeywordsFile:       raw.KeywordsFile,
		DBPath:             raw.DBPath,
		Port:               raw.Port,
		CheckInterval:      raw.CheckInterval,
		StartupDelay:       raw.StartupDelay,
		ReportInterval:     raw.ReportInterval,
		FailureCooldown:    raw.FailureCooldown,
		RepublishOnFailure: raw.RepublishOnFailure,
		UTMCampaign:        raw.UTMCampaign,
		UTMContent:         raw.UTMContent,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// SetForTesting replaces the global configuration. Tests only.
func SetForTesting(c *Cfg) {
	globalCfg = c
}

func (c *Cfg) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token is required")
	}
	if c.ModerationChatID == 0 {
		return fmt.Errorf("moderation chat ID is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("channel ID is required")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("check interval must be positive, got %d", c.CheckInterval)
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Cfg {
		return &Cfg{
			BotToken:         "123456:token",
			ModerationChatID: -4877957523,
			ChannelID:        "@techstannews",
			CheckInterval:    30,
		}
	}

	if err := valid().validate(); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Cfg)
	}{
		{"missing bot token", func(c *Cfg) { c.BotToken = "" }},
		{"missing moderation chat", func(c *Cfg) { c.ModerationChatID = 0 }},
		{"missing channel", func(c *Cfg) { c.ChannelID = "" }},
		{"zero check interval", func(c *Cfg) { c.CheckInterval = 0 }},
		{"negative check interval", func(c *Cfg) { c.CheckInterval = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestSetForTesting(t *testing.T) {
	original := globalCfg
	defer func() { globalCfg = original }()

	cfg := &Cfg{Port: "8080"}
	SetForTesting(cfg)

	if Get() != cfg {
		t.Error("Get should return the config set for testing")
	}
}

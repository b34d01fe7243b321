package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ALLOWED_HOSTS", "")
	t.Setenv("CHANNEL_TIMEOUT", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.AllowedHosts != nil {
		t.Fatalf("expected no default allowed hosts, got %v", cfg.AllowedHosts)
	}
	if cfg.ChannelTimeout != 12*time.Second {
		t.Fatalf("expected default channel timeout, got %s", cfg.ChannelTimeout)
	}
	if cfg.ChatBypass {
		t.Fatalf("expected chat bypass disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_HOSTS", "example.com, movers.example ,")
	t.Setenv("SUPERMOVE_SWI_URL", "https://crm.example/hook")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("LEAD_EMAIL_RECIPIENTS", "ops@example.com,sales@example.com")
	t.Setenv("CHANNEL_TIMEOUT", "15s")
	t.Setenv("REQUIRED_CHANNELS", "crm")
	t.Setenv("CHAT_BYPASS", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[0] != "example.com" || cfg.AllowedHosts[1] != "movers.example" {
		t.Fatalf("expected trimmed allowed hosts, got %v", cfg.AllowedHosts)
	}
	if cfg.SupermoveURL != "https://crm.example/hook" {
		t.Fatalf("expected crm url override, got %s", cfg.SupermoveURL)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected lowercased email provider, got %s", cfg.EmailProvider)
	}
	if len(cfg.LeadEmailRecipients) != 2 {
		t.Fatalf("expected two email recipients, got %v", cfg.LeadEmailRecipients)
	}
	if cfg.ChannelTimeout != 15*time.Second {
		t.Fatalf("expected channel timeout override, got %s", cfg.ChannelTimeout)
	}
	if len(cfg.RequiredChannels) != 1 || cfg.RequiredChannels[0] != "crm" {
		t.Fatalf("expected required channels override, got %v", cfg.RequiredChannels)
	}
	if !cfg.ChatBypass {
		t.Fatalf("expected chat bypass enabled")
	}
}

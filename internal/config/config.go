package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Engineer pairs the tracker assignee identity with the name shown in the
// digest.
type Engineer struct {
	Assignee    string `mapstructure:"assignee"`
	DisplayName string `mapstructure:"display_name"`
}

type GitLabConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type Config struct {
	JiraBaseURL string `mapstructure:"jira_base_url"`
	Email       string `mapstructure:"email"`
	APIToken    string `mapstructure:"api_token"`
	ProjectKey  string `mapstructure:"project_key"`
	BoardID     int    `mapstructure:"board_id"`
	RecentDays  int    `mapstructure:"recent_days"`

	StoryPointFields []string `mapstructure:"story_point_fields"`
	BotMarker        string   `mapstructure:"bot_marker"`

	GitLab    GitLabConfig `mapstructure:"gitlab"`
	Engineers []Engineer   `mapstructure:"engineers"`
}

// Load reads the YAML config file. The API tokens may also come from the
// JIRA_API_TOKEN and GITLAB_TOKEN environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("api_token", "")
	v.SetDefault("gitlab.token", "")
	_ = v.BindEnv("api_token", "JIRA_API_TOKEN")
	_ = v.BindEnv("gitlab.token", "GITLAB_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.RecentDays == 0 {
		cfg.RecentDays = 1
	}
	if len(cfg.StoryPointFields) == 0 {
		cfg.StoryPointFields = []string{"customfield_10016", "customfield_10026", "customfield_10002"}
	}
	if cfg.BotMarker == "" {
		cfg.BotMarker = "jira-gitlab"
	}
	if cfg.GitLab.BaseURL == "" {
		cfg.GitLab.BaseURL = "https://gitlab.com"
	}
}

// GitLabHost returns the bare host used to recognize merge request links
// inside comment bodies.
func (c *Config) GitLabHost() string {
	if u, err := url.Parse(c.GitLab.BaseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(c.GitLab.BaseURL, "https://"), "http://"), "/")
}

func (c *Config) Validate() error {
	if c.JiraBaseURL == "" {
		return fmt.Errorf("jira_base_url is required")
	}
	if c.Email == "" || c.APIToken == "" {
		return fmt.Errorf("email and api_token are required (api_token may be set via JIRA_API_TOKEN)")
	}
	if c.ProjectKey == "" {
		return fmt.Errorf("project_key is required")
	}
	if c.BoardID == 0 {
		return fmt.Errorf("board_id is required")
	}
	if len(c.Engineers) == 0 {
		return fmt.Errorf("no engineers configured")
	}
	return nil
}

package fill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/formfill/fingerprint"
	"github.com/hazyhaar/formfill/rules"
)

// Password mode values.
const (
	PasswordGenerated = "generated"
	PasswordFixed     = "fixed"
)

// Options is the immutable per-pass configuration.
type Options struct {
	// Match selects which attributes participate in fingerprints.
	Match fingerprint.Toggles `yaml:"match"`

	// IgnoredFields skips controls whose fingerprint matches any pattern.
	IgnoredFields []string `yaml:"ignored_fields"`

	// ConfirmFields marks name patterns whose controls mirror the previous
	// value of their category instead of generating one.
	ConfirmFields []string `yaml:"confirm_fields"`

	// AgreeTermsFields marks checkbox name patterns that are always checked.
	AgreeTermsFields []string `yaml:"agree_terms_fields"`

	// DefaultMaxLength bounds generated text when the control declares no
	// maxlength of its own.
	DefaultMaxLength int `yaml:"default_max_length"`

	// TriggerEvents fires the post-fill notification sequence.
	TriggerEvents bool `yaml:"trigger_events"`

	// IgnoreFieldsWithContent skips controls that already hold a value.
	IgnoreFieldsWithContent bool `yaml:"ignore_fields_with_content"`

	// IgnoreHiddenFields skips controls that are not visible.
	IgnoreHiddenFields bool `yaml:"ignore_hidden_fields"`

	Password PasswordOptions `yaml:"password"`
}

// PasswordOptions controls password synthesis.
type PasswordOptions struct {
	// Mode is "generated" or "fixed".
	Mode string `yaml:"mode"`

	// Fixed is the password used in fixed mode.
	Fixed string `yaml:"fixed"`

	// LogGenerated surfaces generated passwords at debug level. Off by
	// default: a diagnostic affordance, not a security boundary.
	LogGenerated bool `yaml:"log_generated"`
}

// DefaultOptions returns the stock option set: every fingerprint attribute
// on, events fired, hidden fields skipped.
func DefaultOptions() *Options {
	o := &Options{TriggerEvents: true, IgnoreHiddenFields: true}
	o.defaults()
	return o
}

func (o *Options) defaults() {
	zero := fingerprint.Toggles{}
	if o.Match == zero {
		o.Match = fingerprint.AllToggles()
	}
	if o.ConfirmFields == nil {
		o.ConfirmFields = []string{"confirm", "retype", "repeat", "verify", "verification"}
	}
	if o.AgreeTermsFields == nil {
		o.AgreeTermsFields = []string{"agree", "terms", "accept", "consent", "gdpr"}
	}
	if o.DefaultMaxLength <= 0 {
		o.DefaultMaxLength = 100
	}
	if o.Password.Mode == "" {
		o.Password.Mode = PasswordGenerated
	}
}

// Config bundles the options and the two configured rule tiers, as read
// from a YAML file or loaded from the rule store.
type Config struct {
	Options      Options      `yaml:"options"`
	ProfileRules []rules.Rule `yaml:"profile_rules"`
	GlobalRules  []rules.Rule `yaml:"global_rules"`

	// RulesDB optionally points at a rule store; stored tiers are appended
	// after the inline ones.
	RulesDB string `yaml:"rules_db"`
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fill: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("fill: parse config: %w", err)
	}
	cfg.Options.defaults()
	return cfg, nil
}

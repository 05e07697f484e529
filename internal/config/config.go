package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/kaelwright/readable/internal/readability"
)

// OutputFormat selects how a converted document is rendered on the CLI.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

type Config struct {
	//===============
	// Engine switches (spec §3's four booleans)
	//===============
	// stripUnlikelys removes subtrees whose class/id matches the unlikely-
	// candidate pattern during the capture stage.
	stripUnlikelys bool
	// weightClasses factors class/id scoring into candidate selection and
	// the conditional-acceptability check.
	weightClasses bool
	// cleanConditionally removes subtrees that fail the conditional-
	// acceptability predicate during the bubble stage.
	cleanConditionally bool
	// cleanAttributes strips the style attribute. Rewriting href/src is
	// governed by baseURL alone.
	cleanAttributes bool
	// baseURL resolves relative href/src values; nil leaves them untouched.
	baseURL *url.URL

	//===============
	// Fetch
	//===============
	// timeout is the maximum time of a single fetch request.
	timeout time.Duration
	// userAgent is sent in the request header.
	userAgent string
	// maxAttempt is the maximum number of fetch attempts, including the first.
	maxAttempt int
	// backoffInitialDuration is the delay before the first retry.
	backoffInitialDuration time.Duration
	// backoffMultiplier scales the delay between successive retries.
	backoffMultiplier float64
	// backoffMaxDuration caps the backoff delay.
	backoffMaxDuration time.Duration
	// randomSeed controls the jitter applied to backoff delays.
	randomSeed int64

	//===============
	// Output
	//===============
	// outputDir is the root directory extracted documents are written to.
	outputDir string
	// outputFormat selects the rendering mode.
	outputFormat OutputFormat
}

type configDTO struct {
	StripUnlikelys     bool     `json:"stripUnlikelys,omitempty"`
	WeightClasses      bool     `json:"weightClasses,omitempty"`
	CleanConditionally bool     `json:"cleanConditionally,omitempty"`
	CleanAttributes    bool     `json:"cleanAttributes,omitempty"`
	BaseURL            *url.URL `json:"baseUrl,omitempty"`

	Timeout                time.Duration `json:"timeout,omitempty"`
	UserAgent              string        `json:"userAgent,omitempty"`
	MaxAttempt             int           `json:"maxAttempt,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty"`

	OutputDir    string       `json:"outputDir,omitempty"`
	OutputFormat OutputFormat `json:"outputFormat,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	// The four switches default to true; JSON can't distinguish "false"
	// from "absent" on a plain bool field, so a config file can only ever
	// turn a switch off here, never re-enable one. The CLI ignores its
	// switch flags when a config file is given.
	if !dto.StripUnlikelys {
		cfg.stripUnlikelys = dto.StripUnlikelys
	}
	if !dto.WeightClasses {
		cfg.weightClasses = dto.WeightClasses
	}
	if !dto.CleanConditionally {
		cfg.cleanConditionally = dto.CleanConditionally
	}
	if !dto.CleanAttributes {
		cfg.cleanAttributes = dto.CleanAttributes
	}
	if dto.BaseURL != nil {
		cfg.baseURL = dto.BaseURL
	}

	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = dto.BackoffInitialDuration
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = dto.BackoffMaxDuration
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}

	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.OutputFormat != "" {
		cfg.outputFormat = dto.OutputFormat
	}

	return cfg.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	if err := json.Unmarshal(configContent, &cfgDTO); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with every engine switch on, no base
// URL, and the ambient fetch/output defaults.
func WithDefault() *Config {
	defaultConfig := Config{
		stripUnlikelys:     true,
		weightClasses:      true,
		cleanConditionally: true,
		cleanAttributes:    true,
		baseURL:            nil,

		timeout:                10 * time.Second,
		userAgent:              "readable/1.0",
		maxAttempt:             3,
		backoffInitialDuration: 100 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		randomSeed:             time.Now().UnixNano(),

		outputDir:    "output",
		outputFormat: FormatText,
	}
	return &defaultConfig
}

func (c *Config) WithStripUnlikelys(enabled bool) *Config {
	c.stripUnlikelys = enabled
	return c
}

func (c *Config) WithWeightClasses(enabled bool) *Config {
	c.weightClasses = enabled
	return c
}

func (c *Config) WithCleanConditionally(enabled bool) *Config {
	c.cleanConditionally = enabled
	return c
}

func (c *Config) WithCleanAttributes(enabled bool) *Config {
	c.cleanAttributes = enabled
	return c
}

func (c *Config) WithBaseURL(baseURL *url.URL) *Config {
	c.baseURL = baseURL
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithOutputFormat(format OutputFormat) *Config {
	c.outputFormat = format
	return c
}

var validOutputFormats = map[OutputFormat]bool{
	FormatText: true, FormatHTML: true, FormatMarkdown: true, FormatJSON: true,
}

func (c *Config) Build() (Config, error) {
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	}
	if !validOutputFormats[c.outputFormat] {
		return Config{}, fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.outputFormat)
	}
	return *c, nil
}

func (c Config) StripUnlikelys() bool {
	return c.stripUnlikelys
}

func (c Config) WeightClasses() bool {
	return c.weightClasses
}

func (c Config) CleanConditionally() bool {
	return c.cleanConditionally
}

func (c Config) CleanAttributes() bool {
	return c.cleanAttributes
}

func (c Config) BaseURL() *url.URL {
	return c.baseURL
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) OutputFormat() OutputFormat {
	return c.outputFormat
}

// ReadabilityConfig projects the engine-relevant fields into the shape
// internal/readability.NewEngine expects.
func (c Config) ReadabilityConfig() readability.Config {
	return readability.Config{
		StripUnlikelys:     c.stripUnlikelys,
		WeightClasses:      c.weightClasses,
		CleanConditionally: c.cleanConditionally,
		CleanAttributes:    c.cleanAttributes,
		BaseURL:            c.baseURL,
	}
}

// Package config loads, validates, repairs and saves simtex configuration
// files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/assets"
	"github.com/alnah/go-simtex/internal/fileutil"
	"github.com/alnah/go-simtex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrMissingField    = errors.New("missing required config field")
	ErrInvalidConfig   = errors.New("invalid config value")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// AppName names the per-user configuration directory.
const AppName = "simtex"

// DefaultName is the config name used when none is given.
const DefaultName = "simtex"

// Field length limits.
const (
	MaxTokenLength    = 20   // literal rule token
	MaxPatternLength  = 500  // regular expression rule
	MaxNameLength     = 200  // author, class, font names
	MaxDateLength     = 60   // "auto:[Week of] MMMM D, YYYY"
	MaxPathLength     = 4096 // folders, listings and asset paths
	MaxFileNameLength = 255  // single path element
	MaxCommandLength  = 1024 // compiler and viewer commands
	MaxURLLength      = 2048 // remote config URL
	MaxPackageLength  = 200  // one \usepackage argument
)

// Config holds all configuration for document generation.
type Config struct {
	Rules    simtex.Rules    `yaml:"rules"`
	Document simtex.Document `yaml:"document"`
	Output   OutputConfig    `yaml:"output"`
	Build    BuildConfig     `yaml:"build"`
	Code     CodeConfig      `yaml:"code"`
	Assets   AssetsConfig    `yaml:"assets"`
	Remote   RemoteConfig    `yaml:"remote"`
}

// OutputConfig defines where generated files go.
type OutputConfig struct {
	Folder     string `yaml:"folder"`   // Empty = next to the input
	FileName   string `yaml:"fileName"` // Empty = input base name + .tex
	CopyAssets bool   `yaml:"copyAssets"`
}

// BuildConfig defines LaTeX compilation options.
type BuildConfig struct {
	Compiler string   `yaml:"compiler"` // Empty = pdflatex
	Args     []string `yaml:"args"`
	Viewer   string   `yaml:"viewer"`  // Empty = platform opener
	Timeout  string   `yaml:"timeout"` // Go duration, e.g. "2m"
}

// CodeConfig defines code block options.
type CodeConfig struct {
	NormalizeLanguage bool `yaml:"normalizeLanguage"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RemoteConfig defines where a fresh default configuration is downloaded from.
type RemoteConfig struct {
	URL            string `yaml:"url"` // {branch} is replaced by the branch name
	Branch         string `yaml:"branch"`
	FallbackBranch string `yaml:"fallbackBranch"`
	Attempts       int    `yaml:"attempts"`
}

// Doc returns the document settings with the output section applied.
func (c *Config) Doc() simtex.Document {
	doc := c.Document
	doc.OutputFolder = c.Output.Folder
	doc.FileName = c.Output.FileName
	return doc
}

// BuildTimeout returns the parsed build timeout, or the default when unset.
func (c *Config) BuildTimeout() (time.Duration, error) {
	if c.Build.Timeout == "" {
		return simtex.DefaultBuildTimeout, nil
	}
	d, err := time.ParseDuration(c.Build.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: build.timeout: %v", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: build.timeout must be positive, got %s", ErrInvalidConfig, c.Build.Timeout)
	}
	return d, nil
}

// MissingFields returns the dotted paths of required fields that are empty.
func (c *Config) MissingFields() []string {
	r, d := c.Rules, c.Document
	required := []struct {
		path  string
		empty bool
	}{
		{"rules.section", r.Section == ""},
		{"rules.subsection", r.Subsection == ""},
		{"rules.subsubsection", r.Subsubsection == ""},
		{"rules.paragraph", r.Paragraph == ""},
		{"rules.subparagraph", r.Subparagraph == ""},
		{"rules.code", r.Code == ""},
		{"rules.paragraphMath", r.ParagraphMath == ""},
		{"rules.inlineCode", r.InlineCode == ""},
		{"rules.image", r.Image == ""},
		{"rules.links", r.Links == ""},
		{"document.class", d.Class == ""},
		{"document.font", d.Font == ""},
		{"document.fontSize", d.FontSize == 0},
		{"document.paperSize", d.PaperSize == ""},
		{"document.codeFont", d.CodeFont == ""},
		{"document.codeFontScale", d.CodeFontScale == 0},
		{"document.sectionSizes", d.SectionSizes == (simtex.SectionSizes{})},
	}

	var missing []string
	for _, f := range required {
		if f.empty {
			missing = append(missing, f.path)
		}
	}
	return missing
}

// Validate checks required fields, field lengths, the rule table and the
// document settings. Called automatically by LoadConfig, but available for
// callers who construct Config manually.
func (c *Config) Validate() error {
	if missing := c.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	if err := c.validateLengths(); err != nil {
		return err
	}

	if err := c.Rules.Validate(); err != nil {
		return err
	}
	doc := c.Doc()
	if err := doc.Validate(); err != nil {
		return err
	}

	if _, err := c.BuildTimeout(); err != nil {
		return err
	}
	if c.Remote.Attempts < 0 {
		return fmt.Errorf("%w: remote.attempts cannot be negative, got %d", ErrInvalidConfig, c.Remote.Attempts)
	}
	return nil
}

func (c *Config) validateLengths() error {
	r := c.Rules
	tokens := map[string]string{
		"rules.section":       r.Section,
		"rules.subsection":    r.Subsection,
		"rules.subsubsection": r.Subsubsection,
		"rules.paragraph":     r.Paragraph,
		"rules.subparagraph":  r.Subparagraph,
		"rules.code":          r.Code,
		"rules.paragraphMath": r.ParagraphMath,
		"rules.inlineMath":    r.InlineMath,
		"rules.bold":          r.Bold,
		"rules.italics":       r.Italics,
		"rules.emph":          r.Emph,
		"rules.strike":        r.Strike,
		"rules.superscript":   r.Superscript,
		"rules.subscript":     r.Subscript,
		"rules.underline":     r.Underline,
		"rules.quote":         r.Quote,
		"rules.blockQuote":    r.BlockQuote,
	}
	for name, v := range tokens {
		if err := validateFieldLength(name, v, MaxTokenLength); err != nil {
			return err
		}
	}

	d := c.Document
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"rules.inlineCode", r.InlineCode, MaxPatternLength},
		{"rules.image", r.Image, MaxPatternLength},
		{"rules.links", r.Links, MaxPatternLength},
		{"document.class", d.Class, MaxNameLength},
		{"document.font", d.Font, MaxNameLength},
		{"document.paperSize", d.PaperSize, MaxNameLength},
		{"document.codeFont", d.CodeFont, MaxNameLength},
		{"document.linkColor", d.LinkColor, MaxNameLength},
		{"document.author", d.Author, MaxNameLength},
		{"document.date", d.Date, MaxDateLength},
		{"document.listings", d.Listings, MaxPathLength},
		{"output.folder", c.Output.Folder, MaxPathLength},
		{"output.fileName", c.Output.FileName, MaxFileNameLength},
		{"build.compiler", c.Build.Compiler, MaxCommandLength},
		{"build.viewer", c.Build.Viewer, MaxCommandLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"remote.url", c.Remote.URL, MaxURLLength},
	}
	for _, f := range checks {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for i, p := range d.Packages {
		if err := validateFieldLength(fmt.Sprintf("document.packages[%d]", i), p, MaxPackageLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration shipped with simtex.
// Panics if the embedded file does not decode (build defect).
func DefaultConfig() *Config {
	cfg, err := Parse(assets.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("config: embedded default config is invalid: %v", err))
	}
	return cfg
}

// Parse decodes and validates configuration data. Unknown keys are errors.
// Empty data decodes to an empty configuration, which fails with
// ErrMissingField.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	path, err := Locate(nameOrPath)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Locate returns the path of the configuration named by nameOrPath.
// Names are searched as <name>.yaml and <name>.yml in the current directory,
// then in the user config directory (~/.config/simtex on Linux).
func Locate(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}

	if fileutil.IsFilePath(nameOrPath) {
		if !fileutil.FileExists(nameOrPath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, nameOrPath)
		}
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if dir, err := Dir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError lists the locations searched for a named configuration.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns where the default configuration lives.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultName+".yaml"), nil
}

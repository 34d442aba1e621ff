package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/ariproxy/internal/util"
)

// envToken matches an escaped dollar or a ${VAR} / ${VAR:-default}
// reference.
var envToken = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "ARIPROXY_CONFIG"

// Loader handles configuration loading from files and readers.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// LoadConfig loads configuration from a file path.
func LoadConfig(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	return NewLoader().LoadFromReader(r)
}

// Load loads configuration from a file path.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return l.parse(data)
}

// LoadFromReader loads configuration from an io.Reader.
func (l *Loader) LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return l.parse(data)
}

// parse decodes YAML over DefaultConfig, rejecting unknown keys, and
// validates the result. An empty document yields the defaults.
func (l *Loader) parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(strings.NewReader(l.expand(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, util.NewConfigErrorWithCause("", "failed to parse YAML", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expand substitutes environment references. A variable that is set,
// even to "", wins over the default; "$$" yields "$".
func (l *Loader) expand(content string) string {
	return envToken.ReplaceAllStringFunc(content, func(token string) string {
		if token == "$$" {
			return "$"
		}
		m := envToken.FindStringSubmatch(token)
		if value, ok := l.lookupEnv(m[1]); ok {
			return value
		}
		return m[2]
	})
}

// ResolveConfigPath resolves a configuration file path. An empty path
// falls back to $ARIPROXY_CONFIG, and "" is returned when neither is set.
// Relative paths are also looked up in ./configs and /etc/ariproxy.
func ResolveConfigPath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return "", nil
	}

	candidates := []string{path}
	if !filepath.IsAbs(path) {
		candidates = append(candidates,
			filepath.Join("configs", path),
			filepath.Join(string(filepath.Separator), "etc", "ariproxy", path),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("config file not found: %s", path)
}

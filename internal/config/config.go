package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"acetics-cli/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	AppDirName = "acetics-cli"
	FileName   = "config.toml"
	EnvPrefix  = "ACETICS"
)

//go:embed config.example.toml
var exampleConfig []byte

// ExampleConfig returns the bundled configuration written on first run.
func ExampleConfig() []byte {
	return append([]byte(nil), exampleConfig...)
}

// Config is read once at startup and treated as read-only afterwards.
type Config struct {
	Endpoint     string        `mapstructure:"endpoint" toml:"endpoint"`
	Token        string        `mapstructure:"token" toml:"token"`
	DefaultIndex int           `mapstructure:"default_staff_index" toml:"default_staff_index"`
	Roster       []model.Staff `mapstructure:"staffs" toml:"staffs"`

	path string
}

// BootstrapError reports that no configuration existed and an example was written.
type BootstrapError struct {
	Path string
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("no configuration found; an example was written to %s\nedit endpoint, token and staffs in that file, then run acetics again", e.Path)
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests out of the real config dir).
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file merged with ACETICS_* environment
// variables (environment wins). A missing file is bootstrapped from the
// bundled example and reported as *BootstrapError.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if _, err := writeExample(path); err != nil {
				return nil, fmt.Errorf("write example config: %w", err)
			}
			return nil, &BootstrapError{Path: path}
		}
		return nil, err
	}

	// Optional .env next to the config file; never overrides the real environment.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"endpoint", "token", "default_staff_index", "staffs"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		rosterFromJSON,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path
	return &cfg, nil
}

// rosterFromJSON decodes ACETICS_STAFFS, a JSON array such as
// [{"id":7,"name":"Accueil"}], into the roster.
func rosterFromJSON(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]model.Staff(nil)) {
		return data, nil
	}
	var roster []model.Staff
	if err := json.Unmarshal([]byte(data.(string)), &roster); err != nil {
		return nil, fmt.Errorf("%s_STAFFS: %w", EnvPrefix, err)
	}
	return roster, nil
}

// Bootstrap writes the bundled example if no configuration exists yet.
func Bootstrap() (path string, created bool, err error) {
	path, err = Path()
	if err != nil {
		return "", false, err
	}
	created, err = writeExample(path)
	return path, created, err
}

func writeExample(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	if err := atomicWriteFile(dir, FileName+".*.tmp", path, exampleConfig, 0o600); err != nil {
		return false, err
	}
	return true, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// FilePath is the file this configuration was loaded from.
func (c *Config) FilePath() string { return c.path }

func (c *Config) Staffs() []model.Staff {
	return append([]model.Staff(nil), c.Roster...)
}

func (c *Config) DefaultStaffIndex() int { return c.DefaultIndex }

// DefaultStaff resolves the configured index. ok is false when the index is
// outside the roster.
func (c *Config) DefaultStaff() (model.Staff, bool) {
	if c.DefaultIndex < 0 || c.DefaultIndex >= len(c.Roster) {
		return model.Staff{}, false
	}
	return c.Roster[c.DefaultIndex], true
}

// IsDefaultStaff compares by id, not roster position.
func (c *Config) IsDefaultStaff(s model.Staff) bool {
	def, ok := c.DefaultStaff()
	return ok && model.SameStaff(def, s)
}

// StaffIndex returns the roster position of the staff with id, or -1.
func (c *Config) StaffIndex(id int) int {
	for i, s := range c.Roster {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c *Config) Validate() error {
	var errs []error
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		errs = append(errs, errors.New("endpoint is empty"))
	} else if u, err := url.Parse(endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("endpoint %q is not an absolute http(s) URL", endpoint))
	}
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, errors.New("token is empty"))
	}
	if len(c.Roster) == 0 {
		errs = append(errs, errors.New("no staffs configured"))
	}
	seen := map[int]bool{}
	for _, s := range c.Roster {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate staff id %d", s.ID))
		}
		seen[s.ID] = true
	}
	if err := errors.Join(errs...); err != nil {
		if c.path != "" {
			return fmt.Errorf("invalid configuration %s: %w", c.path, err)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Encode writes the effective configuration as TOML. The token is redacted
// unless showToken is set.
func (c *Config) Encode(w io.Writer, showToken bool) error {
	out := *c
	if !showToken && out.Token != "" {
		out.Token = "<redacted>"
	}
	return toml.NewEncoder(w).Encode(out)
}

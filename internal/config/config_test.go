package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"acetics-cli/internal/model"

	"github.com/spf13/viper"
)

func setConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "acetics-cli")
	t.Setenv("ACETICS_CONFIG_DIR", dir)
	t.Setenv("ACETICS_ENDPOINT", "")
	t.Setenv("ACETICS_TOKEN", "")
	t.Setenv("ACETICS_DEFAULT_STAFF_INDEX", "")
	t.Setenv("ACETICS_STAFFS", "")
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const sampleConfig = `
endpoint = "https://tasks.example.test/api"
token = "file-token"
default_staff_index = 1

[[staffs]]
id = 10
name = "Andreas"

[[staffs]]
id = 20
name = "Bea"

[[staffs]]
id = 30
name = "Cleo"
`

func TestLoad_MissingFile_BootstrapsExampleThenLoads(t *testing.T) {
	dir := setConfigDir(t)

	_, err := Load()
	var bootErr *BootstrapError
	if !errors.As(err, &bootErr) {
		t.Fatalf("expected *BootstrapError, got %v", err)
	}
	wantPath := filepath.Join(dir, FileName)
	if bootErr.Path != wantPath {
		t.Fatalf("bootstrap path: got %q want %q", bootErr.Path, wantPath)
	}
	if !strings.Contains(err.Error(), wantPath) {
		t.Fatalf("expected message to contain the path; got %q", err.Error())
	}
	b, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("expected example config to be written: %v", err)
	}
	if !bytes.Equal(b, ExampleConfig()) {
		t.Fatalf("written config differs from the bundled example")
	}

	// Second run against the unedited file loads successfully.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("bundled example should validate: %v", err)
	}
	if len(cfg.Staffs()) == 0 {
		t.Fatalf("expected example roster to be non-empty")
	}
	if cfg.FilePath() != wantPath {
		t.Fatalf("FilePath: got %q", cfg.FilePath())
	}
}

func TestLoad_ParsesRosterAndDefault(t *testing.T) {
	dir := setConfigDir(t)
	writeConfig(t, dir, sampleConfig)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "https://tasks.example.test/api" || cfg.Token != "file-token" {
		t.Fatalf("unexpected endpoint/token: %+v", cfg)
	}
	staffs := cfg.Staffs()
	if len(staffs) != 3 || staffs[2] != (model.Staff{ID: 30, Name: "Cleo"}) {
		t.Fatalf("unexpected roster: %+v", staffs)
	}
	def, ok := cfg.DefaultStaff()
	if !ok || def.ID != 20 {
		t.Fatalf("DefaultStaff: (%+v,%v)", def, ok)
	}
	if cfg.DefaultStaffIndex() != 1 {
		t.Fatalf("DefaultStaffIndex: %d", cfg.DefaultStaffIndex())
	}
	if got := cfg.StaffIndex(30); got != 2 {
		t.Fatalf("StaffIndex(30)=%d", got)
	}
	if got := cfg.StaffIndex(99); got != -1 {
		t.Fatalf("StaffIndex(99)=%d", got)
	}
}

func TestIsDefaultStaff_ComparesByID(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		DefaultIndex: 0,
		Roster:       []model.Staff{{ID: 7, Name: "Accueil"}, {ID: 8, Name: "Tech"}},
	}
	if !cfg.IsDefaultStaff(model.Staff{ID: 7, Name: "renamed"}) {
		t.Fatalf("expected id match to be the default staff")
	}
	if cfg.IsDefaultStaff(model.Staff{ID: 8, Name: "Accueil"}) {
		t.Fatalf("name match with a different id must not be the default staff")
	}

	// Reordering the roster moves the default to whoever sits at the index,
	// and a staff is recognised by id wherever it appears.
	reordered := &Config{DefaultIndex: 0, Roster: []model.Staff{{ID: 8, Name: "Tech"}, {ID: 7, Name: "Accueil"}}}
	if reordered.IsDefaultStaff(model.Staff{ID: 7}) || !reordered.IsDefaultStaff(model.Staff{ID: 8}) {
		t.Fatalf("unexpected default after reorder")
	}

	outOfRange := &Config{DefaultIndex: 5, Roster: cfg.Roster}
	if _, ok := outOfRange.DefaultStaff(); ok {
		t.Fatalf("expected out-of-range index to report ok=false")
	}
	if outOfRange.IsDefaultStaff(model.Staff{ID: 7}) {
		t.Fatalf("no staff is default when the index is out of range")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := setConfigDir(t)
	writeConfig(t, dir, sampleConfig)

	t.Setenv("ACETICS_TOKEN", "env-token")
	t.Setenv("ACETICS_ENDPOINT", "https://override.example.test")
	t.Setenv("ACETICS_DEFAULT_STAFF_INDEX", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Fatalf("token: got %q", cfg.Token)
	}
	if cfg.Endpoint != "https://override.example.test" {
		t.Fatalf("endpoint: got %q", cfg.Endpoint)
	}
	if cfg.DefaultStaffIndex() != 2 {
		t.Fatalf("default index: got %d", cfg.DefaultStaffIndex())
	}
}

func TestLoad_StaffsFromEnvironment(t *testing.T) {
	dir := setConfigDir(t)
	writeConfig(t, dir, sampleConfig)

	t.Setenv("ACETICS_STAFFS", `[{"id":21,"name":"Nuit"},{"id":22,"name":"Astreinte"}]`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []model.Staff{{ID: 21, Name: "Nuit"}, {ID: 22, Name: "Astreinte"}}
	if got := cfg.Staffs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("staffs: got %v, want %v", got, want)
	}

	t.Setenv("ACETICS_STAFFS", "not json")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ACETICS_STAFFS") {
		t.Fatalf("expected an ACETICS_STAFFS error, got %v", err)
	}
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	dir := setConfigDir(t)
	writeConfig(t, dir, sampleConfig)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ACETICS_DOTENV_MARKER=1\nACETICS_ENDPOINT=https://dotenv.example.test\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// The real environment already sets ACETICS_ENDPOINT (to empty) in setConfigDir,
	// so only the marker is taken from .env.
	t.Cleanup(func() { _ = os.Unsetenv("ACETICS_DOTENV_MARKER") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if os.Getenv("ACETICS_DOTENV_MARKER") != "1" {
		t.Fatalf("expected .env variable to be loaded")
	}
	if cfg.Endpoint != "https://tasks.example.test/api" {
		t.Fatalf(".env must not override variables already present; endpoint=%q", cfg.Endpoint)
	}
}

func TestLoad_MalformedFile_PropagatesParseError(t *testing.T) {
	dir := setConfigDir(t)
	path := writeConfig(t, dir, "endpoint = \"unterminated\n[[staffs]\n")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var bootErr *BootstrapError
	if errors.As(err, &bootErr) {
		t.Fatalf("malformed file must not be reported as bootstrap: %v", err)
	}
	var parseErr viper.ConfigParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected viper.ConfigParseError in chain, got %T: %v", err, err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "unterminated") {
		t.Fatalf("existing file must not be overwritten")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := Config{Endpoint: "https://x.test", Token: "t", Roster: []model.Staff{{ID: 1, Name: "A"}}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "empty endpoint", cfg: Config{Token: "t", Roster: good.Roster}, want: "endpoint is empty"},
		{name: "relative endpoint", cfg: Config{Endpoint: "tasks.example", Token: "t", Roster: good.Roster}, want: "not an absolute http(s) URL"},
		{name: "empty token", cfg: Config{Endpoint: "https://x.test", Roster: good.Roster}, want: "token is empty"},
		{name: "no staffs", cfg: Config{Endpoint: "https://x.test", Token: "t"}, want: "no staffs configured"},
		{name: "duplicate ids", cfg: Config{Endpoint: "https://x.test", Token: "t", Roster: []model.Staff{{ID: 1}, {ID: 1}}}, want: "duplicate staff id 1"},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestEncode_RedactsToken(t *testing.T) {
	t.Parallel()

	cfg := &Config{Endpoint: "https://x.test", Token: "secret", DefaultIndex: 1, Roster: []model.Staff{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "secret") || !strings.Contains(out, "<redacted>") {
		t.Fatalf("expected redacted token; got:\n%s", out)
	}
	if !strings.Contains(out, "[[staffs]]") || !strings.Contains(out, "default_staff_index = 1") {
		t.Fatalf("expected roster tables and index; got:\n%s", out)
	}
	if cfg.Token != "secret" {
		t.Fatalf("Encode must not mutate the config")
	}

	buf.Reset()
	if err := cfg.Encode(&buf, true); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `token = "secret"`) {
		t.Fatalf("expected token when showToken=true; got:\n%s", buf.String())
	}
}

func TestBootstrap_DoesNotOverwrite(t *testing.T) {
	dir := setConfigDir(t)
	path := writeConfig(t, dir, sampleConfig)

	got, created, err := Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if created || got != path {
		t.Fatalf("expected existing file to be kept; created=%v path=%q", created, got)
	}
	b, _ := os.ReadFile(path)
	if string(b) != sampleConfig {
		t.Fatalf("existing config was modified")
	}
}

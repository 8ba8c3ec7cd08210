package config

import (
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "max_body_bytes": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nlog_level\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestFromEnv_Overlays(t *testing.T) {
	t.Setenv("THINGSD_ADDR", ":9000")
	t.Setenv("THINGSD_MAX_BODY_BYTES", "512")
	t.Setenv("THINGSD_CORS_ENABLED", "true")
	t.Setenv("THINGSD_CORS_ORIGINS", " http://a , ,http://b")
	cfg, err := FromEnv(EnvPrefix, Defaults())
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MaxBodyBytes != 512 || !cfg.CORSEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a" || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("untouched fields must keep base values: %+v", cfg)
	}
}

func TestFromEnv_BadNumber(t *testing.T) {
	t.Setenv("THINGSD_MAX_BODY_BYTES", "lots")
	if _, err := FromEnv(EnvPrefix, Defaults()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	bad := []Config{
		Defaults().Merge(Config{LogLevel: "loud"}),
		Defaults().Merge(Config{LogFormat: "xml"}),
		Defaults().Merge(Config{MaxBodyBytes: -1}),
		Defaults().Merge(Config{CORSEnabled: true}),
		func() Config { c := Defaults(); c.ShutdownTimeoutSeconds = 0; return c }(),
		{},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}

func TestFromEnv_ZeroShutdownTimeoutIsInvalid(t *testing.T) {
	t.Setenv("THINGSD_SHUTDOWN_TIMEOUT_SECONDS", "0")
	cfg, err := FromEnv(EnvPrefix, Defaults())
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ShutdownTimeoutSeconds != 0 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero shutdown timeout to be rejected")
	}
}

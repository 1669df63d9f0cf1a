package config

import (
	"testing"
	"time"

	kit "gamedex/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	api := root.Prefix("API_")
	if got := api.key("PORT"); got != "API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "API_PORT")
	}
	// nested prefix
	apiLog := api.Prefix("LOG_")
	if got := apiLog.key("LEVEL"); got != "API_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "API_LOG_LEVEL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  gamedex ")
	if got := c.MustString("NAME"); got != "gamedex" {
		t.Fatalf("MustString = %q, want %q", got, "gamedex")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_WORKERS", "  8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d, want %d", got, 8)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("P_")
	t.Setenv("P_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q, want %q", got, ":4000")
	}
	kit.MustPanic(t, func() { _ = c.MustPort("MISSING") })
	t.Setenv("P_BAD", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("BAD") })
}

func TestMayGetters(t *testing.T) {
	c := New().Prefix("M_")

	if got := c.MayString("NOPE", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("M_S", "v")
	if got := c.MayString("S", "fallback"); got != "v" {
		t.Fatalf("MayString = %q", got)
	}

	if got := c.MayInt("NOPE", 7); got != 7 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("M_I", "12")
	if got := c.MayInt("I", 7); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}

	if got := c.MayFloat64("NOPE", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 default = %v", got)
	}
	t.Setenv("M_F", "0.25")
	if got := c.MayFloat64("F", 0.5); got != 0.25 {
		t.Fatalf("MayFloat64 = %v", got)
	}

	if got := c.MayBool("NOPE", true); !got {
		t.Fatalf("MayBool default = %v", got)
	}
	t.Setenv("M_B", "false")
	if got := c.MayBool("B", true); got {
		t.Fatalf("MayBool = %v", got)
	}

	if got := c.MayDuration("NOPE", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration default = %v", got)
	}
	t.Setenv("M_D", "3s")
	if got := c.MayDuration("D", time.Minute); got != 3*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
}

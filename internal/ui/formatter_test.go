package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"classenum/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestFormatter_PrintClassList(t *testing.T) {
	classes := []*domain.ClassHandle{
		{Name: "com.example.A", MajorVersion: 61, SuperName: "java.lang.Object"},
		{Name: "com.example.Api", MajorVersion: 52, AccessFlags: domain.AccInterface | domain.AccAbstract},
	}

	t.Run("names only", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterWriter(&buf).PrintClassList("com.example", classes, false)
		out := buf.String()
		if !strings.HasPrefix(out, "com.example.A\ncom.example.Api\n") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "Found 2 class(es) in com.example") {
			t.Errorf("missing summary:\n%s", out)
		}
	})

	t.Run("details", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterWriter(&buf).PrintClassList("com.example", classes, true)
		out := buf.String()
		for _, want := range []string{"NAME", "interface", "17", "8", "java.lang.Object"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("empty package", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatterWriter(&buf).PrintClassList("com.empty", nil, false)
		if !strings.Contains(buf.String(), "No classes found in com.empty") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}

func TestFormatter_PrintPackages(t *testing.T) {
	var buf bytes.Buffer
	NewFormatterWriter(&buf).PrintPackages([]string{"com.example", "com.example.api", "org.util"})
	out := buf.String()

	expected := "com\n  |_ example\n     |_ api\norg\n  |_ util\n"
	if !strings.HasPrefix(out, expected) {
		t.Errorf("expected tree:\n%s\ngot:\n%s", expected, out)
	}
	if !strings.Contains(out, "Found 3 package(s)") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestFormatter_PrintIndexStats(t *testing.T) {
	results := []domain.PackageResult{
		{Package: "com.ok", Classes: []*domain.ClassHandle{{Name: "com.ok.A"}}},
		{Package: "com.bad", Err: errors.New("can't load class com.bad.X")},
	}
	index := domain.NewIndex(results, 2*time.Second, 4, nil)

	var buf bytes.Buffer
	NewFormatterWriter(&buf).PrintIndexStats(index)
	out := buf.String()

	for _, want := range []string{"Total Packages", "2.00s", "1 package(s) failed", "bad", "can't load class com.bad.X"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatClassDetails(t *testing.T) {
	out := formatClassDetails(&domain.ClassHandle{
		Name:         "com.example.Service",
		MajorVersion: 55,
		AccessFlags:  domain.AccPublic,
		SuperName:    "com.example.Base",
		Interfaces:   []string{"java.lang.Runnable"},
		Path:         "/classes/com/example/Service.class",
	})
	for _, want := range []string{"Java 11", "0x0001", "com.example.Base", "java.lang.Runnable", "Service.class"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in details:\n%s", want, out)
		}
	}
}

func TestPackageItemText(t *testing.T) {
	ok := packageItemText(0, domain.PackageResult{Package: "com.ok", Classes: []*domain.ClassHandle{{}, {}}})
	if !strings.Contains(ok, "com.ok") || !strings.Contains(ok, "(2)") {
		t.Errorf("unexpected item text: %s", ok)
	}
	failed := packageItemText(1, domain.PackageResult{Package: "com.bad", Error: "boom"})
	if !strings.Contains(failed, "✗") {
		t.Errorf("failed package should be marked: %s", failed)
	}
}

package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

func TestNormalizeArgsFromStd(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)

	got, err := NormalizeArgsFromStd(store, "adaptiveThreshold", []string{" 15 ", "", "MEAN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "15" || got[1] != "" || got[2] != "mean" {
		t.Fatalf("unexpected normalized args: %q", got)
	}

	got, err = NormalizeArgsFromStd(store, "contrast", []string{"1.50"})
	if err != nil || got[0] != "1.5" {
		t.Fatalf("float normalization failed: %q %v", got, err)
	}

	bad := []struct {
		name string
		args []string
	}{
		{"contrast", nil},
		{"contrast", []string{"bright"}},
		{"dilate", []string{"1.5"}},
		{"adaptiveThreshold", []string{"11", "2", "median"}},
		{"smooth", []string{"3"}},
		{"nosuch", nil},
	}
	for _, b := range bad {
		if _, err := NormalizeArgsFromStd(store, b.name, b.args); err == nil {
			t.Fatalf("%s %q: expected error", b.name, b.args)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)
	cases := map[string]string{
		"1":         stdimg.Commands[0].Name,
		"CLAHE":     "clahe",
		"lap":       "laplacian",
		"edgeThres": "edgeThreshold",
	}
	for in, want := range cases {
		got, err := store.Resolve(in)
		if err != nil || got != want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := store.Resolve("c"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if _, err := store.Resolve("0"); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, err := store.Resolve("zzz"); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestTooltipListsParameters(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)
	tip, rules, err := store.GetCommandHelp("clahe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tip, "clipLimit") || !strings.Contains(tip, "default: 8") {
		t.Fatalf("tooltip missing parameters: %s", tip)
	}
	if rules["tiles"].Type != ParamTypeInt || rules["clipLimit"].Type != ParamTypeFloat {
		t.Fatalf("unexpected rules: %+v", rules)
	}
	_, rules, _ = store.GetCommandHelp("adaptiveThreshold")
	if opts := rules["method"].EnumOptions; len(opts) != 2 || opts[0] != "gaussian" || opts[1] != "mean" {
		t.Fatalf("unexpected enum options: %q", opts)
	}
}

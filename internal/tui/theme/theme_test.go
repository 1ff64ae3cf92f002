package theme

import "testing"

func TestLoadKnownThemes(t *testing.T) {
	for _, name := range []string{"mocha", "macchiato", "frappe", "latte"} {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if th.Name != name {
			t.Errorf("Load(%q).Name = %q", name, th.Name)
		}
		if th.Bg == "" || th.Fg == "" || th.Marked == "" {
			t.Errorf("theme %q is missing base colors: %+v", name, th)
		}
	}
}

func TestLoadUnknownFallsBackToMocha(t *testing.T) {
	th, err := Load("solarized")
	if err != nil {
		t.Fatalf("Load(unknown) failed: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("unknown theme should fall back to mocha, got %q", th.Name)
	}
}

func TestLoadEmptyDefaultsToMocha(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("empty theme should default to mocha, got %q", th.Name)
	}
}

func TestApplyDefaultsFillsModalPalette(t *testing.T) {
	th, err := Load("frappe")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.BaseBg == "" || th.ModalBorder == "" || th.TextPrimary == "" {
		t.Errorf("modal palette not defaulted: %+v", th)
	}
	if th.ModalBorder != th.Accent {
		t.Errorf("ModalBorder should default to Accent, got %q", th.ModalBorder)
	}
}

func TestAvailable(t *testing.T) {
	names := Available()
	if len(names) != 4 {
		t.Fatalf("Available() = %v, want 4 themes", names)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *FontConfig {
	return &FontConfig{
		FontPath:      "font.ttf",
		OutputPath:    "out",
		FontSize:      16,
		OutputFormat:  FormatBitmap,
		RenderMode:    4,
		Rotation:      Rotation0,
		Gamma:         1.0,
		IndexMethod:   IndexAddress,
		CharacterSets: []CharsetSourceSpec{{Range: "0x0041-0x0046"}},
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	fc := validConfig()
	if err := fc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsFontSizeOutOfRange(t *testing.T) {
	fc := validConfig()
	fc.FontSize = 0
	if err := fc.Validate(); err == nil {
		t.Error("expected error for fontSize 0")
	}
	fc.FontSize = 256
	if err := fc.Validate(); err == nil {
		t.Error("expected error for fontSize 256")
	}
}

func TestValidateRejectsBadRenderModeForBitmap(t *testing.T) {
	fc := validConfig()
	fc.RenderMode = 3
	if err := fc.Validate(); err == nil {
		t.Error("expected error for renderMode 3")
	}
}

func TestValidateIgnoresRenderModeForVector(t *testing.T) {
	fc := validConfig()
	fc.OutputFormat = FormatVector
	fc.RenderMode = 3
	if err := fc.Validate(); err != nil {
		t.Errorf("renderMode should be unchecked for vector output, got %v", err)
	}
}

func TestValidateDefaultsZeroGammaToOne(t *testing.T) {
	fc := validConfig()
	fc.Gamma = 0
	if err := fc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fc.Gamma != 1.0 {
		t.Errorf("gamma = %v, want 1.0", fc.Gamma)
	}
}

func TestValidateRejectsGammaOutOfRange(t *testing.T) {
	fc := validConfig()
	fc.Gamma = 0.05
	if err := fc.Validate(); err == nil {
		t.Error("expected error for gamma below 0.1")
	}
}

func TestValidateRejectsCropWithOffsetIndex(t *testing.T) {
	fc := validConfig()
	fc.Crop = true
	fc.IndexMethod = IndexOffset
	if err := fc.Validate(); err == nil {
		t.Error("expected error for crop + offset")
	}
}

func TestValidateRejectsCropForVector(t *testing.T) {
	fc := validConfig()
	fc.Crop = true
	fc.OutputFormat = FormatVector
	if err := fc.Validate(); err == nil {
		t.Error("expected error for crop + vector")
	}
}

func TestValidateRejectsEmptyCharacterSets(t *testing.T) {
	fc := validConfig()
	fc.CharacterSets = nil
	if err := fc.Validate(); err == nil {
		t.Error("expected error for empty characterSets")
	}
}

func TestApplyOverridesWinOverFileValues(t *testing.T) {
	fc := validConfig()
	size, bold, mode, out, rot := 24, true, 8, "other", 90
	fc.Apply(Overrides{Size: &size, Bold: &bold, RenderMode: &mode, Output: &out, Rotation: &rot})
	if fc.FontSize != 24 || !fc.Bold || fc.RenderMode != 8 || fc.OutputPath != "other" || fc.Rotation != Rotation90 {
		t.Errorf("overrides did not apply, got %+v", fc)
	}
}

func TestApplyLeavesUnsetOverridesAlone(t *testing.T) {
	fc := validConfig()
	fc.Apply(Overrides{})
	want := validConfig()
	if fc.FontSize != want.FontSize || fc.Bold != want.Bold {
		t.Errorf("empty overrides mutated config: %+v", fc)
	}
}

func TestLoadJSONSingleObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	body := `{"fontPath":"f.ttf","outputPath":"out","fontSize":16,"outputFormat":"bitmap","renderMode":4,"indexMethod":"address","characterSets":[{"range":"0x0041-0x0046"}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgs, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].FontPath != "f.ttf" {
		t.Fatalf("got %+v", cfgs)
	}
	if cfgs[0].BasePath() != dir {
		t.Errorf("basePath = %q, want %q", cfgs[0].BasePath(), dir)
	}
}

func TestLoadJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	body := `[{"fontPath":"a.ttf","outputPath":"out1","fontSize":16,"outputFormat":"bitmap","renderMode":4,"indexMethod":"address","characterSets":[{"range":"0x0041-0x0046"}]},` +
		`{"fontPath":"b.ttf","outputPath":"out2","fontSize":20,"outputFormat":"vector","indexMethod":"offset","characterSets":[{"range":"0x0041-0x0046"}]}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgs, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfgs) != 2 || cfgs[1].FontSize != 20 {
		t.Fatalf("got %+v", cfgs)
	}
}

func TestLoadINIWithCharsetSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.ini")
	body := "font_path = f.ttf\noutput_path = out\nfont_size = 16\noutput_format = bitmap\nrender_mode = 4\nindex_method = address\n\n[cs1]\nrange = 0x0041-0x0046\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgs, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfgs) != 1 {
		t.Fatalf("got %d configs, want 1", len(cfgs))
	}
	if len(cfgs[0].CharacterSets) != 1 || cfgs[0].CharacterSets[0].Range != "0x0041-0x0046" {
		t.Errorf("charset sections not collected: %+v", cfgs[0].CharacterSets)
	}
}

func TestLoadMissingFileIsFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), Overrides{})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestCharsetsConvertsEachSourceKind(t *testing.T) {
	fc := validConfig()
	fc.CharacterSets = []CharsetSourceSpec{
		{Range: "0x0041-0x0046"},
		{String: "hi"},
		{File: "cps.bin"},
	}
	srcs, err := fc.Charsets()
	if err != nil {
		t.Fatalf("Charsets: %v", err)
	}
	if len(srcs) != 3 {
		t.Fatalf("got %d sources, want 3", len(srcs))
	}
}

func TestCharsetsRejectsEmptySpec(t *testing.T) {
	fc := validConfig()
	fc.CharacterSets = []CharsetSourceSpec{{}}
	if _, err := fc.Charsets(); err == nil {
		t.Error("expected error for charset entry with no source set")
	}
}

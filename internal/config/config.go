// Package config loads FontConfig values from JSON or INI files. This is
// explicitly an external collaborator to the codec core: FontConfig is an
// input contract, not part of the emitted binary format.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/hellsge/font-tool-typescript-sub001/internal/charset"
	"github.com/hellsge/font-tool-typescript-sub001/internal/errs"
)

// OutputFormat selects which encoder a FontConfig drives.
type OutputFormat string

const (
	FormatBitmap OutputFormat = "bitmap"
	FormatVector OutputFormat = "vector"
)

// IndexMethod selects how the container's index table addresses glyphs.
type IndexMethod string

const (
	IndexAddress IndexMethod = "address"
	IndexOffset  IndexMethod = "offset"
)

// Rotation is one of the four permitted rotation angles, in degrees.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// CharsetSourceSpec is the on-disk shape of one character-set entry,
// tagged by which field is set.
type CharsetSourceSpec struct {
	File     string `json:"file,omitempty" ini:"file,omitempty"`
	Range    string `json:"range,omitempty" ini:"range,omitempty"`
	Codepage string `json:"codepage,omitempty" ini:"codepage,omitempty"`
	String   string `json:"string,omitempty" ini:"string,omitempty"`
}

// FontConfig is the decoded, pre-validation shape of a single font
// generation request.
type FontConfig struct {
	FontPath      string              `json:"fontPath" ini:"font_path"`
	OutputPath    string              `json:"outputPath" ini:"output_path"`
	FontSize      int                 `json:"fontSize" ini:"font_size"`
	OutputFormat  OutputFormat        `json:"outputFormat" ini:"output_format"`
	RenderMode    int                 `json:"renderMode" ini:"render_mode"`
	Bold          bool                `json:"bold" ini:"bold"`
	Italic        bool                `json:"italic" ini:"italic"`
	Rotation      Rotation            `json:"rotation" ini:"rotation"`
	Gamma         float64             `json:"gamma" ini:"gamma"`
	IndexMethod   IndexMethod         `json:"indexMethod" ini:"index_method"`
	Crop          bool                `json:"crop" ini:"crop"`
	CharacterSets []CharsetSourceSpec `json:"characterSets" ini:"-"`

	// basePath is the directory the config file lived in, used to resolve
	// relative charset file paths. Not part of the on-disk shape.
	basePath string
}

// Overrides are CLI flag values that win over the config file's values
// when present.
type Overrides struct {
	Size       *int
	Bold       *bool
	Italic     *bool
	RenderMode *int
	Output     *string
	Rotation   *int
}

// Apply overwrites fc's fields with any set override.
func (fc *FontConfig) Apply(o Overrides) {
	if o.Size != nil {
		fc.FontSize = *o.Size
	}
	if o.Bold != nil {
		fc.Bold = *o.Bold
	}
	if o.Italic != nil {
		fc.Italic = *o.Italic
	}
	if o.RenderMode != nil {
		fc.RenderMode = *o.RenderMode
	}
	if o.Output != nil {
		fc.OutputPath = *o.Output
	}
	if o.Rotation != nil {
		fc.Rotation = Rotation(*o.Rotation)
	}
}

// Load reads one or more FontConfigs from path, detecting JSON vs INI by
// extension, and applies CLI overrides. A single JSON object or a JSON
// array of objects are both accepted, matching the batch-mode convenience
// the driver offers on top of the single-config contract.
func Load(path string, overrides Overrides) ([]*FontConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.FileNotFound(path)
		}
		return nil, errs.ParseError("reading config", path, err)
	}
	base := filepath.Dir(path)

	var configs []*FontConfig
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		cfg, err := loadINI(data, path)
		if err != nil {
			return nil, err
		}
		configs = []*FontConfig{cfg}
	} else {
		configs, err = loadJSON(data, path)
		if err != nil {
			return nil, err
		}
	}

	for _, c := range configs {
		c.basePath = base
		c.Apply(overrides)
	}
	return configs, nil
}

func loadJSON(data []byte, path string) ([]*FontConfig, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var arr []*FontConfig
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, errs.ParseError("invalid JSON config", path, err)
		}
		return arr, nil
	}
	var one FontConfig
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, errs.ParseError("invalid JSON config", path, err)
	}
	return []*FontConfig{&one}, nil
}

func loadINI(data []byte, path string) (*FontConfig, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, errs.ParseError("invalid INI config", path, err)
	}
	var fc FontConfig
	if err := f.Section("").MapTo(&fc); err != nil {
		return nil, errs.ParseError("invalid INI config", path, err)
	}
	for _, sec := range f.Sections() {
		if sec.Name() == "DEFAULT" || sec.Name() == "" {
			continue
		}
		var spec CharsetSourceSpec
		if err := sec.MapTo(&spec); err != nil {
			return nil, errs.ParseError("invalid INI charset section", path, err)
		}
		fc.CharacterSets = append(fc.CharacterSets, spec)
	}
	return &fc, nil
}

// Validate checks a FontConfig against the invariants spec.md names,
// returning a ConfigValidation error describing the first violation.
func (fc *FontConfig) Validate() error {
	if fc.FontPath == "" {
		return errs.ConfigValidation("fontPath is required")
	}
	if fc.OutputPath == "" {
		return errs.ConfigValidation("outputPath is required")
	}
	if fc.FontSize < 1 || fc.FontSize > 255 {
		return errs.ConfigValidation("fontSize must be in 1..=255")
	}
	if fc.OutputFormat != FormatBitmap && fc.OutputFormat != FormatVector {
		return errs.ConfigValidation("outputFormat must be bitmap or vector")
	}
	if fc.OutputFormat == FormatBitmap {
		switch fc.RenderMode {
		case 1, 2, 4, 8:
		default:
			return errs.ConfigValidation("renderMode must be one of {1,2,4,8}")
		}
	}
	switch fc.Rotation {
	case Rotation0, Rotation90, Rotation180, Rotation270:
	default:
		return errs.ConfigValidation("rotation must be one of {0,90,180,270}")
	}
	if fc.Gamma == 0 {
		fc.Gamma = 1.0
	}
	if fc.Gamma < 0.1 || fc.Gamma > 5.0 {
		return errs.ConfigValidation("gamma must be in [0.1, 5.0]")
	}
	if fc.IndexMethod != IndexAddress && fc.IndexMethod != IndexOffset {
		return errs.ConfigValidation("indexMethod must be address or offset")
	}
	if fc.Crop && fc.IndexMethod == IndexOffset {
		return errs.ConfigValidation("crop is incompatible with indexMethod=offset")
	}
	if fc.Crop && fc.OutputFormat != FormatBitmap {
		return errs.ConfigValidation("crop is only meaningful for bitmap output")
	}
	if len(fc.CharacterSets) == 0 {
		return errs.ConfigValidation("characterSets must not be empty")
	}
	return nil
}

// Charsets converts the decoded CharsetSourceSpec entries into
// charset.Source values ready for resolution.
func (fc *FontConfig) Charsets() ([]charset.Source, error) {
	out := make([]charset.Source, 0, len(fc.CharacterSets))
	for _, spec := range fc.CharacterSets {
		switch {
		case spec.File != "":
			out = append(out, charset.File(spec.File))
		case spec.Range != "":
			r, err := charset.ParseRange(spec.Range)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		case spec.Codepage != "":
			out = append(out, charset.Codepage(spec.Codepage))
		case spec.String != "":
			out = append(out, charset.String(spec.String))
		default:
			return nil, errs.ConfigValidation("charset entry has no source set")
		}
	}
	return out, nil
}

// BasePath is the directory the config file lived in.
func (fc *FontConfig) BasePath() string { return fc.basePath }

// Package driver orchestrates per-font-config runs: resolving the
// charset, loading the outline font, driving the right encoder, and
// writing the container, sidecar, and optional failed-characters files.
// It tracks every file it opens for write and removes them on a
// best-effort basis if the run fails partway through.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hellsge/font-tool-typescript-sub001/internal/charset"
	"github.com/hellsge/font-tool-typescript-sub001/internal/codec"
	"github.com/hellsge/font-tool-typescript-sub001/internal/config"
	"github.com/hellsge/font-tool-typescript-sub001/internal/errs"
	"github.com/hellsge/font-tool-typescript-sub001/internal/fontsrc"
)

// Driver runs one or more FontConfigs to completion.
type Driver struct {
	Log         *logrus.Logger
	Concurrency int
}

// New returns a Driver logging through log. Concurrency <= 1 runs configs
// sequentially.
func New(log *logrus.Logger) *Driver {
	return &Driver{Log: log, Concurrency: 1}
}

// RunAll runs every config in cfgs. If two configs share an OutputPath it
// returns a ConfigValidation error before running any of them. When
// d.Concurrency > 1 and there is more than one config, configs run
// concurrently, at most d.Concurrency at a time, and the first error
// received is returned after all launched runs complete. Otherwise they
// run sequentially in order, stopping at the first error.
func (d *Driver) RunAll(cfgs []*config.FontConfig) error {
	if err := checkDisjointOutputs(cfgs); err != nil {
		return err
	}
	if d.Concurrency <= 1 || len(cfgs) <= 1 {
		for _, c := range cfgs {
			if err := d.Run(c); err != nil {
				return err
			}
		}
		return nil
	}

	sem := make(chan struct{}, d.Concurrency)
	var wg sync.WaitGroup
	errCh := make(chan error, len(cfgs))
	for _, c := range cfgs {
		c := c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := d.Run(c); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		return err
	}
	return nil
}

func checkDisjointOutputs(cfgs []*config.FontConfig) error {
	seen := make(map[string]bool, len(cfgs))
	for _, c := range cfgs {
		if seen[c.OutputPath] {
			return errs.ConfigValidation("duplicate outputPath across configs: " + c.OutputPath)
		}
		seen[c.OutputPath] = true
	}
	return nil
}

// run tracks files opened for write in this invocation, for best-effort
// cleanup on failure.
type run struct {
	tracked []string
}

func (r *run) track(path string) { r.tracked = append(r.tracked, path) }

func (r *run) cleanup() {
	for _, p := range r.tracked {
		_ = os.Remove(p)
	}
}

// Run executes a single font-config end to end: validate, resolve
// charset, load font, encode, write container + sidecar + optional
// failed-characters file.
func (d *Driver) Run(cfg *config.FontConfig) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r := &run{}
	defer func() {
		if err != nil {
			r.cleanup()
		}
	}()

	if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
		return errs.WriteError(cfg.OutputPath, err)
	}

	sources, err := cfg.Charsets()
	if err != nil {
		return err
	}
	codes, err := charset.Resolve(sources, cfg.BasePath())
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(cfg.FontPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return errs.FileNotFound(cfg.FontPath)
		}
	}
	src, err := fontsrc.Load(cfg.FontPath)
	if err != nil {
		return errs.FontLoad("loading font", cfg.FontPath, err)
	}

	var data []byte
	var failed []uint16
	switch cfg.OutputFormat {
	case config.FormatBitmap:
		enc := codec.NewBitmapEncoder(cfg, codes, src)
		data, err = enc.Encode()
		failed = enc.Failed()
	case config.FormatVector:
		enc := codec.NewVectorEncoder(cfg, codes, src)
		data, err = enc.Encode()
		failed = enc.Failed()
	default:
		return errs.ConfigValidation("unknown outputFormat")
	}
	if err != nil {
		return err
	}

	stem := src.NameStem()
	containerPath := containerFilename(cfg, stem)
	cstPath := cstFilename(cfg, stem)

	if err := d.writeFile(r, containerPath, data); err != nil {
		return err
	}
	accepted := acceptedCodes(codes, failed)
	if err := d.writeFile(r, cstPath, codec.WriteCst(accepted)); err != nil {
		return err
	}

	if len(failed) > 0 {
		failedPath := filepath.Join(cfg.OutputPath, "NotSupportedChars.txt")
		if err := d.writeFile(r, failedPath, failedCharsText(failed)); err != nil {
			return err
		}
		if d.Log != nil {
			d.Log.WithFields(logrus.Fields{"count": len(failed), "path": failedPath}).
				Warn("some code points failed to render")
		}
	}

	if d.Log != nil {
		d.Log.WithFields(logrus.Fields{"output": containerPath, "glyphs": len(accepted)}).
			Info("font generation complete")
	}
	return nil
}

func (d *Driver) writeFile(r *run, path string, data []byte) error {
	r.track(path)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.WriteError(path, err)
	}
	return nil
}

func acceptedCodes(codes, failed []uint16) []uint16 {
	failedSet := make(map[uint16]bool, len(failed))
	for _, cp := range failed {
		failedSet[cp] = true
	}
	out := make([]uint16, 0, len(codes))
	for _, cp := range codes {
		if !failedSet[cp] {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func failedCharsText(failed []uint16) []byte {
	sorted := append([]uint16(nil), failed...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var out []byte
	for _, cp := range sorted {
		out = append(out, []byte(fmt.Sprintf("U+%04X\n", cp))...)
	}
	return out
}

func containerFilename(cfg *config.FontConfig, stem string) string {
	if cfg.OutputFormat == config.FormatVector {
		return filepath.Join(cfg.OutputPath, fmt.Sprintf("%s_vector.bin", stem))
	}
	return filepath.Join(cfg.OutputPath, fmt.Sprintf("%s_size%d_bits%d_bitmap.bin", stem, cfg.FontSize, cfg.RenderMode))
}

func cstFilename(cfg *config.FontConfig, stem string) string {
	if cfg.OutputFormat == config.FormatVector {
		return filepath.Join(cfg.OutputPath, fmt.Sprintf("%s_vector.cst", stem))
	}
	return filepath.Join(cfg.OutputPath, fmt.Sprintf("%s_size%d_bits%d_bitmap.cst", stem, cfg.FontSize, cfg.RenderMode))
}

package compile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrCompilationFailed indicates an engine was invoked and failed. A
// failed engine never falls through to the next one: broken source
// would fail there too, and silent degradation hides the real problem.
var ErrCompilationFailed = errors.New("compilation failed")

// Result describes what landed on disk.
type Result struct {
	// Path is the file that was written.
	Path string
	// Tool is the engine that produced it, empty when degraded.
	Tool string
	// Degraded is true when no engine was available and the raw
	// source was written instead of a PDF.
	Degraded bool
}

// Compile renders LaTeX source to a PDF at outputPath using the first
// available engine in the chain. Work happens in a temporary directory
// so aux files and failed partial output never reach the requested
// path. When no engine is installed the raw source is written next to
// the requested path with a .tex extension and the result is marked
// degraded.
func Compile(ctx context.Context, source, outputPath string, chain []Toolchain) (result Result, err error) {
	outputPath, err = normalizeOutputPath(outputPath)
	if err != nil {
		return result, err
	}

	var tool Toolchain
	for _, candidate := range chain {
		if candidate.Available() {
			tool = candidate
			break
		}
	}

	if tool == nil {
		result, err = writeDegraded(source, outputPath)
		return result, err
	}

	if tool.Name() == "tectonic" {
		source = preprocessForTectonic(source)
	}

	workDir, err := os.MkdirTemp("", "resume-builder-*")
	if err != nil {
		err = errors.Wrap(err, "failed to create working directory")
		return result, err
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, texName(outputPath))
	err = os.WriteFile(texPath, []byte(source), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write source: %s", texPath)
		return result, err
	}

	err = tool.Compile(ctx, texPath, workDir)
	if err != nil {
		return result, err
	}

	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		err = errors.Wrapf(ErrCompilationFailed, "%s reported success but produced no PDF", tool.Name())
		return result, err
	}

	err = movePDF(pdfPath, outputPath)
	if err != nil {
		return result, err
	}

	result = Result{Path: outputPath, Tool: tool.Name()}
	return result, err
}

// WriteSource writes the LaTeX source directly, used when the caller
// asked to skip PDF generation.
func WriteSource(source, outputPath string) (result Result, err error) {
	outputPath, err = normalizeOutputPath(outputPath)
	if err != nil {
		return result, err
	}

	result, err = writeDegraded(source, outputPath)
	return result, err
}

func writeDegraded(source, outputPath string) (result Result, err error) {
	texPath := strings.TrimSuffix(outputPath, ".pdf") + ".tex"

	err = os.WriteFile(texPath, []byte(source), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write source: %s", texPath)
		return result, err
	}

	result = Result{Path: texPath, Degraded: true}
	return result, err
}

// normalizeOutputPath replaces any requested extension with .pdf and
// makes sure the directory exists. The written extension always
// reflects what actually happened: .pdf from a compiler, .tex for raw
// source, never whatever the caller typed.
func normalizeOutputPath(outputPath string) (normalized string, err error) {
	normalized = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".pdf"

	outDir := filepath.Dir(normalized)
	err = os.MkdirAll(outDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outDir)
		return normalized, err
	}

	return normalized, err
}

// movePDF moves the compiled PDF out of the working directory. Rename
// fails across filesystems, so it falls back to a copy.
func movePDF(from, to string) (err error) {
	err = os.Rename(from, to)
	if err == nil {
		return err
	}

	src, err := os.Open(from)
	if err != nil {
		err = errors.Wrapf(err, "failed to open compiled PDF: %s", from)
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output file: %s", to)
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	if err != nil {
		err = errors.Wrapf(err, "failed to copy compiled PDF to: %s", to)
		return err
	}

	return err
}

// Package compile turns LaTeX source into a PDF using whichever engine
// is installed, falling back to raw source when none is.
package compile

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Toolchain is one LaTeX engine the compiler knows how to drive.
type Toolchain interface {
	Name() (name string)
	Available() (available bool)
	Compile(ctx context.Context, texPath, outDir string) (err error)
}

// DefaultChain returns the engines in preference order.
func DefaultChain() (chain []Toolchain) {
	chain = []Toolchain{
		&Tectonic{},
		&PDFLaTeX{},
	}
	return chain
}

// Tectonic drives the tectonic engine. Tectonic is XeLaTeX based and
// auto-fetches packages, so its input gets preprocessed first.
type Tectonic struct{}

func (t *Tectonic) Name() (name string) {
	return "tectonic"
}

func (t *Tectonic) Available() (available bool) {
	_, err := exec.LookPath("tectonic")
	available = err == nil
	return available
}

func (t *Tectonic) Compile(ctx context.Context, texPath, outDir string) (err error) {
	cmd := exec.CommandContext(ctx, "tectonic", texPath)
	cmd.Dir = outDir

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(ErrCompilationFailed, "tectonic: %v: %s", err, truncateDiagnostics(output))
		return err
	}

	return err
}

// PDFLaTeX drives a conventional pdflatex install. It runs twice so
// references and the TOC settle.
type PDFLaTeX struct{}

func (p *PDFLaTeX) Name() (name string) {
	return "pdflatex"
}

func (p *PDFLaTeX) Available() (available bool) {
	_, err := exec.LookPath("pdflatex")
	available = err == nil
	return available
}

func (p *PDFLaTeX) Compile(ctx context.Context, texPath, outDir string) (err error) {
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx,
			"pdflatex",
			"-interaction=nonstopmode",
			"-output-directory="+outDir,
			texPath,
		)
		cmd.Dir = outDir

		var output []byte
		output, err = cmd.CombinedOutput()
		if err != nil {
			err = errors.Wrapf(ErrCompilationFailed, "pdflatex pass %d: %v: %s", pass+1, err, truncateDiagnostics(output))
			return err
		}
	}

	return err
}

// preprocessForTectonic adjusts source written for pdflatex so tectonic
// accepts it: glyphtounicode lines go, and when the XCharter package is
// loaded the fontenc/inputenc lines conflict with fontspec and go too.
func preprocessForTectonic(source string) (cleaned string) {
	lines := strings.Split(source, "\n")

	hasXCharter := false
	for _, line := range lines {
		if strings.Contains(line, `\usepackage{XCharter}`) {
			hasXCharter = true
			break
		}
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, `\input{glyphtounicode}`) || strings.Contains(line, `\pdfgentounicode=1`) {
			continue
		}
		if hasXCharter && (strings.Contains(line, `\usepackage[T1]{fontenc}`) || strings.Contains(line, `\usepackage[utf8]{inputenc}`)) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned = strings.Join(kept, "\n")
	return cleaned
}

// truncateDiagnostics keeps engine output in errors readable.
func truncateDiagnostics(output []byte) (diagnostics string) {
	const limit = 500
	diagnostics = strings.TrimSpace(string(output))
	if len(diagnostics) > limit {
		diagnostics = diagnostics[:limit] + "..."
	}
	return diagnostics
}

// texName derives the working .tex file name from the requested output.
func texName(outputPath string) (name string) {
	base := filepath.Base(outputPath)
	name = strings.TrimSuffix(base, filepath.Ext(base)) + ".tex"
	return name
}

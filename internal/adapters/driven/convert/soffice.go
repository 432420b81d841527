// Package convert provides the LibreOffice-based legacy format converter.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure Soffice implements the interface.
var _ driven.LegacyConverter = (*Soffice)(nil)

// legacyTargets maps convertible legacy extensions to the format name
// passed to soffice --convert-to.
var legacyTargets = map[string]string{
	".doc": "docx",
	".xls": "xlsx",
	".ppt": "pptx",
}

// Soffice converts legacy Office formats by shelling out to a headless
// LibreOffice. The output lands next to the source file.
type Soffice struct {
	binary string
}

// NewSoffice creates the converter using the soffice binary on PATH.
func NewSoffice() *Soffice {
	return &Soffice{binary: "soffice"}
}

// Available reports whether the soffice binary can be found.
func (s *Soffice) Available() bool {
	_, err := exec.LookPath(s.binary)
	return err == nil
}

// CanConvert reports whether the file has a convertible legacy extension.
func (s *Soffice) CanConvert(path string) bool {
	_, ok := legacyTargets[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Convert converts src to its modern sibling and returns the output path.
func (s *Soffice) Convert(ctx context.Context, src string) (string, error) {
	target, ok := legacyTargets[strings.ToLower(filepath.Ext(src))]
	if !ok {
		return "", fmt.Errorf("soffice: no conversion target for %s", src)
	}

	cmd := exec.CommandContext(ctx, s.binary,
		"--headless", "--convert-to", target,
		"--outdir", filepath.Dir(src), src)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("soffice %s: %w: %s", src, err, bytes.TrimSpace(out))
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + "." + target, nil
}

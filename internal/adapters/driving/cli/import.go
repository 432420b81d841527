package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/artifacts"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <reviewed.csv>",
	Short: "Import reviewed classifications from a CSV",
	Long: `Reads a reviewed classification CSV (as produced by export) and
applies the edited fields to the matching classified records. Updated
records are written to a sibling "reviewed" folder; the original
classified records are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	reviewed, err := artifacts.NewStore(a.settings.ClassifiedDir + "_reviewed")
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["source_json_filename"]; !ok {
		return errors.New("CSV is missing the source_json_filename column")
	}

	updated, failed := 0, 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read CSV row: %w", err)
		}

		name := cell(row, col, "source_json_filename")
		if name == "" {
			failed++
			continue
		}
		if err := applyReview(a, reviewed, name, row, col); err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", name, err)
			failed++
			continue
		}
		updated++
	}

	cmd.Printf("Imported %d reviewed classifications to %s", updated, reviewed.Dir())
	if failed > 0 {
		cmd.Printf(" (%d rows skipped)", failed)
	}
	cmd.Println()
	return nil
}

// applyReview overlays one CSV row's fields onto the classified record
// and writes the result to the reviewed store.
func applyReview(a *app, reviewed *artifacts.Store, name string, row []string, col map[string]int) error {
	var doc domain.DocumentRecord
	if err := a.classified.ReadJSON(name, &doc); err != nil {
		return fmt.Errorf("read classified record: %w", err)
	}

	c := doc.Classifications
	if c == nil {
		c = &domain.Classification{}
	}

	if v, ok := lookupCell(row, col, "primary_category"); ok {
		c.PrimaryCategory = v
	}
	if v, ok := lookupCell(row, col, "document_type_tags"); ok {
		c.DocumentTypeTags = splitList(v)
	}
	if v, ok := lookupCell(row, col, "target_roles"); ok {
		c.TargetRoles = splitList(v)
	}
	if v, ok := lookupCell(row, col, "relevant_plant_areas_or_equipment"); ok {
		c.RelevantAreas = splitList(v)
	}
	if v, ok := lookupCell(row, col, "is_safety_critical"); ok {
		c.SafetyCritical = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v, ok := lookupCell(row, col, "detected_language"); ok {
		c.DetectedLanguage = v
	}
	if v, ok := lookupCell(row, col, "brief_summary"); ok {
		c.BriefSummary = v
	}
	if v, ok := lookupCell(row, col, "machines_components"); ok {
		c.KeyEntities.MachinesComponents = splitList(v)
	}
	if v, ok := lookupCell(row, col, "materials_products"); ok {
		c.KeyEntities.MaterialsProducts = splitList(v)
	}
	if v, ok := lookupCell(row, col, "llm_notes_or_confidence"); ok {
		c.Notes = v
	}

	doc.Classifications = c
	return reviewed.WriteJSON(filepath.Base(name), &doc)
}

// cell returns a named column's value, or "" when absent.
func cell(row []string, col map[string]int, name string) string {
	v, _ := lookupCell(row, col, name)
	return v
}

// lookupCell reports whether the column exists in the CSV at all, so a
// reviewed CSV with fewer columns leaves the missing fields untouched.
func lookupCell(row []string, col map[string]int, name string) (string, bool) {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// splitList parses a comma-separated cell into a list, dropping empty
// items.
func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

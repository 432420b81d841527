package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// reviewColumns is the CSV column order for classification review
// exports. The first columns identify the record; the rest are the
// editable classification fields, with the nested entity lists
// flattened.
var reviewColumns = []string{
	"source_json_filename",
	"original_document_name",
	"classification_status",
	"primary_category",
	"document_type_tags",
	"target_roles",
	"relevant_plant_areas_or_equipment",
	"is_safety_critical",
	"detected_language",
	"brief_summary",
	"machines_components",
	"materials_products",
	"llm_notes_or_confidence",
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export classifications to a review CSV",
	Long: `Exports every classified document's labels to a CSV file for human
review. List fields are joined with ", "; the reviewed CSV can be fed
back with the import command.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output CSV path (default data dir review_exports)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	output := exportOutput
	if output == "" {
		stamp := time.Now().Format("20060102_150405")
		output = filepath.Join(a.settings.DataDir, "review_exports",
			fmt.Sprintf("classification_review_%s.csv", stamp))
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	names, err := a.classified.List()
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reviewColumns); err != nil {
		return err
	}

	rows := 0
	for _, name := range names {
		if name == domain.ManifestFilename {
			continue
		}
		var doc domain.DocumentRecord
		if err := a.classified.ReadJSON(name, &doc); err != nil {
			cmd.PrintErrf("Skipping unreadable record %s: %v\n", name, err)
			continue
		}
		if err := w.Write(reviewRow(name, &doc)); err != nil {
			return err
		}
		rows++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	cmd.Printf("Exported %d classifications to %s\n", rows, output)
	return nil
}

// reviewRow flattens one classified record into CSV cells, in
// reviewColumns order.
func reviewRow(name string, doc *domain.DocumentRecord) []string {
	c := doc.Classifications
	if c == nil {
		c = &domain.Classification{}
	}
	return []string{
		name,
		doc.FileName,
		doc.ClassificationStatus,
		c.PrimaryCategory,
		joinList(c.DocumentTypeTags),
		joinList(c.TargetRoles),
		joinList(c.RelevantAreas),
		strconv.FormatBool(c.SafetyCritical),
		c.DetectedLanguage,
		c.BriefSummary,
		joinList(c.KeyEntities.MachinesComponents),
		joinList(c.KeyEntities.MaterialsProducts),
		c.Notes,
	}
}

// joinList renders a list field as a comma-separated cell.
func joinList(values []string) string {
	return strings.Join(values, ", ")
}

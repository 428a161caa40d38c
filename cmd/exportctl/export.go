package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
)

func newExportCmd() *cobra.Command {
	var (
		courseID uint
		quizID   uint
		userID   uint
		formatID string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a quiz to a file as a site administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			result, err := a.export.Export(cmd.Context(), service.ExportRequest{
				CourseID: courseID,
				QuizID:   quizID,
				Format:   formatID,
				Requester: entity.Requester{
					UserID:       userID,
					Capabilities: []string{entity.CapSiteConfig},
				},
			})
			if err != nil {
				return err
			}

			outPath = outputPath(outPath, result.FileName)
			if err := os.WriteFile(outPath, result.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d questions, %d bytes)\n", outPath, result.Exported, len(result.Content))
			for _, failure := range result.Skipped {
				fmt.Fprintf(out, "  skipped %v\n", failure)
			}
			if len(result.Unresolved) > 0 {
				fmt.Fprintf(out, "  unresolved slots: %v\n", result.Unresolved)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&courseID, "course", 0, "course id")
	cmd.Flags().UintVar(&quizID, "quiz", 0, "quiz instance id")
	cmd.Flags().UintVar(&userID, "user", 2, "acting user id")
	cmd.Flags().StringVar(&formatID, "format", "json", "export format")
	cmd.Flags().StringVar(&outPath, "out", "", "output file or directory (default: quiz name in the current directory)")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("quiz")
	return cmd
}

// Имя викторины может содержать разделители пути
var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_")

// outputPath returns where to write the export: out itself, or the quiz file
// name inside out when out is a directory or empty.
func outputPath(out, fileName string) string {
	name := fileNameReplacer.Replace(fileName)
	if out == "" {
		return name
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name)
	}
	return out
}

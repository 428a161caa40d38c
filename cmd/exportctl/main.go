// Command exportctl runs quiz exports and host schema maintenance from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/uofr/moodle-block-export-quiz/internal/config"
	"github.com/uofr/moodle-block-export-quiz/internal/format"
	pgRepo "github.com/uofr/moodle-block-export-quiz/internal/repository/postgres"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
	"github.com/uofr/moodle-block-export-quiz/pkg/database"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "exportctl",
		Short:         "Quiz export tools for the host LMS database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config file")

	root.AddCommand(
		newFormatsCmd(),
		newResolveCmd(),
		newExportCmd(),
		newTokenCmd(),
		newMigrateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}

// app собирает зависимости для команд, которым нужна база
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	formats *format.Registry
	export  *service.ExportService
}

func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	db, err := database.NewHostDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	formats, err := format.DefaultRegistry().Only(cfg.Export.Formats)
	if err != nil {
		return nil, err
	}

	courseRepo := pgRepo.NewCourseRepo(db)
	exportService := service.NewExportService(courseRepo, pgRepo.NewSlotRepo(db), pgRepo.NewQuestionRepo(db), formats)

	return &app{cfg: cfg, db: db, formats: formats, export: exportService}, nil
}

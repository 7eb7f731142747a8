package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitness-planner/internal/export"
)

var exportOpts struct {
	name   string
	format string
	dir    string
	remote bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved plan to {name}_fitness_plan.pdf or .xlsx",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportOpts.name, "name", "", "name shown in the title and used for the filename")
	f.StringVar(&exportOpts.format, "format", "pdf", "pdf or xlsx")
	f.StringVar(&exportOpts.dir, "dir", ".", "output directory")
	f.BoolVar(&exportOpts.remote, "remote", false, "render through the API instead of locally")
	exportCmd.MarkFlagRequired("name")
}

func runExport(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(exportOpts.name) == "" {
		return errors.New("--name must not be empty")
	}
	format := strings.ToLower(exportOpts.format)
	if format != "pdf" && format != "xlsx" {
		return fmt.Errorf("unsupported format %q (want pdf or xlsx)", exportOpts.format)
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := st.Get(cmd.Context())
	if err != nil {
		return errors.New(userMessage(err))
	}

	var (
		buf      bytes.Buffer
		filename string
	)
	switch {
	case exportOpts.remote:
		filename, err = apiClient().Export(cmd.Context(), &buf, p, exportOpts.name, format)
		if err != nil {
			return errors.New(userMessage(err))
		}
		if filename == "" {
			filename = export.Filename(exportOpts.name, format)
		}
	case format == "pdf":
		exporter, err := newExporter()
		if err != nil {
			return err
		}
		doc := exporter.Export(p, exportOpts.name)
		if err := doc.WritePDF(&buf); err != nil {
			return err
		}
		filename = doc.Filename()
		logger.Debug("laid out plan", zap.Int("pages", len(doc.Pages)), zap.Int("lines", doc.LineCount()))
		if doc.Lossy() {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: some characters are not supported by the built-in PDF font and were replaced; set PDF_FONT to a TrueType font or use --format xlsx")
		}
	default:
		if err := export.WriteXLSX(&buf, p, exportOpts.name); err != nil {
			return err
		}
		filename = export.Filename(exportOpts.name, "xlsx")
	}

	path := filepath.Join(exportOpts.dir, filepath.Base(filename))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

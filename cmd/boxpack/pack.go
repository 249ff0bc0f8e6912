package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/export"
	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/piwi3910/BoxPack/internal/project"
	"github.com/spf13/cobra"
)

var (
	packFlags jobFlags

	verifyResult bool
	savePath     string
	pdfPath      string
	labelsPath   string
	dxfPath      string
	svgPath      string
	chartPath    string
)

var packCmd = &cobra.Command{
	Use:   "pack [items file]",
	Short: "Pack the items of a CSV, Excel or DXF file",
	Long: `Pack every item of the file, in file order, into containers of one size.
Items that cannot be placed are reported with the reason and do not stop the
run. Quantities are expanded into single items.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packFlags.bind(packCmd)
	fl := packCmd.Flags()
	fl.BoolVar(&verifyResult, "verify", false, "re-check every placement for overlaps and bounds")
	fl.StringVarP(&savePath, "save", "o", "", "save the session (items and result) as JSON")
	fl.StringVar(&pdfPath, "pdf", "", "write a PDF report")
	fl.StringVar(&labelsPath, "labels", "", "write a PDF of QR item labels")
	fl.StringVar(&dxfPath, "dxf", "", "write a 3D wireframe DXF")
	fl.StringVar(&svgPath, "svg", "", "write an SVG top view")
	fl.StringVar(&chartPath, "chart", "", "write an HTML efficiency chart")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	container, settings, err := packFlags.resolve(cmd)
	if err != nil {
		return err
	}
	items, err := packFlags.loadItems(args[0])
	if err != nil {
		return err
	}

	result, err := engine.New(settings, engine.WithLogger(logger)).Pack(container, items)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, result)

	if verifyResult {
		if v := engine.Verify(result); len(v) > 0 {
			return fmt.Errorf("verification failed:\n  %s", strings.Join(engine.FormatViolations(v), "\n  "))
		}
		fmt.Fprintln(out, "Verification: OK")
	}

	exports := []struct {
		path string
		fn   func(string, model.PackResult) error
	}{
		{pdfPath, export.ExportPDF},
		{labelsPath, export.ExportLabels},
		{dxfPath, export.ExportDXF},
		{svgPath, export.ExportSVG},
		{chartPath, export.ExportChart},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path, result); err != nil {
			return fmt.Errorf("writing %s: %w", e.path, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", e.path)
	}

	if savePath != "" {
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if err := project.SaveResult(savePath, project.NewSessionFile(name, items, result)); err != nil {
			return err
		}
		appConfig.AddRecentSession(savePath, 10)
		if err := project.SaveAppConfig(configPath, appConfig); err != nil {
			logger.Warn("could not record recent session", "err", err)
		}
		fmt.Fprintf(out, "Saved session %s\n", savePath)
	}
	return nil
}

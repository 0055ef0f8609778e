package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"resumeBuilder/internal/pdf"
	"resumeBuilder/internal/preview"
	"resumeBuilder/internal/resume"
)

var (
	renderIn        string
	renderOut       string
	renderFormat    string
	renderChromeBin string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a record JSON file as preview HTML, preview JSON or PDF",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderIn, "in", "", "Path to record JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout; required for pdf)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, json or pdf")
	renderCmd.Flags().StringVar(&renderChromeBin, "chrome-bin", "", "Chromium binary for pdf output")
	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(renderIn)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	rec, err := resume.DecodeRecord(data)
	if err != nil {
		return err
	}
	doc := preview.Render(rec)

	var out io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch renderFormat {
	case "html":
		return preview.WriteHTML(out, doc)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "pdf":
		if renderOut == "" {
			return fmt.Errorf("--out is required for pdf output")
		}
		html, err := preview.HTML(doc)
		if err != nil {
			return err
		}
		b, err := pdf.NewRenderer(renderChromeBin).RenderPDF(cmd.Context(), html)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	default:
		return fmt.Errorf("unknown format %q", renderFormat)
	}
}

// Command ringtext generates a ring-with-inscription solid from a JSON
// config file and exports it as binary STL.
//
// Exit codes: 0 success, 1 input validation failure, 2 resource
// failure (font, glyph source, or I/O), 3 geometric-operation failure.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/unixpickle/ringtext"
)

const (
	exitOK = iota
	exitValidation
	exitResource
	exitGeometry
)

type config struct {
	Ring struct {
		InnerDiameter float64 `json:"inner_diameter"`
		OuterDiameter float64 `json:"outer_diameter"`
		Height        float64 `json:"height"`
		RadialSegs    int     `json:"radial_segments"`
		StartAngleDeg float64 `json:"start_angle_deg"`
		EndAngleDeg   float64 `json:"end_angle_deg"`
	} `json:"ring"`
	Text struct {
		Content         string  `json:"content"`
		FontPath        string  `json:"font_path"`
		Size            float64 `json:"size"`
		Depth           float64 `json:"depth"`
		LetterSpacing   float64 `json:"letter_spacing"`
		MaxArcBudgetDeg float64 `json:"max_arc_budget_deg"`
		Orientation     string  `json:"orientation"`
		Raised          bool    `json:"raised"`
		Recessed        bool    `json:"recessed"`
	} `json:"text"`
	Material struct {
		Name    string  `json:"name"`
		Density float64 `json:"density"`
	} `json:"material"`
	Output struct {
		STLFilename    string `json:"stl_filename"`
		LogFilename    string `json:"log_filename"`
		ReportFilename string `json:"report_filename"`
	} `json:"output"`
}

type report struct {
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
	StartDeg  float64 `json:"text_start_angle_deg"`
	EndDeg    float64 `json:"text_end_angle_deg"`
	SpanDeg   float64 `json:"text_span_deg"`
	Truncated int     `json:"truncated_glyphs"`
	VolumeMM3 float64 `json:"volume_mm3"`
	VolumeCM3 float64 `json:"volume_cm3"`
	Material  string  `json:"material"`
	Density   float64 `json:"density_g_cm3"`
	MassGrams float64 `json:"mass_g"`
	STLFile   string  `json:"stl_file"`
}

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	outPath := flag.String("out", "", "override output STL path")
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(exitValidation)
	}
	os.Exit(run(*configPath, *outPath))
}

func run(configPath, outOverride string) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		if os.IsNotExist(errors.Unwrap(err)) || os.IsNotExist(err) {
			return exitResource
		}
		return exitValidation
	}
	if outOverride != "" {
		cfg.Output.STLFilename = outOverride
	}
	if cfg.Output.STLFilename == "" {
		fmt.Fprintln(os.Stderr, "config: output.stl_filename is required")
		return exitValidation
	}

	logger, logCloser, err := ringtext.NewLogger(os.Stderr, cfg.Output.LogFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		return exitResource
	}
	defer logCloser.Close()

	fontBytes, err := os.ReadFile(cfg.Text.FontPath)
	if err != nil {
		logger.Error("read font", "path", cfg.Text.FontPath, "err", err)
		return exitResource
	}
	fonts := ringtext.NewFontLibrary()
	fontID := filepath.Base(cfg.Text.FontPath)
	if err := fonts.AddTTF(fontID, fontBytes); err != nil {
		logger.Error("parse font", "path", cfg.Text.FontPath, "err", err)
		return exitResource
	}

	ring := ringtext.RingSpecFromDiameters(
		cfg.Ring.InnerDiameter, cfg.Ring.OuterDiameter, cfg.Ring.Height)
	ring.RadialSegments = cfg.Ring.RadialSegs
	ring.StartAngle = cfg.Ring.StartAngleDeg * math.Pi / 180
	ring.EndAngle = cfg.Ring.EndAngleDeg * math.Pi / 180

	orientation := ringtext.Sleeping
	switch cfg.Text.Orientation {
	case "", "sleeping":
	case "standing":
		orientation = ringtext.Standing
	default:
		logger.Error("invalid orientation", "orientation", cfg.Text.Orientation)
		return exitValidation
	}
	text := ringtext.TextSpec{
		Text:          cfg.Text.Content,
		FontID:        fontID,
		Size:          cfg.Text.Size,
		Depth:         cfg.Text.Depth,
		LetterSpacing: cfg.Text.LetterSpacing,
		MaxArcBudget:  cfg.Text.MaxArcBudgetDeg * math.Pi / 180,
		Orientation:   orientation,
		Raised:        cfg.Text.Raised,
		Recessed:      cfg.Text.Recessed,
	}

	gen := &ringtext.Generator{Source: fonts, Logger: logger}
	res, err := gen.Generate(ring, text)
	if err != nil {
		logger.Error("generation failed", "err", err)
		return exitCode(err)
	}

	mat := material(cfg)
	mass := ringtext.EstimateMass(res.Mesh, mat)
	logger.Info("estimated mass",
		"volumeMM3", mass.VolumeMM3, "material", mat.Name,
		"density", mat.Density, "grams", mass.Grams)

	if err := ringtext.ExportSTL(cfg.Output.STLFilename, res.Mesh); err != nil {
		logger.Error("export failed", "err", err)
		return exitCode(err)
	}
	logger.Info("exported solid", "path", cfg.Output.STLFilename)

	if cfg.Output.ReportFilename != "" {
		if err := writeReport(cfg, res, mass); err != nil {
			logger.Error("write report", "err", err)
			return exitResource
		}
		logger.Info("wrote report", "path", cfg.Output.ReportFilename)
	}
	return exitOK
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func material(cfg *config) ringtext.Material {
	if m, ok := ringtext.MaterialByName(cfg.Material.Name); ok {
		return m
	}
	if cfg.Material.Density > 0 {
		name := cfg.Material.Name
		if name == "" {
			name = "custom"
		}
		return ringtext.Material{Name: name, Density: cfg.Material.Density}
	}
	return ringtext.PLA
}

func writeReport(cfg *config, res *ringtext.Result, mass ringtext.MassEstimate) error {
	deg := func(rad float64) float64 { return rad * 180 / math.Pi }
	rep := report{
		Timestamp: time.Now().Format(time.RFC3339),
		Text:      res.Text.Text,
		StartDeg:  deg(res.Layout.Start()),
		EndDeg:    deg(res.Layout.End()),
		SpanDeg:   deg(res.Layout.Span),
		Truncated: res.Layout.Truncated,
		VolumeMM3: mass.VolumeMM3,
		VolumeCM3: mass.VolumeCM3,
		Material:  mass.Material.Name,
		Density:   mass.Material.Density,
		MassGrams: mass.Grams,
		STLFile:   cfg.Output.STLFilename,
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.Output.ReportFilename, append(data, '\n'), 0o644)
}

func exitCode(err error) int {
	switch {
	case ringtext.IsKind(err, ringtext.KindValidation):
		return exitValidation
	case ringtext.IsKind(err, ringtext.KindResource):
		return exitResource
	case ringtext.IsKind(err, ringtext.KindGeometry):
		return exitGeometry
	default:
		return exitResource
	}
}

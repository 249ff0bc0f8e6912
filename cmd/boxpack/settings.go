package main

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BoxPack/internal/importer"
	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/piwi3910/BoxPack/internal/project"
	"github.com/spf13/cobra"
)

// jobFlags are the container and settings flags shared by the packing
// commands. Unset flags fall back to the application config.
type jobFlags struct {
	container     string
	preset        string
	rotation      string
	heuristic     string
	binPolicy     string
	algorithm     string
	epsilon       float64
	maxContainers int
	dxfHeight     float64
}

func (f *jobFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.container, "container", "c", "", "container size as WxHxD")
	fl.StringVarP(&f.preset, "preset", "p", "", "container preset name or ID from the inventory")
	fl.StringVarP(&f.rotation, "rotation", "r", "", "allowed rotation: none, verticalAxisOnly or allAxes")
	fl.StringVar(&f.heuristic, "heuristic", "", "placement heuristic: first-fit or lowest-anchor")
	fl.StringVar(&f.binPolicy, "bin-policy", "", "containers tried per item: current or all-open")
	fl.StringVarP(&f.algorithm, "algorithm", "a", "", "item order: stream, volume-desc or genetic")
	fl.Float64Var(&f.epsilon, "epsilon", 0, "comparison tolerance (0 derives it from the container)")
	fl.IntVar(&f.maxContainers, "max-containers", 0, "maximum containers to open (0 = unlimited)")
	fl.Float64Var(&f.dxfHeight, "dxf-height", 0, "item height for DXF footprint imports")
}

// resolve returns the container and settings for a job.
func (f *jobFlags) resolve(cmd *cobra.Command) (model.Dimensions, model.PackSettings, error) {
	var settings model.PackSettings
	appConfig.ApplyToSettings(&settings)

	container := appConfig.DefaultContainer
	switch {
	case f.container != "":
		d, err := model.ParseDimensions(f.container)
		if err != nil {
			return model.Dimensions{}, settings, fmt.Errorf("--container: %w", err)
		}
		container = d
	case f.preset != "":
		d, err := findPreset(f.preset)
		if err != nil {
			return model.Dimensions{}, settings, err
		}
		container = d
	}

	fl := cmd.Flags()
	if fl.Changed("rotation") {
		settings.AllowRotation = model.RotationMode(f.rotation)
	}
	if fl.Changed("heuristic") {
		settings.Heuristic = model.Heuristic(f.heuristic)
	}
	if fl.Changed("bin-policy") {
		settings.BinPolicy = model.BinPolicy(f.binPolicy)
	}
	if fl.Changed("algorithm") {
		settings.Algorithm = model.Algorithm(f.algorithm)
	}
	if fl.Changed("epsilon") {
		settings.Epsilon = f.epsilon
	}
	settings.MaxContainers = f.maxContainers

	if err := settings.Validate(container); err != nil {
		return model.Dimensions{}, settings, err
	}
	return container, settings, nil
}

// findPreset looks up a preset by ID, then by name.
func findPreset(key string) (model.Dimensions, error) {
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		return model.Dimensions{}, fmt.Errorf("loading inventory: %w", err)
	}
	if p := inv.FindContainerByID(key); p != nil {
		return p.Dimensions, nil
	}
	if p := inv.FindContainerByName(key); p != nil {
		return p.Dimensions, nil
	}
	return model.Dimensions{}, fmt.Errorf("unknown container preset %q (see 'boxpack presets')", key)
}

// loadItems imports an item list, printing warnings and failing on errors.
func (f *jobFlags) loadItems(path string) ([]model.Item, error) {
	res := importer.ImportFile(path, f.dxfHeight)
	for _, w := range res.Warnings {
		logger.Warn("import", "file", path, "warning", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("importing %s:\n  %s", path, strings.Join(res.Errors, "\n  "))
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("importing %s: no items found", path)
	}
	return res.Items, nil
}

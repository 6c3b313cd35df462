package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

type ExportData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(model, integrator string, dt, duration float64, params map[string]float64, result *sim.Result) ExportData {
	data := ExportData{
		Model:      model,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Params:     params,
		Metrics:    result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// ExportJSON writes a run as indented JSON to path.
func ExportJSON(path, model, integrator string, dt, duration float64, params map[string]float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, exportData(model, integrator, dt, duration, params, result))
}

// ExportJSONStdout writes a run as indented JSON to standard output.
func ExportJSONStdout(model, integrator string, dt, duration float64, params map[string]float64, result *sim.Result) error {
	return writeExport(os.Stdout, exportData(model, integrator, dt, duration, params, result))
}

func writeExport(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes a run's trajectory as time,cells rows to path.
func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}

// ExportCSVStdout writes a run's trajectory as CSV to standard output.
func ExportCSVStdout(result *sim.Result) error {
	return WriteCSV(os.Stdout, result)
}

func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "cells"}); err != nil {
		return err
	}
	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

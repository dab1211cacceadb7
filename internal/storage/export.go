package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/fibersim/internal/sim"
)

type ExportData struct {
	Drive    string             `json:"drive"`
	Dt       float64            `json:"dt"`
	Coupling float64            `json:"coupling"`
	Ticks    int                `json:"ticks"`
	Times    []float64          `json:"times"`
	Averages []float64          `json:"averages"`
	Totals   []float64          `json:"totals"`
	Forces   [][]float64        `json:"forces"`
	Metrics  map[string]float64 `json:"metrics"`
}

func exportData(drive string, dt, coupling float64, result *sim.Result) ExportData {
	return ExportData{
		Drive:    drive,
		Dt:       dt,
		Coupling: coupling,
		Ticks:    result.TicksRun,
		Times:    result.Times,
		Averages: result.Averages,
		Totals:   result.Totals,
		Forces:   result.Forces,
		Metrics:  result.Metrics,
	}
}

func ExportJSON(path string, drive string, dt, coupling float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(drive, dt, coupling, result))
}

func ExportJSONStdout(drive string, dt, coupling float64, result *sim.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(drive, dt, coupling, result))
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeForcesCSV(file, result)
}

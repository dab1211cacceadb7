package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/fibersim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Drive     string             `json:"drive"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Coupling  float64            `json:"coupling"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(drive string, dt float64, ticks int, seed int64, coupling float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", drive, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Drive:     drive,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Ticks:     ticks,
		Coupling:  coupling,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "forces.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeForcesCSV(csvFile, result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeForcesCSV(f *os.File, result *sim.Result) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	if len(result.Forces) == 0 {
		return nil
	}

	header := []string{"time", "avg", "total"}
	for i := range result.Forces[0] {
		header = append(header, fmt.Sprintf("f%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Forces {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Averages[i], 'f', 6, 64),
			strconv.FormatFloat(result.Totals[i], 'f', 6, 64),
		}
		for _, val := range result.Forces[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads a saved run back as times, per-tick averages and the
// per-fiber force rows.
func (s *Store) LoadSeries(runID string) ([]float64, []float64, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "forces.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, [][]float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	averages := make([]float64, 0, len(records)-1)
	forces := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		avg, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		averages = append(averages, avg)

		row := make([]float64, 0, len(record)-3)
		for j := 3; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		forces = append(forces, row)
	}

	return times, averages, forces, nil
}

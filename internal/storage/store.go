// Package storage persists frame captures: one directory per capture holding
// metadata.json, a per-frame statistics CSV and the final frame as JSON.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/vizvault/internal/export"
	"github.com/san-kum/vizvault/internal/stats"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	lastFile     = "last_frame.json"
)

var csvHeader = []string{"time", "index", "count", "radius", "min_y", "max_y", "mean_y"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type CaptureMetadata struct {
	ID         string             `json:"id"`
	Scene      string             `json:"scene"`
	Title      string             `json:"title"`
	Timestamp  time.Time          `json:"timestamp"`
	SeedPolicy string             `json:"seed_policy"`
	Seed       int32              `json:"seed"`
	FPS        int                `json:"fps"`
	Frames     int                `json:"frames"`
	Duration   float64            `json:"duration"`
	Params     map[string]any     `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a capture and returns its id. meta.ID and meta.Timestamp are
// filled in when empty.
func (s *Store) Save(meta CaptureMetadata, result *Result) (string, error) {
	now := time.Now()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	}
	meta.Frames = len(result.Times)
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if result.Last != nil {
		if err := export.ExportJSON(filepath.Join(runDir, lastFile), *result.Last); err != nil {
			return "", err
		}
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i, sum := range result.Samples {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatUint(result.Indices[i], 10),
			strconv.Itoa(sum.Count),
			strconv.FormatFloat(sum.Radius, 'f', 6, 64),
			strconv.FormatFloat(sum.MinY, 'f', 6, 64),
			strconv.FormatFloat(sum.MaxY, 'f', 6, 64),
			strconv.FormatFloat(sum.MeanY, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable capture, newest first.
func (s *Store) List() ([]CaptureMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CaptureMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]CaptureMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(id string) (*CaptureMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta CaptureMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the per-frame statistics of a capture.
func (s *Store) LoadSamples(id string) ([]stats.Summary, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []stats.Summary{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	samples := make([]stats.Summary, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(csvHeader) {
			continue
		}
		var f [7]float64
		ok := true
		for j := range f {
			if f[j], err = strconv.ParseFloat(record[j], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		times = append(times, f[0])
		samples = append(samples, stats.Summary{Count: int(f[2]), Radius: f[3], MinY: f[4], MaxY: f[5], MeanY: f[6]})
	}

	return samples, times, nil
}

// LoadLast reads the final frame of a capture.
func (s *Store) LoadLast(id string) (*export.ExportData, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, lastFile))
	if err != nil {
		return nil, err
	}
	var out export.ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/juxley/linksim/internal/geom"
	"github.com/juxley/linksim/internal/mech"
)

// Store persists simulation runs under a base directory, one directory
// per run holding metadata.json and trajectories.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one persisted run.
type RunMetadata struct {
	ID        string    `json:"id"`
	Mechanism string    `json:"mechanism"`
	Timestamp time.Time `json:"timestamp"`
	Steps     int       `json:"steps"`
	Tracked   []string  `json:"tracked"`
	Events    int       `json:"events"`
}

// Save writes a run's metadata and trajectories and returns the run ID.
func (s *Store) Save(mechanism string, rec *mech.Record) (string, error) {
	runID := fmt.Sprintf("%s_%d", mechanism, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	tracked := make([]string, 0, len(rec.Trajectories))
	for name := range rec.Trajectories {
		tracked = append(tracked, name)
	}
	sort.Strings(tracked)

	meta := RunMetadata{
		ID:        runID,
		Mechanism: mechanism,
		Timestamp: time.Now(),
		Steps:     rec.StepsCompleted,
		Tracked:   tracked,
		Events:    len(rec.Events),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectories.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(tracked) == 0 {
		return runID, nil
	}

	header := []string{"step"}
	for _, name := range tracked {
		header = append(header, name+"_x", name+"_y")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := 0; i < rec.StepsCompleted; i++ {
		row := []string{strconv.Itoa(i + 1)}
		for _, name := range tracked {
			p := rec.Trajectories[name][i]
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 9, 64),
				strconv.FormatFloat(p.Y, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every persisted run.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectories reads a run's tracked joint paths back into memory.
func (s *Store) LoadTrajectories(runID string) (map[string]mech.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectories.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make(map[string]mech.Trajectory)
	if len(records) < 2 {
		return out, nil
	}

	header := records[0]
	// Columns come in _x/_y pairs after the step column.
	names := make([]string, 0, (len(header)-1)/2)
	for i := 1; i+1 < len(header); i += 2 {
		names = append(names, header[i][:len(header[i])-2])
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		for k, name := range names {
			x, err := strconv.ParseFloat(record[1+2*k], 64)
			if err != nil {
				continue
			}
			y, err := strconv.ParseFloat(record[2+2*k], 64)
			if err != nil {
				continue
			}
			out[name] = append(out[name], geom.Point{X: x, Y: y})
		}
	}

	return out, nil
}

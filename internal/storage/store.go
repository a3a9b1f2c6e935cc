package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.db"
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
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Timestamp      time.Time          `json:"timestamp"`
	Integrator     string             `json:"integrator"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	NumBodies      int                `json:"num_bodies"`
	Steps          int                `json:"steps"`
	Frames         int                `json:"frames"`
	FinalTime      float64            `json:"final_time"`
	BaselineEnergy float64            `json:"baseline_energy"`
	EnergyError    float64            `json:"energy_error"`
	Metrics        map[string]float64 `json:"metrics"`
}

// storedMetadata shadows the float fields that go non-finite when a run
// diverges.
type storedMetadata struct {
	plainMetadata
	BaselineEnergy Float            `json:"baseline_energy"`
	EnergyError    Float            `json:"energy_error"`
	Metrics        map[string]Float `json:"metrics"`
}

type plainMetadata RunMetadata

func (m RunMetadata) MarshalJSON() ([]byte, error) {
	stored := storedMetadata{
		plainMetadata:  plainMetadata(m),
		BaselineEnergy: Float(m.BaselineEnergy),
		EnergyError:    Float(m.EnergyError),
	}
	if m.Metrics != nil {
		stored.Metrics = make(map[string]Float, len(m.Metrics))
		for k, v := range m.Metrics {
			stored.Metrics[k] = Float(v)
		}
	}
	return json.Marshal(stored)
}

func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	var stored storedMetadata
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	*m = RunMetadata(stored.plainMetadata)
	m.BaselineEnergy = float64(stored.BaselineEnergy)
	m.EnergyError = float64(stored.EnergyError)
	m.Metrics = nil
	if stored.Metrics != nil {
		m.Metrics = make(map[string]float64, len(stored.Metrics))
		for k, v := range stored.Metrics {
			m.Metrics[k] = float64(v)
		}
	}
	return nil
}

// Save writes the run metadata and its recorded frames to a new run
// directory and returns the run id. On failure the directory is removed.
// Results of runs that diverged are stored as they are.
func (s *Store) Save(name string, dt, duration float64, result *sim.Result) (runID string, err error) {
	now := time.Now()
	runID = fmt.Sprintf("%s_%s_%d", name, result.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	numBodies := 0
	if len(result.Frames) > 0 {
		numBodies = len(result.Frames[0].Bodies)
	}

	meta := RunMetadata{
		ID:             runID,
		Name:           name,
		Timestamp:      now,
		Integrator:     result.Method.String(),
		Dt:             dt,
		Duration:       duration,
		NumBodies:      numBodies,
		Steps:          result.StepsTaken,
		Frames:         len(result.Frames),
		FinalTime:      result.FinalTime,
		BaselineEnergy: result.BaselineEnergy,
		EnergyError:    result.EnergyError,
		Metrics:        result.Metrics,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Frames); err != nil {
		return "", fmt.Errorf("write trajectory: %w", err)
	}

	// Metadata goes last so List never sees a run without its trajectory.
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every stored run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	path := filepath.Join(s.baseDir, runID, trajectoryFile)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return readTrajectory(path)
}

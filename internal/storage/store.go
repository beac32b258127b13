package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/matcalc/internal/matrix"
)

const (
	metadataFile = "metadata.json"
	resultFile   = "result.csv"
)

// ErrNoMatrix is returned by LoadMatrix for entries that produced a scalar.
var ErrNoMatrix = errors.New("storage: entry has no result matrix")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type Entry struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
	Inputs    []Shape   `json:"inputs"`
	Scalar    *int      `json:"scalar,omitempty"`
	Result    *Shape    `json:"result,omitempty"`
	Value     *float64  `json:"value,omitempty"`
}

func shapeOf(m *matrix.Matrix) Shape {
	r, c := m.Shape()
	return Shape{Rows: r, Cols: c}
}

func shapes(inputs []*matrix.Matrix) []Shape {
	out := make([]Shape, len(inputs))
	for i, m := range inputs {
		out[i] = shapeOf(m)
	}
	return out
}

// Save records an operation that produced a matrix. scalar is non-nil for
// scaling.
func (s *Store) Save(op string, inputs []*matrix.Matrix, scalar *int, result *matrix.Matrix) (string, error) {
	res := shapeOf(result)
	entry := s.newEntry(op, inputs)
	entry.Scalar = scalar
	entry.Result = &res

	dir, err := s.writeMetadata(entry)
	if err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(dir, resultFile), result); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// SaveValue records an operation that produced a single number.
func (s *Store) SaveValue(op string, inputs []*matrix.Matrix, value float64) (string, error) {
	entry := s.newEntry(op, inputs)
	entry.Value = &value
	if _, err := s.writeMetadata(entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (s *Store) newEntry(op string, inputs []*matrix.Matrix) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Operation: op,
		Timestamp: s.now(),
		Inputs:    shapes(inputs),
	}
}

func (s *Store) writeMetadata(entry *Entry) (string, error) {
	dir := filepath.Join(s.baseDir, entry.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entry); err != nil {
		return "", err
	}
	return dir, nil
}

func writeCSV(path string, m *matrix.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range m.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all entries, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]Entry, error) {
	dirs, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirs))
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		entry, err := s.Load(d.Name())
		if err != nil {
			continue
		}
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *Store) Load(id string) (*Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("entry %s: %w", id, err)
	}
	return &entry, nil
}

func (s *Store) LoadMatrix(id string) (*matrix.Matrix, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, resultFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNoMatrix)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", id, err)
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		rows[i] = make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("entry %s row %d: %w", id, i, matrix.ErrParse)
			}
			rows[i][j] = v
		}
	}
	return matrix.FromRows(rows)
}

type exportData struct {
	Entry
	Rows [][]float64 `json:"rows,omitempty"`
}

// ExportJSON writes the entry and, if present, its result grid to w.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	entry, err := s.Load(id)
	if err != nil {
		return err
	}

	data := exportData{Entry: *entry}
	if entry.Result != nil {
		m, err := s.LoadMatrix(id)
		if err != nil {
			return err
		}
		data.Rows = m.Rows()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

package testutil

import (
	"errors"
	"sort"
	"sync"

	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/repository"
)

var _ repository.RunDAO = (*MemoryRunDAO)(nil)

// MemoryRunDAO keeps run history in memory.
type MemoryRunDAO struct {
	mu        sync.Mutex
	runs      []model.Run
	InsertErr error
	closed    bool
}

func NewMemoryRunDAO() *MemoryRunDAO {
	return &MemoryRunDAO{}
}

func (d *MemoryRunDAO) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *MemoryRunDAO) Insert(run model.Run) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.InsertErr != nil {
		return d.InsertErr
	}
	for _, r := range d.runs {
		if r.ID == run.ID {
			return errors.New("duplicate run id")
		}
	}
	d.runs = append(d.runs, run)
	return nil
}

func (d *MemoryRunDAO) GetAll() ([]model.Run, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]model.Run(nil), d.runs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (d *MemoryRunDAO) CountSucceeded(url string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, r := range d.runs {
		if r.URL == url && !r.HasError {
			count++
		}
	}
	return count, nil
}

// Closed reports whether Close was called.
func (d *MemoryRunDAO) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

package devserver

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/dom/memdom"
)

// Problem is a markup defect that would stop the counter from binding.
type Problem struct {
	ID    string
	Count int
	Want  int
}

func (p Problem) String() string {
	if p.Count == 0 {
		return fmt.Sprintf("no element with id %q", p.ID)
	}
	return fmt.Sprintf("%d elements with id %q, want %d", p.Count, p.ID, p.Want)
}

// Check parses page markup and reports every element id from cfg that
// does not occur exactly once. With a mount configured the mount element
// is required and the display and trigger ids must be absent, since the
// counter renders them itself.
func Check(r io.Reader, cfg config.Config) ([]Problem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	doc, err := memdom.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "check markup")
	}

	want := map[string]int{cfg.DisplayID: 1, cfg.TriggerID: 1}
	order := []string{cfg.DisplayID, cfg.TriggerID}
	if cfg.Mount != "" {
		want = map[string]int{cfg.Mount: 1, cfg.DisplayID: 0, cfg.TriggerID: 0}
		order = []string{cfg.Mount, cfg.DisplayID, cfg.TriggerID}
	}
	var problems []Problem
	for _, id := range order {
		if n := doc.CountByID(id); n != want[id] {
			problems = append(problems, Problem{ID: id, Count: n, Want: want[id]})
		}
	}
	return problems, nil
}

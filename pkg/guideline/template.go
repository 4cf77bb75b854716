package guideline

import (
	"github.com/leapstack-labs/articlecheck/pkg/checklist"
	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// Template turns one guideline record into a submission checklist with a
// task per declared field.
func Template(g core.Guideline) *checklist.Checklist {
	cl := &checklist.Checklist{}
	fields := []struct {
		label string
		value string
	}{
		{"Title limit", g.TitleLimit},
		{"Abstract limit", g.AbstractLimit},
		{"Word limit", g.WordLimit},
		{"Figure limit", g.FigureLimit},
		{"Reference limit", g.ReferenceLimit},
		{"Structure", g.Structure},
		{"Other requirements", g.OtherRequirements},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		cl.AddTask(checklist.NewTask(f.label + ": " + f.value))
	}
	return cl
}

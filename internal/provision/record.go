package provision

// Outcome describes what applying an entry would do.
type Outcome string

const (
	OutcomeCreate    Outcome = "create"
	OutcomeChange    Outcome = "change"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeDirectory Outcome = "directory"
)

// Record holds the values a run derives for one entry.
type Record struct {
	Path    string
	Kind    Kind
	Current string
	Next    string
	Diff    Diff
}

// Outcome classifies the record.
func (r Record) Outcome() Outcome {
	switch {
	case r.Kind != KindFile:
		return OutcomeDirectory
	case r.Current == r.Next:
		return OutcomeUnchanged
	case r.Current == "":
		return OutcomeCreate
	default:
		return OutcomeChange
	}
}

// Plan is the side-effect free outcome of resolving a set against a project.
type Plan struct {
	RunID       string
	ProjectPath string
	Answers     Answers
	Records     []Record
}

// Changed returns the records that would be written after confirmation.
func (p *Plan) Changed() []Record {
	var out []Record
	for _, r := range p.Records {
		if a := r.Outcome(); a == OutcomeCreate || a == OutcomeChange {
			out = append(out, r)
		}
	}
	return out
}

func (p *Plan) recordMap() map[string]Record {
	m := make(map[string]Record, len(p.Records))
	for _, r := range p.Records {
		m[r.Path] = r
	}
	return m
}

package provision

// Combine merges sets left to right into a new Set. Inputs are not modified.
//
// A path present in one set is carried over unchanged. For a path present in
// several sets, step lists are concatenated with duplicates removed
// (first occurrence wins), questions are concatenated and deduplicated by
// name, and contents are composed: the later generator receives the earlier
// result as its current contents. A later static value replaces whatever came
// before it.
func Combine(sets ...*Set) *Set {
	out := NewSet()
	for _, s := range sets {
		_ = s.Each(func(p string, e Entry) error {
			prev, ok := out.Get(p)
			if !ok {
				out.Add(p, e)
				return nil
			}
			out.Add(p, mergeEntries(prev, e))
			return nil
		})
	}
	return out
}

func mergeEntries(a, b Entry) Entry {
	merged := Entry{
		Kind:        a.Kind,
		Contents:    combineContents(a.Contents, b.Contents),
		Questions:   uniqueQuestions(append(append([]Question(nil), a.Questions...), b.Questions...)),
		Before:      uniqueSteps(a.Before, b.Before),
		After:       uniqueSteps(a.After, b.After),
		Command:     uniqueSteps(a.Command, b.Command),
		Permissions: a.Permissions,
	}
	if b.Kind == KindDirectory {
		merged.Kind = KindDirectory
	}
	if b.Permissions != nil {
		merged.Permissions = b.Permissions
	}
	if len(a.Hooks) > 0 || len(b.Hooks) > 0 {
		merged.Hooks = make(map[Stage][]Step)
		for stage, steps := range a.Hooks {
			merged.Hooks[stage] = uniqueSteps(steps, b.Hooks[stage])
		}
		for stage, steps := range b.Hooks {
			if _, ok := merged.Hooks[stage]; !ok {
				merged.Hooks[stage] = uniqueSteps(nil, steps)
			}
		}
	}
	return merged
}

// combineContents composes first then second.
func combineContents(first, second Contents) Contents {
	switch {
	case second.IsZero():
		return first
	case first.IsZero():
		return second
	case second.IsStatic():
		return second
	}
	firstGen, secondGen := first.generator(), second.generator()
	return Generate(func(current string, answers Answers) (string, error) {
		intermediate, err := firstGen(current, answers)
		if err != nil {
			return "", err
		}
		return secondGen(intermediate, answers)
	})
}

func uniqueSteps(lists ...[]Step) []Step {
	var out []Step
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, s := range list {
			k := s.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, s)
		}
	}
	return out
}

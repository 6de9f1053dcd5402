package registry

// FilterCompleted keeps projects whose status equals doneStatus, dropping the
// report's own day so the generator never counts itself. Order is preserved.
func FilterCompleted(projects []Project, doneStatus string, selfDay int) []Project {
	var out []Project
	for _, p := range projects {
		if p.Status == doneStatus && p.DayIndex != selfDay {
			out = append(out, p)
		}
	}
	return out
}

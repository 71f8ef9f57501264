package note

// AddFunc adds a note about a subject fixed beforehand.
type AddFunc func(t Template, vars ...Var)

// Collector is an append-only note store owned by a single analysis.
// It is not safe for concurrent use.
type Collector struct {
	notes []Note
}

func NewCollector() *Collector {
	return &Collector{notes: make([]Note, 0)}
}

func (c *Collector) Add(subject string, t Template, vars ...Var) {
	n := Note{
		Subject:  subject,
		ID:       t.ID,
		Category: t.Category,
		Level:    t.Level,
		summary:  t.Summary,
	}

	if len(vars) > 0 {
		n.Vars = make(map[string]string, len(vars))
		for _, v := range vars {
			n.Vars[v.Key] = v.Value
		}
	}

	c.notes = append(c.notes, n)
}

// Bind returns an AddFunc reporting on subject.
func (c *Collector) Bind(subject string) AddFunc {
	return func(t Template, vars ...Var) { c.Add(subject, t, vars...) }
}

// Merge appends the notes of other, keeping their order.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.notes = append(c.notes, other.notes...)
}

// Notes returns the notes in emission order.
func (c *Collector) Notes() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

func (c *Collector) Len() int { return len(c.notes) }

// Find returns the notes with the given template id.
func (c *Collector) Find(id string) []Note {
	found := make([]Note, 0)
	for _, n := range c.notes {
		if n.ID == id {
			found = append(found, n)
		}
	}
	return found
}

func (c *Collector) Has(id string) bool { return len(c.Find(id)) > 0 }

// IDs lists the template ids in emission order.
func (c *Collector) IDs() []string {
	ids := make([]string, len(c.notes))
	for idx, n := range c.notes {
		ids[idx] = n.ID
	}
	return ids
}

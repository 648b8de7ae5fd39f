package graph

// Cycles finds all directed cycles in the diagram using Tarjan's strongly
// connected components algorithm. Each cycle is returned as a list of node
// ids. The diagram stores no self-loops, so any component with more than
// one member is a genuine cycle.
func (d *Diagram) Cycles() [][]string {
	t := &tarjan{
		d:       d,
		onStack: make(map[string]bool),
		indices: make(map[string]int),
		lowLink: make(map[string]int),
	}
	for _, id := range d.order {
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}
	return t.sccs
}

type tarjan struct {
	d       *Diagram
	index   int
	stack   []string
	onStack map[string]bool
	indices map[string]int
	lowLink map[string]int
	sccs    [][]string
}

func (t *tarjan) strongConnect(id string) {
	t.indices[id] = t.index
	t.lowLink[id] = t.index
	t.index++

	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, succ := range t.d.Successors(id) {
		if _, visited := t.indices[succ]; !visited {
			t.strongConnect(succ)
			t.lowLink[id] = min(t.lowLink[id], t.lowLink[succ])
		} else if t.onStack[succ] {
			t.lowLink[id] = min(t.lowLink[id], t.indices[succ])
		}
	}

	if t.lowLink[id] == t.indices[id] {
		var scc []string
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == id {
				break
			}
		}
		// Single-node components are not cycles.
		if len(scc) > 1 {
			t.sccs = append(t.sccs, scc)
		}
	}
}

package trie

// Graph is the read-only view of a trie used by the traversals.
type Graph interface {
	NumStates() int
	ForEachMove(s StateID, fn func(target StateID, c byte))
	IsTerm(s StateID) bool
}

// BFS visits every transition reachable from root in breadth-first order,
// calling fn(parent, child, c) when parent is dequeued. All transitions out
// of depth d states are visited before any transition out of depth d+1.
func BFS(g Graph, root StateID, fn func(parent, child StateID, c byte)) {
	queue := make([]StateID, 1, g.NumStates())
	queue[0] = root
	for head := 0; head < len(queue); head++ {
		parent := queue[head]
		g.ForEachMove(parent, func(child StateID, c byte) {
			fn(parent, child, c)
			queue = append(queue, child)
		})
	}
}

// ForEachWord calls fn for every terminal state in lexicographic order of
// the word spelled from the initial state. nth counts from 0. The word slice
// is reused between calls. It returns the number of words visited.
func ForEachWord(g Graph, fn func(nth int, word []byte, s StateID)) int {
	w := wordWalker{g: g, fn: fn}
	w.visit(InitialState)
	return w.nth
}

type wordWalker struct {
	g    Graph
	fn   func(nth int, word []byte, s StateID)
	word []byte
	nth  int
}

func (w *wordWalker) visit(s StateID) {
	w.g.ForEachMove(s, func(child StateID, c byte) {
		w.word = append(w.word, c)
		if w.g.IsTerm(child) {
			w.fn(w.nth, w.word, child)
			w.nth++
		}
		w.visit(child)
		w.word = w.word[:len(w.word)-1]
	})
}

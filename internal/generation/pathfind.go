package generation

import "container/heap"

// Step costs for entering a cell
const (
	StepCost     = 1
	CityStepCost = 50
)

// EnterCost returns the cost of stepping onto terrain t
func EnterCost(t Terrain) int {
	if t == City {
		return CityStepCost
	}
	return StepCost
}

// ---- A* Pathfinding ----

// astarNode represents a node in the A* priority queue
type astarNode struct {
	point  Point
	gScore int // Cost from start
	fScore int // gScore + heuristic
	seq    int // insertion order, breaks fScore ties
	index  int
}

// priorityQueue implements heap.Interface for A*
type priorityQueue []*astarNode

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].fScore != pq[j].fScore {
		return pq[i].fScore < pq[j].fScore
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x interface{}) {
	n := x.(*astarNode)
	n.index = len(*pq)
	*pq = append(*pq, n)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*pq = old[:len(old)-1]
	return n
}

// FindPath uses A* to find the cheapest 4-connected path from start to goal.
// Only walkable cells may be entered; city cells cost CityStepCost.
// Returns nil, false if no path exists.
func FindPath(g *Grid, start, goal Point) ([]Point, bool) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, false
	}
	if start == goal {
		return []Point{start}, true
	}

	openSet := &priorityQueue{}
	heap.Init(openSet)

	gScore := map[Point]int{start: 0}
	cameFrom := make(map[Point]Point)
	closed := make(map[Point]bool)
	seq := 0

	heap.Push(openSet, &astarNode{point: start, fScore: start.Manhattan(goal)})

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*astarNode)
		// Stale entry: a cheaper route to this point was queued after it.
		if closed[current.point] || current.gScore > gScore[current.point] {
			continue
		}
		closed[current.point] = true

		if current.point == goal {
			return reconstructPath(cameFrom, start, goal), true
		}

		for _, neighbor := range current.point.Adjacent() {
			t, ok := g.At(neighbor)
			if !ok || !t.Walkable() || closed[neighbor] {
				continue
			}

			tentativeG := current.gScore + EnterCost(t)
			if oldG, exists := gScore[neighbor]; exists && tentativeG >= oldG {
				continue
			}
			cameFrom[neighbor] = current.point
			gScore[neighbor] = tentativeG
			seq++
			heap.Push(openSet, &astarNode{
				point:  neighbor,
				gScore: tentativeG,
				fScore: tentativeG + neighbor.Manhattan(goal),
				seq:    seq,
			})
		}
	}

	return nil, false
}

func reconstructPath(cameFrom map[Point]Point, start, goal Point) []Point {
	path := []Point{goal}
	for curr := goal; curr != start; {
		curr = cameFrom[curr]
		path = append(path, curr)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost sums the entry cost of every step after the first point.
// Out-of-bounds points count as a single step.
func PathCost(g *Grid, path []Point) int {
	cost := 0
	for i := 1; i < len(path); i++ {
		t, ok := g.At(path[i])
		if !ok {
			cost += StepCost
			continue
		}
		cost += EnterCost(t)
	}
	return cost
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

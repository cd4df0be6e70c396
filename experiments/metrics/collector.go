package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Pruning    bool
	Duration   time.Duration
	Nodes      int // positions visited
	Cutoffs    int // alpha-beta cutoffs
	Terminals  int // finished games reached inside the horizon
}

type MoveMetric struct {
	Step   int
	Player string // side that moved
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, depth int, pruning bool)
	AddNode()
	AddCutoff()
	AddTerminal()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	pruning    bool
	startTime  time.Time
	nodes      atomic.Int64
	cutoffs    atomic.Int64
	terminals  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int, pruning bool) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.pruning = pruning
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Pruning:    m.pruning,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Terminals:  int(m.terminals.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int, pruning bool) {}
func (m *dummyCollector) AddNode()                                  {}
func (m *dummyCollector) AddCutoff()                                {}
func (m *dummyCollector) AddTerminal()                              {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }

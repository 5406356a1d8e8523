package metrics

import (
	"jaguar/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int
	Duration  time.Duration
	Nodes     int // Positions visited, root included
	Leaves    int // Positions scored by the evaluator
	Cutoffs   int // Alpha-beta prunes
	Cycles    int // Lines cut short by a repeated position
	Terminals int // Positions decided without evaluation
	Value     float64
}

type MoveMetric struct {
	Step int
	Side game.Side
	Move string
	SearchMetric
}

type GameMetric struct {
	ID         string // uuid
	Winner     game.Side
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	DogsLeft   int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	AddCycle()
	AddTerminal()
	Complete(value float64) SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int32
	leaves    atomic.Int32
	cutoffs   atomic.Int32
	cycles    atomic.Int32
	terminals atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.cycles.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddCycle() {
	m.cycles.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete(value float64) SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Cycles:    int(m.cycles.Load()),
		Terminals: int(m.terminals.Load()),
		Value:     value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)                     {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddLeaf()                            {}
func (m *dummyCollector) AddCutoff()                          {}
func (m *dummyCollector) AddCycle()                           {}
func (m *dummyCollector) AddTerminal()                        {}
func (m *dummyCollector) Complete(value float64) SearchMetric { return SearchMetric{} }

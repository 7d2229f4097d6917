package core

// Cpu is a single core driven in discrete time. Schedulers tell it what to
// run and it records the resulting timeline.
type Cpu struct {
	clock    int
	timeline Timeline
}

func NewCpu() *Cpu {
	return &Cpu{timeline: make(Timeline, 0)}
}

func (c *Cpu) Clock() int {
	return c.clock
}

// Dispatch runs the process for units time units as one new block.
func (c *Cpu) Dispatch(p *RuntimeProcess, units int) {
	if units <= 0 {
		return
	}
	if units > p.Remaining {
		units = p.Remaining
	}
	c.timeline = append(c.timeline, TimelineBlock{ProcessID: p.ID, Start: c.clock, End: c.clock + units})
	c.clock += units
	p.Remaining -= units
}

// Step runs the process for a single time unit, extending the current block
// when the same process ran in the previous unit.
func (c *Cpu) Step(p *RuntimeProcess) {
	if p.Remaining == 0 {
		return
	}
	if !c.extend(p.ID, 1) {
		c.timeline = append(c.timeline, TimelineBlock{ProcessID: p.ID, Start: c.clock, End: c.clock + 1})
	}
	c.clock++
	p.Remaining--
}

// IdleUntil leaves the core idle up to time t. Adjacent idle time is
// merged into one block.
func (c *Cpu) IdleUntil(t int) {
	if t <= c.clock {
		return
	}
	units := t - c.clock
	if !c.extend(Idle, units) {
		c.timeline = append(c.timeline, TimelineBlock{ProcessID: Idle, Start: c.clock, End: t})
	}
	c.clock = t
}

func (c *Cpu) Timeline() Timeline {
	return c.timeline
}

func (c *Cpu) extend(id string, units int) bool {
	if len(c.timeline) == 0 {
		return false
	}
	last := &c.timeline[len(c.timeline)-1]
	if last.ProcessID != id || last.End != c.clock {
		return false
	}
	last.End += units
	return true
}

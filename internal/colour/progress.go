package colour

// progress converts completed work units into a non-decreasing fraction.
type progress struct {
	sink  ProgressFunc
	total float64
	done  float64
	last  float64
}

func newProgress(sink ProgressFunc, units int) *progress {
	return &progress{sink: sink, total: float64(max(units, 1))}
}

// step records one completed unit.
func (p *progress) step() {
	p.done++
	p.report(min(p.done/p.total, 1))
}

// complete reports 1.0.
func (p *progress) complete() {
	p.report(1)
}

func (p *progress) report(f float64) {
	if p.sink == nil || f < p.last {
		return
	}
	p.last = f
	p.sink(f)
}

package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/worldsbelow/ecs"
	"github.com/plus3/worldsbelow/sim"
)

type Report struct {
	// Configuration
	Ticks    int
	TickSize time.Duration
	Seed     uint64
	Intents  sim.Intents
	Realtime bool

	// Results
	TicksRun      int
	TotalTime     time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
	Scheduler     ecs.SchedulerStats
	Storage       ecs.StorageStats
	World         sim.Summary
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Worlds Below Simulation Report

## Run Configuration
- **Ticks:** {{.Ticks}} x {{.TickSize}}{{if .Realtime}} (wall-clock ticker){{end}}
- **Seed:** {{.Seed}}
- **Held Keys:** {{moves .Intents}}

## Performance Results
- **Ticks Run:** {{.TicksRun}}
- **Total Time:** {{.TotalTime}}
{{- if .UpdateTime.Samples}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- end}}

| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## World
- **Entities:** {{.Storage.LiveEntities}} live / {{.Storage.EntityCount}} allocated / {{.Storage.Capacity}} capacity
{{- if .World.HasPlayer}}
- **Player:** {{.World.Player}}
{{- else}}
- **Player:** none
{{- end}}
- **Breathing:** {{.World.Breathing}} of {{.World.WithHealth}}
- **Health:** avg {{health .World.AvgHealth}}, min {{health .World.MinHealth}}, max {{health .World.MaxHealth}}

| Component | Count |
|---|---|
{{- range .Storage.Stores}}
| {{.Name}} | {{.Count}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"health": func(h sim.Health) string {
			return fmt.Sprintf("%.1f", float32(h))
		},
		"moves": func(in sim.Intents) string {
			var held []string
			for _, k := range []struct {
				name string
				on   bool
			}{{"left", in.Left}, {"right", in.Right}, {"up", in.Up}, {"down", in.Down}} {
				if k.on {
					held = append(held, k.name)
				}
			}
			if len(held) == 0 {
				return "none"
			}
			return strings.Join(held, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

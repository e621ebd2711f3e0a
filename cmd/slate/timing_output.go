package main

import (
	"fmt"
	"io"
	"time"

	"slate/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range pipeline.Stages() {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum(pipeline.Stages()...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

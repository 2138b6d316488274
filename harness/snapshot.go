package harness

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteSnapshot emits one CSV row per level with the sweep key, mesh size
// and measured error, suitable for plotting convergence curves.
func (r *Result) WriteSnapshot(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write([]string{
		"case", "precision", "dim", "level", "elements", "dofs", "steps",
		"error", "mass_delta", "elapsed",
	}); err != nil {
		return
	}
	for i := range r.Sweeps {
		sw := &r.Sweeps[i]
		for _, rec := range sw.Records {
			row := []string{
				sw.Case,
				sw.Precision,
				strconv.Itoa(sw.Dim),
				strconv.Itoa(rec.Level),
				strconv.Itoa(rec.Elements),
				strconv.Itoa(rec.Dofs),
				strconv.Itoa(rec.Steps),
				strconv.FormatFloat(rec.Error, 'e', 12, 64),
				strconv.FormatFloat(rec.MassDelta, 'e', 6, 64),
				rec.Elapsed.String(),
			}
			if err = cw.Write(row); err != nil {
				return
			}
		}
	}
	cw.Flush()
	err = cw.Error()
	return
}

// Snapshot writes the CSV in the background: a failed or slow write must
// never stall or fail the sweep. The returned channel closes when the
// write has finished, for callers that want to wait.
func (r *Result) Snapshot(fileName string) (done chan struct{}) {
	done = make(chan struct{})
	go func() {
		defer close(done)
		f, err := os.Create(fileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
			return
		}
		defer f.Close()
		if err = r.WriteSnapshot(f); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		}
	}()
	return
}

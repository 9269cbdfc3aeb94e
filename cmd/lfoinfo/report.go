package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-lfo/dsp/core"
	"github.com/cwbudde/algo-lfo/dsp/lfo"
	"github.com/cwbudde/algo-lfo/dsp/window"
	"github.com/cwbudde/algo-lfo/internal/cpu"
	"github.com/cwbudde/algo-lfo/measure/thd"
	timestats "github.com/cwbudde/algo-lfo/stats/time"
)

const reportedHarmonics = 5

// printDump writes one row per tick: index, both phase registers and the
// rendered sample.
func printDump(w io.Writer, osc *lfo.Oscillator, shape lfo.Shape, ticks int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	if _, err := fmt.Fprintf(tw, "tick\tphase\tdivided\tvalue\n"); err != nil {
		return fmt.Errorf("failed to write dump header: %w", err)
	}

	for i := range ticks {
		osc.Tick()
		v := osc.Render(shape)
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", i, osc.Phase(), osc.DividedPhase(), v); err != nil {
			return fmt.Errorf("failed to write dump row: %w", err)
		}
	}

	return tw.Flush()
}

// printSummary renders ticks samples in blocks and prints configuration,
// capture statistics and a harmonic analysis using win.
func printSummary(w io.Writer, osc *lfo.Oscillator, shape lfo.Shape, ticks, blockSize int, win window.Type) error {
	m := osc.Mapper()
	rate := m.TickRate()

	capture := make([]int16, ticks)
	block := make([]int16, max(blockSize, 1))
	ss := timestats.NewStreamingStats()
	for off := 0; off < ticks; {
		n := min(len(block), ticks-off)
		osc.Process(block[:n], shape)
		ss.Update(block[:n])
		off += core.CopyInto(capture[off:], block[:n])
	}

	st := ss.Result()
	res, err := thd.AnalyzeSamples(capture, thd.Config{TickRate: rate, WindowType: win})
	if err != nil {
		return err
	}

	measured := 0.0
	if st.Period > 0 {
		measured = rate / st.Period
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		key string
		val string
	}{
		{"Shape", shape.String()},
		{"Tick rate", fmt.Sprintf("%g Hz", rate)},
		{"Pitch", fmt.Sprintf("%d (%.4f Hz)", osc.Pitch(), m.Frequency(osc.Pitch()))},
		{"Increment", fmt.Sprintf("%d", osc.Increment())},
		{"Divider", fmt.Sprintf("%d (divided pitch %d, %s phase)", osc.Divider(), osc.DividedPitch(), osc.PhaseSource())},
		{"Level", fmt.Sprintf("%d", osc.Level())},
		{"Ticks", fmt.Sprintf("%d", st.Length)},
		{"DC", fmt.Sprintf("%.6f", st.DC)},
		{"RMS", fmt.Sprintf("%.6f (%.2f dB)", st.RMS, st.RMS_dB)},
		{"Min / Max", fmt.Sprintf("%d @%d / %d @%d", st.Min, st.MinPos, st.Max, st.MaxPos)},
		{"Peak to peak", fmt.Sprintf("%d", st.PeakToPeak)},
		{"Zero crossings", fmt.Sprintf("%d", st.ZeroCrossings)},
		{"Period", fmt.Sprintf("%.2f ticks (%.4f Hz)", st.Period, measured)},
		{"Max step", fmt.Sprintf("%d @%d", st.MaxStep, st.MaxStepPos)},
		{"Window", win.String()},
		{"FFT fundamental", fmt.Sprintf("%.4f Hz (est. %.4f Hz)", res.FundamentalFreq, res.EstimatedFreq)},
		{"THD", fmt.Sprintf("%.4f%% (%.2f dB)", res.THD*100, res.THD_dB)},
		{"Odd / even HD", fmt.Sprintf("%.4f / %.4f", res.OddHD, res.EvenHD)},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.key, r.val); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	for i, h := range res.Harmonics[:min(len(res.Harmonics), reportedHarmonics)] {
		if _, err := fmt.Fprintf(tw, "H%d\t%.6f\n", i+2, h); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return tw.Flush()
}

// printBench times the tick and render path of osc and of a four-output bank
// built from the same settings.
func printBench(w io.Writer, osc *lfo.Oscillator, shape lfo.Shape, ticks int) error {
	start := time.Now()
	var sink int16
	for range ticks {
		osc.Tick()
		sink ^= osc.Render(shape)
	}
	single := time.Since(start)

	bank, err := benchBank(osc, 4)
	if err != nil {
		return err
	}

	out := make([]int16, bank.Len())
	start = time.Now()
	for range ticks {
		bank.Tick()
		bank.Render(out, shape)
		sink ^= out[0]
	}
	multi := time.Since(start)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Host\t%s\n", cpu.DetectFeatures())
	fmt.Fprintf(tw, "Shape\t%s\n", shape)
	fmt.Fprintf(tw, "Ticks\t%d\n", ticks)
	fmt.Fprintf(tw, "Oscillator\t%.2f ns/tick\n", nsPerTick(single, ticks))
	fmt.Fprintf(tw, "Bank x%d\t%.2f ns/tick\n", bank.Len(), nsPerTick(multi, ticks))
	fmt.Fprintf(tw, "Checksum\t%d\n", sink)
	return tw.Flush()
}

// benchBank builds an n-output quadrature bank rendering exactly like osc,
// so both timings go through the same render path.
func benchBank(osc *lfo.Oscillator, n int) (*lfo.Bank, error) {
	opts := []lfo.Option{
		lfo.WithPitch(osc.Pitch()),
		lfo.WithDivider(osc.Divider()),
		lfo.WithLevel(osc.Level()),
		lfo.WithPlateau(osc.Plateau()),
		lfo.WithPhaseSource(osc.PhaseSource()),
	}
	if code, ok := osc.Smoothing(); ok {
		opts = append(opts, lfo.WithSmoothingPitch(code))
	}

	bank, err := lfo.NewBank(osc.Mapper(), n, opts...)
	if err != nil {
		return nil, err
	}
	bank.SetSpread(1 << 14)
	return bank, nil
}

func nsPerTick(d time.Duration, ticks int) float64 {
	return float64(d.Nanoseconds()) / float64(ticks)
}

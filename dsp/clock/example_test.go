package clock_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-lfo/dsp/clock"
	"github.com/cwbudde/algo-lfo/dsp/lfo"
	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

func ExampleManual() {
	m, err := pitch.NewMapper(1000)
	if err != nil {
		panic(err)
	}
	o, err := lfo.New(m, lfo.WithPitch(pitch.Pitch10Hz))
	if err != nil {
		panic(err)
	}

	var src clock.Manual
	if err := src.Init(1000); err != nil {
		panic(err)
	}

	var last int16
	if err := src.Start(context.Background(), func() {
		o.Tick()
		last = o.Render(lfo.ShapeRamp)
	}); err != nil {
		panic(err)
	}
	defer src.Stop()

	src.Step(50)
	fmt.Println(o.Ticks(), last)

	// Output:
	// 50 0
}

package lfo_test

import (
	"fmt"

	"github.com/cwbudde/algo-lfo/dsp/lfo"
	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

func ExampleOscillator_Render() {
	m, err := pitch.NewMapper(1000)
	if err != nil {
		panic(err)
	}

	o, err := lfo.New(m, lfo.WithPitch(pitch.Pitch10Hz))
	if err != nil {
		panic(err)
	}

	// A 10 Hz cycle at 1 kHz lasts 100 ticks.
	for q := range 4 {
		for range 25 {
			o.Tick()
		}
		fmt.Printf("quarter %d: %d\n", q+1, o.Render(lfo.ShapeTriangle))
	}

	// Output:
	// quarter 1: 32767
	// quarter 2: -1
	// quarter 3: -32768
	// quarter 4: 0
}

func ExampleBank_SetSpread() {
	m, err := pitch.NewMapper(1000)
	if err != nil {
		panic(err)
	}

	b, err := lfo.NewBank(m, 4)
	if err != nil {
		panic(err)
	}
	b.SetSpread(1 << 14)

	out := make([]int16, b.Len())
	b.Render(out, lfo.ShapeSaw)
	fmt.Println(out)

	// Output:
	// [32767 16383 -1 -16385]
}

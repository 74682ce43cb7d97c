package mockphot_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-astro/measure/mockphot"
	"github.com/cwbudde/algo-astro/sed"
)

func ExampleRunner_Run() {
	grid, _ := sed.NewGrid(4000, 7000, 1000)

	// One flat spectrum through two top-hat filters covering equal
	// wavelength spans, so both bands collect the same flux.
	seds, _ := sed.NewSet(grid)
	_ = seds.AddSampled("flat", []float64{2, 2, 2, 2})

	filters, _ := sed.NewSet(grid)
	_ = filters.AddSampled("u", []float64{1, 1, 0, 0})
	_ = filters.AddSampled("v", []float64{0, 0, 1, 1})

	cfg := mockphot.DefaultConfig()
	cfg.Colors = true

	r, _ := mockphot.New(cfg)
	results, _ := r.Run(context.Background(), seds, filters)

	res := results[0]
	fmt.Printf("mag_u: %.3f\n", res.Mags[0][0])
	fmt.Printf("mag_v: %.3f\n", res.Mags[0][1])
	fmt.Printf("u-v: %.3f\n", res.Colors[0].M[0][1])
	// Output:
	// mag_u: 21.307
	// mag_v: 21.307
	// u-v: 0.000
}

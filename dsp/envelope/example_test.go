package envelope_test

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/envelope"
)

func ExampleADSR() {
	env, err := envelope.NewADSR(1000,
		envelope.WithAttack(0.002),
		envelope.WithDecay(0.002),
		envelope.WithSustain(0.5),
		envelope.WithRelease(0.002),
		envelope.WithADSRCurve(0),
	)
	if err != nil {
		panic(err)
	}

	env.Reset()
	for i := 0; i < 6; i++ {
		fmt.Printf("%s %.2f\n", env.Stage(), env.Next())
	}
	env.TriggerRelease()
	for !env.Done() {
		fmt.Printf("%s %.2f\n", env.Stage(), env.Next())
	}
	fmt.Println(env.Stage())
	// Output:
	// attack 0.00
	// attack 0.50
	// decay 1.00
	// decay 0.75
	// sustain 0.50
	// sustain 0.50
	// release 0.50
	// release 0.25
	// idle
}

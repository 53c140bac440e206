package spectrum

import "fmt"

func ExampleMagnitude() {
	mag := Magnitude([]complex128{3 + 4i, 1})
	fmt.Printf("%.1f %.1f\n", mag[0], mag[1])
	// Output:
	// 5.0 1.0
}

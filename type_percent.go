package marketsim

import "fmt"

// Percent is a relative change expressed in percent (1.5 means 1.5%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// change returns the relative change from a to b.
func change(from, to float64) Percent {
	if from == 0 {
		return 0
	}
	return Percent((to - from) / from * 100)
}

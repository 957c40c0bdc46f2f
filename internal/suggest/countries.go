package suggest

import (
	_ "embed"
	"fmt"
)

//go:embed countries.yaml
var countriesYAML []byte

// Countries returns the bundled country catalogue used by the demo.
func Countries() Items {
	items, err := decodeYAML(countriesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded country catalogue is invalid: %v", err))
	}
	return Items(items)
}

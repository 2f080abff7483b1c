package trendengine

import "fmt"

// InvalidBarError is returned by Engine.ProcessNewBar when a bar fails
// structural validation or breaks the stream's ordering contract. The
// engine's state is left untouched when this error is returned.
type InvalidBarError struct {
	Index  int
	Reason string
}

func (e *InvalidBarError) Error() string {
	return fmt.Sprintf("trendengine: bar %d rejected: %s", e.Index, e.Reason)
}

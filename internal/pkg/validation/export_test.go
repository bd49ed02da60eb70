package validation

import "time"

// SetNow fixa o relógio usado por "notfuture" e devolve a função de restauração.
func SetNow(fn func() time.Time) func() {
	prev := now
	now = fn
	return func() { now = prev }
}

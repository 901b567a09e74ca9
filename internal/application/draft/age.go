package draft

import (
	"fmt"
	"time"
)

// FormatRelativeAge describe en portugués cuánto hace que se guardó el borrador.
// Timestamps futuros (reloj desfasado) se tratan como "agora mesmo".
func FormatRelativeAge(saved, now time.Time) string {
	diff := now.Sub(saved)
	switch {
	case diff < time.Minute:
		return "agora mesmo"
	case diff < time.Hour:
		return ago(int(diff/time.Minute), "minuto")
	case diff < 24*time.Hour:
		return ago(int(diff/time.Hour), "hora")
	default:
		return ago(int(diff/(24*time.Hour)), "dia")
	}
}

func ago(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s atrás", n, unit)
}

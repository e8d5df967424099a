package http

import (
	"fmt"
	"html/template"
	"net"
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"recordbook-web/internal/dates"
)

// extractClientIP returns the caller's address, honoring forwarding headers
// the way a reverse proxy sets them.
func extractClientIP(r *stdhttp.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// pathID parses a positive numeric path segment.
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// formDecimal parses a decimal form value, empty meaning zero.
func formDecimal(r *stdhttp.Request, field string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number", field)
	}
	return d, nil
}

// parseAmount parses a money string into a decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

// formInt parses an integer form value, empty meaning zero.
func formInt(r *stdhttp.Request, field string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	return n, nil
}

// formatINR renders an amount as rupees, compacting large values the way the
// report charts label them: 1.2L for lakhs, 3.4k for thousands.
func formatINR(d decimal.Decimal) string {
	f, _ := d.Float64()
	neg := f < 0
	if neg {
		f = -f
	}
	var out string
	switch {
	case f >= 100000:
		out = fmt.Sprintf("₹%.1fL", f/100000)
	case f >= 1000:
		out = fmt.Sprintf("₹%.1fk", f/1000)
	default:
		out = fmt.Sprintf("₹%.0f", f)
	}
	if neg {
		return "-" + out
	}
	return out
}

// barWidth scales a value against the largest in its series to a 0-100
// percentage for the report bars.
func barWidth(value, max decimal.Decimal) int {
	if max.IsZero() || !value.IsPositive() {
		return 0
	}
	pct := value.Div(max).Mul(decimal.NewFromInt(100)).IntPart()
	if pct > 100 {
		pct = 100
	}
	if pct < 1 {
		pct = 1
	}
	return int(pct)
}

// templateFuncs are the helpers the page templates rely on.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"inr":       formatINR,
		"inrFull":   func(d decimal.Decimal) string { return "₹" + d.StringFixed(2) },
		"barWidth":  barWidth,
		"shortDate": dates.ShortDisplay,
		"showDate":  dates.Display,
		"deref": func(b *bool) bool { return b != nil && *b },
		"until": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}
}

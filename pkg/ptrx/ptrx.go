// Package ptrx provides pointer helpers for optional values.
package ptrx

// String returns a pointer value for the string value passed in.
func String(v string) *string {
	return &v
}

// Float64 returns a pointer value for the float64 value passed in.
func Float64(v float64) *float64 {
	return &v
}

// ToString dereferences p, returning "" when p is nil.
func ToString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToFloat64 dereferences p, returning 0 when p is nil.
func ToFloat64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

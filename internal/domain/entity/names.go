package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName normaliza un nombre para comparaciones sin distinguir mayúsculas (case folding Unicode).
func FoldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SameName indica si dos nombres son iguales sin distinguir mayúsculas.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// ContainsFold indica si term aparece en s sin distinguir mayúsculas. term vacío siempre coincide.
func ContainsFold(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(FoldName(s), FoldName(term))
}

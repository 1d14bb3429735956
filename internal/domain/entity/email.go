package entity

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail indica si s tiene forma de correo (algo@dominio.ext).
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

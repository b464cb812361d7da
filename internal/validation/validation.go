// Package validation junta las reglas de formularios que usan todas las pantallas
// (login, registro, recuperar contraseña, admin y el wizard de mascota).
// Funciones puras: no hacen I/O ni llaman al backend.
package validation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxPetNameLen  = 25
	MaxCommentsLen = 250
	MinPetAge      = 0
	MaxPetAge      = 20
	MinPasswordLen = 8
	PhoneDigits    = 10
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

// FieldErrors mapea campo -> mensaje, para mostrar junto al input.
type FieldErrors map[string]string

func (fe FieldErrors) OK() bool { return len(fe) == 0 }

func (fe FieldErrors) add(field, msg string) {
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = msg
}

// Error hace que FieldErrors se pueda devolver como error.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Err devuelve nil si no hay errores.
func (fe FieldErrors) Err() error {
	if fe.OK() {
		return nil
	}
	return fe
}

// ---------- predicados / formatters ----------

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// DigitsOnly quita todo lo que no sea dígito ("55 1234-5678" -> "5512345678").
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(DigitsOnly(s))
}

// FormatPhone muestra un teléfono de 10 dígitos como "55 1234 5678".
func FormatPhone(s string) string {
	d := DigitsOnly(s)
	if len(d) != PhoneDigits {
		return strings.TrimSpace(s)
	}
	return d[:2] + " " + d[2:6] + " " + d[6:]
}

// IsStrongPassword: 8+ caracteres, al menos una mayúscula, una minúscula y un dígito.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ---------- campos de mascota ----------

func PetName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n > 0 && n <= MaxPetNameLen
}

// ParseAge acepta texto del input y valida 0..20.
func ParseAge(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, n >= MinPetAge && n <= MaxPetAge
}

func Comments(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= MaxCommentsLen
}

// Zone normaliza y valida la zona (norte, centro, sur).
func Zone(s string) (string, bool) {
	z := strings.ToLower(strings.TrimSpace(s))
	switch z {
	case "norte", "centro", "sur":
		return z, true
	default:
		return z, false
	}
}

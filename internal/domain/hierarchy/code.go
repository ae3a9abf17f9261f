package hierarchy

import "strings"

// NormalizeCode normaliza un código humano para usarlo como identificador
// de documento: recorta espacios y pasa a mayúsculas. "z1 " y "Z1" son el
// mismo código.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

package donor

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// searchKeyTransformer descompone (NFD), elimina marcas diacríticas y recompone.
var searchKeyTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SearchKey normaliza un texto para búsqueda: minúsculas, sin acentos y sin
// espacios sobrantes ("Bogotá " → "bogota"). Se usa como clave de comparación
// para los filtros de ciudad en el listado de donantes.
func SearchKey(s string) string {
	folded, _, err := transform.String(searchKeyTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

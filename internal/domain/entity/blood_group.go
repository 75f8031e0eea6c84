package entity

// BloodGroup es uno de los 8 grupos sanguíneos ABO/Rh. Es la clave de
// partición del stock: los saldos se llevan por grupo.
type BloodGroup string

// Grupos sanguíneos válidos.
const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
)

// BloodGroups lista los 8 grupos en orden canónico (para reportes y zero-fill).
var BloodGroups = []BloodGroup{
	BloodAPos, BloodANeg,
	BloodBPos, BloodBNeg,
	BloodABPos, BloodABNeg,
	BloodOPos, BloodONeg,
}

// ParseBloodGroup valida la representación textual de un grupo sanguíneo.
// Devuelve ok=false para cualquier valor fuera del enum.
func ParseBloodGroup(s string) (BloodGroup, bool) {
	g := BloodGroup(s)
	for _, valid := range BloodGroups {
		if g == valid {
			return g, true
		}
	}
	return "", false
}

// String implementa fmt.Stringer.
func (g BloodGroup) String() string { return string(g) }

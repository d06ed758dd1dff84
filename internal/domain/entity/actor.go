package entity

// Actor es la identidad autenticada que ejecuta una operación, extraída de los
// claims del token. Role y Branch gobiernan visibilidad y permisos.
type Actor struct {
	ID     string
	Name   string
	Role   string
	Branch string
}

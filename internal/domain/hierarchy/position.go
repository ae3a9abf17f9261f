package hierarchy

// Sibling es la vista mínima de un hermano activo bajo un mismo padre:
// su ID y su posición 1-based actual.
type Sibling struct {
	ID       string
	Position int
}

// Shift es el cambio de posición que debe escribirse sobre un hermano
// existente para mantener la secuencia densa y sin duplicados.
type Shift struct {
	ID       string
	Position int // nueva posición
}

// PlanAppend calcula la posición para un hijo nuevo sin preferencia:
// max(posiciones existentes) + 1, o 1 si no hay hermanos. Ningún hermano
// se desplaza.
func PlanAppend(siblings []Sibling) int {
	max := 0
	for _, s := range siblings {
		if s.Position > max {
			max = s.Position
		}
	}
	return max + 1
}

// PlanInsert calcula la posición para un hijo nuevo con posición deseada y
// los desplazamientos mínimos de los hermanos:
//   - desired <= 0: modo append, sin desplazamientos.
//   - desired > 0: el nuevo ocupa desired; todo hermano con posición >= desired
//     se desplaza +1.
//
// Una posición deseada más allá del máximo se acepta tal cual (deja hueco);
// no se ajusta a max+1.
func PlanInsert(siblings []Sibling, desired int) (int, []Shift) {
	if desired <= 0 {
		return PlanAppend(siblings), nil
	}
	var shifts []Shift
	for _, s := range siblings {
		if s.Position >= desired {
			shifts = append(shifts, Shift{ID: s.ID, Position: s.Position + 1})
		}
	}
	return desired, shifts
}

// PlanRemove calcula los desplazamientos al sacar un hijo (borrado o
// movimiento a otro padre): todo hermano con posición > removedPos se
// desplaza -1.
func PlanRemove(siblings []Sibling, removedPos int) []Shift {
	var shifts []Shift
	for _, s := range siblings {
		if s.Position > removedPos {
			shifts = append(shifts, Shift{ID: s.ID, Position: s.Position - 1})
		}
	}
	return shifts
}

// PlanReposition calcula el cambio de posición de un hijo dentro del MISMO
// padre: cierra el hueco en su posición vieja y abre hueco en la deseada,
// contra los demás hermanos. Devuelve la posición final del movido y los
// desplazamientos netos (solo hermanos cuya posición realmente cambia).
func PlanReposition(siblings []Sibling, movedID string, desired int) (int, []Shift) {
	oldPos := 0
	others := make([]Sibling, 0, len(siblings))
	for _, s := range siblings {
		if s.ID == movedID {
			oldPos = s.Position
			continue
		}
		others = append(others, s)
	}

	// Posiciones intermedias: como si el movido ya no estuviera.
	interim := make([]Sibling, len(others))
	for i, s := range others {
		p := s.Position
		if p > oldPos {
			p--
		}
		interim[i] = Sibling{ID: s.ID, Position: p}
	}

	pos := desired
	if desired <= 0 {
		pos = PlanAppend(interim)
	}

	var shifts []Shift
	for i, s := range others {
		p := interim[i].Position
		if desired > 0 && p >= pos {
			p++
		}
		if p != s.Position {
			shifts = append(shifts, Shift{ID: s.ID, Position: p})
		}
	}
	return pos, shifts
}

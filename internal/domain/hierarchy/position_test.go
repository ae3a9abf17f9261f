package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// siblings construye la lista de hermanos con posiciones 1..n (IDs R1..Rn).
func siblings(ids ...string) []hierarchy.Sibling {
	out := make([]hierarchy.Sibling, len(ids))
	for i, id := range ids {
		out[i] = hierarchy.Sibling{ID: id, Position: i + 1}
	}
	return out
}

// apply aplica los shifts sobre la lista y devuelve el mapa ID→posición final.
func apply(list []hierarchy.Sibling, shifts []hierarchy.Shift) map[string]int {
	final := make(map[string]int, len(list))
	for _, s := range list {
		final[s.ID] = s.Position
	}
	for _, sh := range shifts {
		final[sh.ID] = sh.Position
	}
	return final
}

// assertDense verifica que el multiconjunto de posiciones sea exactamente 1..N.
func assertDense(t *testing.T, positions map[string]int) {
	t.Helper()
	seen := make(map[int]string, len(positions))
	for id, p := range positions {
		require.GreaterOrEqual(t, p, 1, "posición de %s debe ser >= 1", id)
		require.LessOrEqual(t, p, len(positions), "posición de %s fuera de rango", id)
		prev, dup := seen[p]
		require.False(t, dup, "posición %d duplicada entre %s y %s", p, prev, id)
		seen[p] = id
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Append (sin posición deseada)
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanAppend_SinHermanos_AsignaUno(t *testing.T) {
	assert.Equal(t, 1, hierarchy.PlanAppend(nil))
}

func TestPlanAppend_ConHermanos_AsignaMaxMasUno(t *testing.T) {
	assert.Equal(t, 4, hierarchy.PlanAppend(siblings("R1", "R2", "R3")))
}

func TestPlanInsert_DeseadaCero_EquivaleAppend(t *testing.T) {
	pos, shifts := hierarchy.PlanInsert(siblings("R1", "R2"), 0)
	assert.Equal(t, 3, pos)
	assert.Empty(t, shifts, "append no desplaza hermanos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Insert-at (posición deseada explícita)
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 2 del contrato: [R1:1, R2:2] + nuevo en 2 → [R1:1, nuevo:2, R2:3].
func TestPlanInsert_EnMedio_DesplazaLosDeArriba(t *testing.T) {
	list := siblings("R1", "R2")
	pos, shifts := hierarchy.PlanInsert(list, 2)

	require.Equal(t, 2, pos)
	require.Len(t, shifts, 1, "solo R2 debe desplazarse")
	assert.Equal(t, hierarchy.Shift{ID: "R2", Position: 3}, shifts[0])

	final := apply(list, shifts)
	final["R3"] = pos
	assertDense(t, final)
}

func TestPlanInsert_AlPrincipio_DesplazaTodos(t *testing.T) {
	list := siblings("S1", "S2", "S3")
	pos, shifts := hierarchy.PlanInsert(list, 1)

	require.Equal(t, 1, pos)
	require.Len(t, shifts, 3)
	final := apply(list, shifts)
	assert.Equal(t, 2, final["S1"])
	assert.Equal(t, 3, final["S2"])
	assert.Equal(t, 4, final["S3"])
}

// La posición deseada más allá del máximo se acepta tal cual: deja hueco,
// no se ajusta a max+1. Permisividad intencional del contrato.
func TestPlanInsert_MasAllaDelMaximo_SeAceptaConHueco(t *testing.T) {
	pos, shifts := hierarchy.PlanInsert(siblings("R1", "R2"), 7)
	assert.Equal(t, 7, pos)
	assert.Empty(t, shifts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove-gap (borrado o salida hacia otro padre)
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 3 del contrato: borrar la posición 3 de 5 deja a los 4 restantes
// en 1..4 conservando el orden relativo.
func TestPlanRemove_CierraElHueco(t *testing.T) {
	list := siblings("S1", "S2", "S3", "S4", "S5")
	shifts := hierarchy.PlanRemove(list, 3)

	require.Len(t, shifts, 2, "solo S4 y S5 se desplazan")
	remaining := []hierarchy.Sibling{list[0], list[1], list[3], list[4]}
	final := apply(remaining, shifts)
	assertDense(t, final)
	assert.Equal(t, 1, final["S1"])
	assert.Equal(t, 2, final["S2"])
	assert.Equal(t, 3, final["S4"])
	assert.Equal(t, 4, final["S5"])
}

func TestPlanRemove_UltimaPosicion_NoDesplazaNada(t *testing.T) {
	assert.Empty(t, hierarchy.PlanRemove(siblings("S1", "S2"), 2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposition (cambio de posición dentro del mismo padre)
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanReposition_HaciaAbajo(t *testing.T) {
	list := siblings("S1", "S2", "S3", "S4")
	pos, shifts := hierarchy.PlanReposition(list, "S4", 2)

	require.Equal(t, 2, pos)
	remaining := []hierarchy.Sibling{list[0], list[1], list[2]}
	final := apply(remaining, shifts)
	final["S4"] = pos
	assertDense(t, final)
	assert.Equal(t, 1, final["S1"])
	assert.Equal(t, 3, final["S2"])
	assert.Equal(t, 4, final["S3"])
}

func TestPlanReposition_HaciaArriba(t *testing.T) {
	list := siblings("S1", "S2", "S3", "S4")
	pos, shifts := hierarchy.PlanReposition(list, "S1", 3)

	require.Equal(t, 3, pos)
	remaining := []hierarchy.Sibling{list[1], list[2], list[3]}
	final := apply(remaining, shifts)
	final["S1"] = pos
	assertDense(t, final)
	assert.Equal(t, 1, final["S2"])
	assert.Equal(t, 2, final["S3"])
	assert.Equal(t, 4, final["S4"])
}

func TestPlanReposition_MismaPosicion_NoDesplazaNada(t *testing.T) {
	list := siblings("S1", "S2", "S3")
	pos, shifts := hierarchy.PlanReposition(list, "S2", 2)
	assert.Equal(t, 2, pos)
	assert.Empty(t, shifts)
}

func TestPlanReposition_SinDeseada_MandaAlFinal(t *testing.T) {
	list := siblings("S1", "S2", "S3")
	pos, shifts := hierarchy.PlanReposition(list, "S1", 0)

	require.Equal(t, 3, pos)
	remaining := []hierarchy.Sibling{list[1], list[2]}
	final := apply(remaining, shifts)
	final["S1"] = pos
	assertDense(t, final)
	assert.Equal(t, 1, final["S2"])
	assert.Equal(t, 2, final["S3"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Densidad bajo secuencias de operaciones (propiedad general)
// ──────────────────────────────────────────────────────────────────────────────

// Simula una secuencia crear/insertar/borrar una-a-la-vez y verifica que las
// posiciones siempre formen 1..N.
func TestSecuenciaDeOperaciones_MantieneDensidad(t *testing.T) {
	type op struct {
		insertID string
		desired  int // 0 = append; -1 en removePos marca no-borrado
		removeID string
	}
	ops := []op{
		{insertID: "A"},
		{insertID: "B"},
		{insertID: "C", desired: 1},
		{insertID: "D", desired: 2},
		{removeID: "B"},
		{insertID: "E"},
		{removeID: "C"},
		{insertID: "F", desired: 1},
	}

	var list []hierarchy.Sibling
	for _, o := range ops {
		if o.removeID != "" {
			removedPos := 0
			kept := list[:0]
			for _, s := range list {
				if s.ID == o.removeID {
					removedPos = s.Position
					continue
				}
				kept = append(kept, s)
			}
			require.NotZero(t, removedPos, "el hermano a borrar debe existir")
			shifts := hierarchy.PlanRemove(kept, removedPos)
			final := apply(kept, shifts)
			list = list[:0]
			for id, p := range final {
				list = append(list, hierarchy.Sibling{ID: id, Position: p})
			}
		} else {
			pos, shifts := hierarchy.PlanInsert(list, o.desired)
			final := apply(list, shifts)
			final[o.insertID] = pos
			list = list[:0]
			for id, p := range final {
				list = append(list, hierarchy.Sibling{ID: id, Position: p})
			}
		}

		positions := make(map[string]int, len(list))
		for _, s := range list {
			positions[s.ID] = s.Position
		}
		assertDense(t, positions)
	}
	assert.Len(t, list, 4, "seis altas menos dos bajas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de códigos
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeCode_TrimYMayusculas(t *testing.T) {
	assert.Equal(t, "Z1", hierarchy.NormalizeCode("z1 "))
	assert.Equal(t, "Z1", hierarchy.NormalizeCode(" Z1"))
	assert.Equal(t, "RACK-01", hierarchy.NormalizeCode("rack-01"))
	assert.Equal(t, "", hierarchy.NormalizeCode("   "))
}

package site

// View identifies one named page of the report site. Navigation is a finite
// state machine over this set: a view is reachable only through an enumerated
// transition, never through ambient state.
type View string

const (
	ViewInicio       View = "inicio"
	ViewProblema     View = "problema"
	ViewMetodologia  View = "metodologia"
	ViewValidacion   View = "validacion"
	ViewAnalisis     View = "analisis"
	ViewConclusiones View = "conclusiones"
	ViewReferencias  View = "referencias"
	ViewDemo         View = "demo"
	ViewAgenda       View = "agenda"
)

// DefaultView is rendered when a requested view is not part of the enumeration.
const DefaultView = ViewInicio

// readingOrder is the linear sequence of the report chapters. Demo and agenda
// sit outside the sequence and are reachable only from the menu.
var readingOrder = []View{
	ViewInicio,
	ViewProblema,
	ViewMetodologia,
	ViewValidacion,
	ViewAnalisis,
	ViewConclusiones,
	ViewReferencias,
}

// menuViews lists every view reachable from the site menu, in display order.
var menuViews = []View{
	ViewInicio,
	ViewProblema,
	ViewMetodologia,
	ViewValidacion,
	ViewAnalisis,
	ViewConclusiones,
	ViewReferencias,
	ViewDemo,
	ViewAgenda,
}

var titles = map[View]string{
	ViewInicio:       "Inicio",
	ViewProblema:     "Planteamiento del problema",
	ViewMetodologia:  "Metodología",
	ViewValidacion:   "Validación",
	ViewAnalisis:     "Análisis y discusión",
	ViewConclusiones: "Conclusiones",
	ViewReferencias:  "Referencias",
	ViewDemo:         "Demostración",
	ViewAgenda:       "Agendar sesión",
}

// Views returns every view reachable from the site menu.
func Views() []View {
	out := make([]View, len(menuViews))
	copy(out, menuViews)
	return out
}

// Valid reports whether v is part of the enumerated view set.
func (v View) Valid() bool {
	_, ok := titles[v]
	return ok
}

// Title returns the display title of the view.
func (v View) Title() string {
	return titles[v]
}

// Resolve maps a requested view name to a member of the enumeration; unknown
// names fall back to DefaultView.
func Resolve(name string) View {
	v := View(name)
	if !v.Valid() {
		return DefaultView
	}
	return v
}

// Transition answers whether moving from the current view to the named target
// is an enumerated transition, and returns the resulting view. Every menu view
// is reachable from every view; anything else lands on DefaultView.
func Transition(from View, target string) (View, bool) {
	to := View(target)
	if !from.Valid() || !to.Valid() {
		return DefaultView, false
	}
	return to, true
}

// Next returns the chapter after v in the reading order, and false at the end
// of the sequence or when v sits outside it.
func Next(v View) (View, bool) {
	for i, rv := range readingOrder {
		if rv == v && i+1 < len(readingOrder) {
			return readingOrder[i+1], true
		}
	}
	return v, false
}

// Prev returns the chapter before v in the reading order.
func Prev(v View) (View, bool) {
	for i, rv := range readingOrder {
		if rv == v && i > 0 {
			return readingOrder[i-1], true
		}
	}
	return v, false
}

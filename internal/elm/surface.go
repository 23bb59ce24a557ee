package elm

// ExposedType is a type visible to importers, with whichever of its
// constructors the exposing clause lets out.
type ExposedType struct {
	Name         string
	Constructors []string
}

// Exposed is the surface a module offers its importers.
type Exposed struct {
	Functions []Declaration
	Types     []ExposedType
}

// Surface computes the exposed surface of a parsed module. Order follows
// declaration order. exposing (..) exposes every declaration including all
// constructors; Type(..) exposes all of that type's constructors; Type(A, B)
// exposes the listed ones; a bare Type exposes the type name only.
func Surface(m *Module) Exposed {
	var out Exposed
	for _, d := range m.Decls {
		switch d.Kind {
		case KindFunction:
			if m.Exposing.Exposes(d.Name) {
				out.Functions = append(out.Functions, d)
			}
		case KindType:
			if m.Exposing.All {
				out.Types = append(out.Types, ExposedType{Name: d.Name, Constructors: d.Constructors})
				continue
			}
			if e := exposedEntry(m.Exposing, d.Name); e != nil {
				t := ExposedType{Name: d.Name}
				switch {
				case e.All:
					t.Constructors = d.Constructors
				case len(e.Constructors) > 0:
					t.Constructors = e.Constructors
				}
				out.Types = append(out.Types, t)
			}
		case KindAlias:
			if m.Exposing.Exposes(d.Name) {
				out.Types = append(out.Types, ExposedType{Name: d.Name})
			}
		}
	}
	return out
}

func exposedEntry(list ExposedList, name string) *ExposedName {
	for i := range list.Names {
		if list.Names[i].Name == name {
			return &list.Names[i]
		}
	}
	return nil
}

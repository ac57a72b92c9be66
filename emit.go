package csstheme

import "strings"

// rootBlock renders root variables followed by light variables, which serve
// as the defaults. A root name redefined in light is written once, with the
// light value.
func rootBlock(store *Store) string {
	light := store.Vars(Light)
	lightValues := make(map[string]string, len(light))
	for _, v := range light {
		lightValues[v.Name] = v.Value
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	written := make(map[string]bool)
	for _, v := range store.Vars(Root) {
		if lv, ok := lightValues[v.Name]; ok {
			v.Value = lv
		}
		writeVar(&b, "  ", v)
		written[v.Name] = true
	}
	for _, v := range light {
		if !written[v.Name] {
			writeVar(&b, "  ", v)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// darkBlock renders the dark overrides, or "" when there are none.
func darkBlock(store *Store) string {
	dark := store.Vars(Dark)
	if len(dark) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("@media (prefers-color-scheme: dark) {\n  :root {\n")
	for _, v := range dark {
		writeVar(&b, "    ", v)
	}
	b.WriteString("  }\n}\n")
	return b.String()
}

func writeVar(b *strings.Builder, indent string, v Var) {
	b.WriteString(indent)
	b.WriteString(v.Name)
	b.WriteString(": ")
	b.WriteString(v.Value)
	b.WriteString(";\n")
}

package config

// Merge returns base with every present field of explicit written over it.
// Absent fields of explicit leave base untouched. PruneDirs is replaced when
// explicit lists any directory and the flags are set when explicit sets them.
func Merge(base, explicit Record) Record {
	out := base.Clone()
	for _, f := range Fields() {
		if v, ok := explicit.Get(f); ok {
			out.Set(f, v)
		}
	}
	if len(explicit.PruneDirs) > 0 {
		out.PruneDirs = orderedSet(explicit.PruneDirs)
	}
	if explicit.PruneAbsolutes {
		out.PruneAbsolutes = true
	}
	if explicit.NoSend {
		out.NoSend = true
	}
	return out
}

package model

// EnvEntry is one ordered variable in an Environment's map.
type EnvEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Environment is a unique name plus an order-preserving variable map (§3).
type Environment struct {
	Name string     `json:"name" yaml:"name"`
	Vars []EnvEntry `json:"vars" yaml:"vars"`

	// Path and Format are persistence metadata; not part of the logical
	// model but carried alongside it the way Collection carries Path/Format.
	Path   string `json:"-" yaml:"-"`
	Format FileFormat `json:"-" yaml:"-"`
}

// Get returns the value for key and whether it was present.
func (e *Environment) Get(key string) (string, bool) {
	for _, v := range e.Vars {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Set updates key's value in place, or appends it if new, preserving order.
func (e *Environment) Set(key, value string) {
	for i, v := range e.Vars {
		if v.Key == key {
			e.Vars[i].Value = value
			return
		}
	}
	e.Vars = append(e.Vars, EnvEntry{Key: key, Value: value})
}

// Delete removes key, reporting whether it was present.
func (e *Environment) Delete(key string) bool {
	for i, v := range e.Vars {
		if v.Key == key {
			e.Vars = append(e.Vars[:i], e.Vars[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes a variable's key while preserving its position and value.
func (e *Environment) Rename(oldKey, newKey string) bool {
	for i, v := range e.Vars {
		if v.Key == oldKey {
			e.Vars[i].Key = newKey
			return true
		}
	}
	return false
}

// AsMap materializes the ordered list into a lookup map, used by
// VariableResolver. Duplicate keys (should not occur; Set prevents them)
// resolve last-write-wins.
func (e *Environment) AsMap() map[string]string {
	m := make(map[string]string, len(e.Vars))
	for _, v := range e.Vars {
		m[v.Key] = v.Value
	}
	return m
}

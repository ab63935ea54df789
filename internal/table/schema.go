package table

// Field is one (name, kind) pair of a schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema is an ordered, uniquely-named field list. Column access resolves
// through the schema once, at load time, instead of ad hoc per operation.
type Schema struct {
	fields []Field
	byName map[string]int
}

func NewSchema(fields ...Field) (Schema, error) {
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return Schema{}, &SchemaMismatchError{Column: f.Name, Reason: "empty column name"}
		}
		if _, dup := byName[f.Name]; dup {
			return Schema{}, &SchemaMismatchError{Column: f.Name, Reason: "duplicate column name"}
		}
		byName[f.Name] = i
	}
	return Schema{fields: append([]Field(nil), fields...), byName: byName}, nil
}

// MustSchema is NewSchema for statically known schemas.
func MustSchema(fields ...Field) Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Schema) Len() int           { return len(s.fields) }
func (s Schema) Field(i int) Field  { return s.fields[i] }
func (s Schema) Fields() []Field    { return append([]Field(nil), s.fields...) }
func (s Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s Schema) Index(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Require resolves a column name or fails with SchemaMismatchError.
func (s Schema) Require(name string) (int, error) {
	i, ok := s.byName[name]
	if !ok {
		return 0, &SchemaMismatchError{Column: name, Reason: "column not in schema"}
	}
	return i, nil
}

func (s Schema) Equal(o Schema) bool {
	if len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}

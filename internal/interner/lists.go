package interner

// TypeListId names an interned, ordered list of TypeIds (union/intersection
// members, application arguments, ...). Structurally equal lists share an id.
type TypeListId uint32

// TupleListId names an interned, ordered list of TupleElements.
type TupleListId uint32

// TemplateListId names an interned, ordered list of TemplateSpans.
type TemplateListId uint32

// TupleElement is one position of a Tuple type.
type TupleElement struct {
	Type     TypeId
	Name     Atom // NoAtom if unnamed
	Optional bool
	Rest     bool
}

// TemplateSpan is either a literal text fragment or an embedded type.
type TemplateSpan struct {
	Text    string // valid iff IsType is false
	Type    TypeId // valid iff IsType is true
	IsType  bool
}

type listTables struct {
	typeLists     []([]TypeId)
	typeListIndex map[string]TypeListId

	tupleLists     [][]TupleElement
	tupleListIndex map[string]TupleListId

	templateLists     [][]TemplateSpan
	templateListIndex map[string]TemplateListId
}

func newListTables() *listTables {
	return &listTables{
		typeLists:         [][]TypeId{nil}, // id 0 reserved
		typeListIndex:     make(map[string]TypeListId),
		tupleLists:        [][]TupleElement{nil},
		tupleListIndex:    make(map[string]TupleListId),
		templateLists:     [][]TemplateSpan{nil},
		templateListIndex: make(map[string]TemplateListId),
	}
}

func (t *listTables) internTypeList(members []TypeId) TypeListId {
	key := encodeTypeIds(members)
	if id, ok := t.typeListIndex[key]; ok {
		return id
	}
	id := TypeListId(len(t.typeLists))
	cp := append([]TypeId(nil), members...)
	t.typeLists = append(t.typeLists, cp)
	t.typeListIndex[key] = id
	return id
}

func (t *listTables) typeList(id TypeListId) []TypeId {
	if int(id) >= len(t.typeLists) {
		return nil
	}
	return t.typeLists[id]
}

func (t *listTables) internTupleList(elems []TupleElement) TupleListId {
	key := encodeTupleElements(elems)
	if id, ok := t.tupleListIndex[key]; ok {
		return id
	}
	id := TupleListId(len(t.tupleLists))
	cp := append([]TupleElement(nil), elems...)
	t.tupleLists = append(t.tupleLists, cp)
	t.tupleListIndex[key] = id
	return id
}

func (t *listTables) tupleList(id TupleListId) []TupleElement {
	if int(id) >= len(t.tupleLists) {
		return nil
	}
	return t.tupleLists[id]
}

func (t *listTables) internTemplateList(spans []TemplateSpan) TemplateListId {
	key := encodeTemplateSpans(spans)
	if id, ok := t.templateListIndex[key]; ok {
		return id
	}
	id := TemplateListId(len(t.templateLists))
	cp := append([]TemplateSpan(nil), spans...)
	t.templateLists = append(t.templateLists, cp)
	t.templateListIndex[key] = id
	return id
}

func (t *listTables) templateList(id TemplateListId) []TemplateSpan {
	if int(id) >= len(t.templateLists) {
		return nil
	}
	return t.templateLists[id]
}

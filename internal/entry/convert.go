package entry

import (
	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
	"github.com/roach88/gvalue/internal/results"
)

// FromResultEntry converts one result row. A collection fails as a whole if
// any element fails. A map becomes an object holding a KV; only scalar map
// values are supported, and nested collections or maps are reported as
// UNIMPLEMENTED rather than dropped.
func FromResultEntry(e *results.Entry) (Handle, error) {
	switch {
	case e == nil:
		return Handle{}, results.Errorf(results.ErrCodeEmptyField, "entry is empty")
	case e.Element != nil:
		return FromResultElement(e.Element)
	case e.Collection != nil:
		b := NewCollectionBuilder(len(e.Collection.Elements))
		for i := range e.Collection.Elements {
			h, err := FromResultElement(&e.Collection.Elements[i])
			if err != nil {
				return Handle{}, err
			}
			b.Add(h)
		}
		return b.Build(), nil
	case e.Map != nil:
		return fromResultMap(e.Map)
	default:
		return Handle{}, results.Errorf(results.ErrCodeEmptyField, "entry inner is empty")
	}
}

// FromResultElement converts a single element.
func FromResultElement(el *results.Element) (Handle, error) {
	switch {
	case el == nil:
		return Handle{}, results.Errorf(results.ErrCodeEmptyField, "element is empty")
	case el.Vertex != nil:
		v, err := vertexFromResult(el.Vertex)
		if err != nil {
			return Handle{}, err
		}
		return NewVertex(v), nil
	case el.Edge != nil:
		e, err := edgeFromResult(el.Edge)
		if err != nil {
			return Handle{}, err
		}
		return NewEdge(e), nil
	case el.Path != nil:
		p, err := pathFromResult(el.Path)
		if err != nil {
			return Handle{}, err
		}
		return NewPath(p), nil
	case el.Object != nil:
		o, err := ObjectFromValue(el.Object)
		if err != nil {
			return Handle{}, err
		}
		return NewObject(o), nil
	default:
		return Handle{}, results.Errorf(results.ErrCodeEmptyField, "element inner is empty")
	}
}

func fromResultMap(kvs *results.KeyValues) (Handle, error) {
	pairs := make([]object.Pair, 0, len(kvs.Entries))
	for i, kv := range kvs.Entries {
		if kv.Key == nil {
			return Handle{}, results.Errorf(results.ErrCodeEmptyField, "map entry %d has no key", i)
		}
		if kv.Value == nil {
			return Handle{}, results.Errorf(results.ErrCodeEmptyField, "map entry %d has no value", i)
		}
		key, err := ObjectFromValue(kv.Key)
		if err != nil {
			return Handle{}, err
		}
		switch {
		case kv.Value.Collection != nil:
			return Handle{}, results.Errorf(results.ErrCodeUnimplemented, "map entry %d: collection values in a map", i)
		case kv.Value.Map != nil:
			return Handle{}, results.Errorf(results.ErrCodeUnimplemented, "map entry %d: nested map values", i)
		case kv.Value.Element == nil:
			return Handle{}, results.Errorf(results.ErrCodeEmptyField, "map entry %d value is empty", i)
		case kv.Value.Element.Object == nil:
			return Handle{}, results.Errorf(results.ErrCodeUnsupported, "map entry %d: only scalar values are supported", i)
		}
		val, err := ObjectFromValue(kv.Value.Element.Object)
		if err != nil {
			return Handle{}, err
		}
		pairs = append(pairs, object.Pair{Key: key, Value: val})
	}
	return NewObject(object.NewKV(pairs...)), nil
}

// ObjectFromValue converts a result scalar. Booleans become bytes 0 and 1.
func ObjectFromValue(v *results.Value) (object.Object, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	switch {
	case v.None:
		return object.None{}, nil
	case v.Bool != nil:
		if *v.Bool {
			return object.NewByte(1), nil
		}
		return object.NewByte(0), nil
	case v.I32 != nil:
		return object.NewInteger(*v.I32), nil
	case v.I64 != nil:
		return object.NewLong(*v.I64), nil
	case v.U64 != nil:
		return object.NewULong(*v.U64), nil
	case v.F64 != nil:
		return object.NewDouble(*v.F64), nil
	case v.Str != nil:
		return object.String(*v.Str), nil
	case v.Blob != nil:
		return object.Blob(v.Blob), nil
	case v.I32List != nil:
		vec := make(object.Vector, len(v.I32List))
		for i, x := range v.I32List {
			vec[i] = object.NewInteger(x)
		}
		return vec, nil
	case v.I64List != nil:
		vec := make(object.Vector, len(v.I64List))
		for i, x := range v.I64List {
			vec[i] = object.NewLong(x)
		}
		return vec, nil
	case v.F64List != nil:
		vec := make(object.Vector, len(v.F64List))
		for i, x := range v.F64List {
			vec[i] = object.NewDouble(x)
		}
		return vec, nil
	default:
		vec := make(object.Vector, len(v.StrList))
		for i, x := range v.StrList {
			vec[i] = object.String(x)
		}
		return vec, nil
	}
}

func labelFromResult(l *int32) graph.Label {
	if l == nil {
		return graph.NoLabel
	}
	return graph.LabelOf(*l)
}

func propsFromResult(props []results.Property) (graph.Properties, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make(graph.Properties, len(props))
	for _, p := range props {
		var key graph.NameOrID
		switch {
		case p.Key.ID != nil:
			key = graph.PropID(*p.Key.ID)
		case p.Key.Name != "":
			key = graph.Name(p.Key.Name)
		default:
			return nil, results.Errorf(results.ErrCodeEmptyField, "property key is empty")
		}
		val, err := ObjectFromValue(&p.Value)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

func vertexFromResult(v *results.Vertex) (*graph.Vertex, error) {
	props, err := propsFromResult(v.Properties)
	if err != nil {
		return nil, err
	}
	return graph.NewVertex(v.ID, labelFromResult(v.Label), props), nil
}

func edgeFromResult(e *results.Edge) (*graph.Edge, error) {
	props, err := propsFromResult(e.Properties)
	if err != nil {
		return nil, err
	}
	ends := graph.EdgeEnds{
		Src:      e.SrcID,
		Dst:      e.DstID,
		SrcLabel: labelFromResult(e.SrcLabel),
		DstLabel: labelFromResult(e.DstLabel),
	}
	return graph.NewEdge(e.ID, labelFromResult(e.Label), ends, props), nil
}

func pathFromResult(p *results.Path) (*graph.Path, error) {
	if len(p.Elements) == 0 {
		return nil, results.Errorf(results.ErrCodeInvalid, "path has no elements")
	}
	elems := make([]graph.VertexOrEdge, 0, len(p.Elements))
	for _, pe := range p.Elements {
		switch {
		case pe.Vertex != nil:
			v, err := vertexFromResult(pe.Vertex)
			if err != nil {
				return nil, err
			}
			elems = append(elems, graph.V(v))
		case pe.Edge != nil:
			e, err := edgeFromResult(pe.Edge)
			if err != nil {
				return nil, err
			}
			elems = append(elems, graph.E(e))
		default:
			return nil, results.Errorf(results.ErrCodeEmptyField, "path element is empty")
		}
	}
	return graph.NewWholePath(elems...), nil
}

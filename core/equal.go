package core

// EqualValue reports whether two COS values are structurally equal.
// References compare by key; streams compare by dictionary and payload.
// Used by tests and by callers comparing reparsed documents.
func EqualValue(a, b Object) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if ao, ok := a.(*IndirectObject); ok {
		a = ao.Value()
	}
	if bo, ok := b.(*IndirectObject); ok {
		b = bo.Value()
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Integer:
		return av == b.(Integer)
	case Real:
		return av == b.(Real)
	case Name:
		return av == b.(Name)
	case String:
		bv := b.(String)
		return av.Hex == bv.Hex && equalBytes(av.Data, bv.Data)
	case ObjectRef:
		return av == b.(ObjectRef)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !EqualValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Dict:
		return equalDict(av, b.(Dict))
	case *Stream:
		bv := b.(*Stream)
		if !equalDict(av.Dict, bv.Dict) {
			return false
		}
		ap, errA := av.Payload()
		bp, errB := bv.Payload()
		if errA != nil || errB != nil {
			return false
		}
		return equalBytes(ap, bp)
	}
	return false
}

func equalDict(a, b Dict) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !EqualValue(v, bv) {
			return false
		}
	}
	return true
}

package tracker

// record is implemented by every entity stored in a list.
type record interface {
	RecordID() string
}

// appended returns a new slice with item at the end; list is not modified.
func appended[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// replaced returns a copy of list with the element matching id passed
// through fn. The bool reports whether a match was found.
func replaced[T record](list []T, id string, fn func(T) T) ([]T, bool) {
	for i, item := range list {
		if item.RecordID() != id {
			continue
		}
		out := make([]T, len(list))
		copy(out, list)
		out[i] = fn(item)
		return out, true
	}
	return list, false
}

// removed returns a copy of list without the element matching id.
func removed[T record](list []T, id string) ([]T, bool) {
	for i, item := range list {
		if item.RecordID() != id {
			continue
		}
		out := make([]T, 0, len(list)-1)
		out = append(out, list[:i]...)
		return append(out, list[i+1:]...), true
	}
	return list, false
}

func find[T record](list []T, id string) (T, bool) {
	for _, item := range list {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// setList stores a private copy of *v when v is non-nil so the caller's
// slice never aliases the aggregate.
func setList[T any](dst *[]T, v *[]T) {
	if v != nil {
		*dst = append([]T{}, (*v)...)
	}
}

// set copies *v into *dst when v is non-nil.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

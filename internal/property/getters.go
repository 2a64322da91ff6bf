package property

// GetBool returns the value of a Bool.
func GetBool(p Property) (bool, error) {
	if v, ok := p.(Bool); ok {
		return bool(v), nil
	}
	return false, mismatch("GetBool", "bool", p)
}

// GetChar returns the value of a Char.
func GetChar(p Property) (uint8, error) {
	if v, ok := p.(Char); ok {
		return uint8(v), nil
	}
	return 0, mismatch("GetChar", "char", p)
}

// GetShort returns the value of a Short.
func GetShort(p Property) (int16, error) {
	if v, ok := p.(Short); ok {
		return int16(v), nil
	}
	return 0, mismatch("GetShort", "short", p)
}

// GetInt accepts Short and Int.
func GetInt(p Property) (int32, error) {
	switch v := p.(type) {
	case Short:
		return int32(v), nil
	case Int:
		return int32(v), nil
	}
	return 0, mismatch("GetInt", "short or int", p)
}

// GetLong accepts Short, Int and Long.
func GetLong(p Property) (int64, error) {
	switch v := p.(type) {
	case Short:
		return int64(v), nil
	case Int:
		return int64(v), nil
	case Long:
		return int64(v), nil
	}
	return 0, mismatch("GetLong", "short, int or long", p)
}

// GetFloat accepts Short, Int and Float.
func GetFloat(p Property) (float32, error) {
	switch v := p.(type) {
	case Short:
		return float32(v), nil
	case Int:
		return float32(v), nil
	case Float:
		return float32(v), nil
	}
	return 0, mismatch("GetFloat", "short, int or float", p)
}

// GetDouble accepts every numeric scalar.
func GetDouble(p Property) (float64, error) {
	switch v := p.(type) {
	case Short:
		return float64(v), nil
	case Int:
		return float64(v), nil
	case Long:
		return float64(v), nil
	case Float:
		return float64(v), nil
	case Double:
		return float64(v), nil
	}
	return 0, mismatch("GetDouble", "numeric", p)
}

// GetString returns the value of a String. Dates are not strings here.
func GetString(p Property) (string, error) {
	if v, ok := p.(String); ok {
		return string(v), nil
	}
	return "", mismatch("GetString", "string", p)
}

// GetDate returns the text of a Date.
func GetDate(p Property) (string, error) {
	if v, ok := p.(Date); ok {
		return string(v), nil
	}
	return "", mismatch("GetDate", "date", p)
}

// GetBytes returns the value of a Bytes. The slice is shared.
func GetBytes(p Property) ([]byte, error) {
	if v, ok := p.(Bytes); ok {
		return v, nil
	}
	return nil, mismatch("GetBytes", "bytes", p)
}

func GetIntList(p Property) ([]int32, error) {
	if v, ok := p.(ListInt); ok {
		return v, nil
	}
	return nil, mismatch("GetIntList", "list_int", p)
}

func GetLongList(p Property) ([]int64, error) {
	if v, ok := p.(ListLong); ok {
		return v, nil
	}
	return nil, mismatch("GetLongList", "list_long", p)
}

func GetFloatList(p Property) ([]float32, error) {
	if v, ok := p.(ListFloat); ok {
		return v, nil
	}
	return nil, mismatch("GetFloatList", "list_float", p)
}

func GetDoubleList(p Property) ([]float64, error) {
	if v, ok := p.(ListDouble); ok {
		return v, nil
	}
	return nil, mismatch("GetDoubleList", "list_double", p)
}

func GetStringList(p Property) ([]string, error) {
	if v, ok := p.(ListString); ok {
		return v, nil
	}
	return nil, mismatch("GetStringList", "list_string", p)
}

func GetBytesList(p Property) ([][]byte, error) {
	if v, ok := p.(ListBytes); ok {
		return v, nil
	}
	return nil, mismatch("GetBytesList", "list_bytes", p)
}

// castLongList widens ListInt and ListLong.
func castLongList(p Property) ([]int64, error) {
	switch v := p.(type) {
	case ListInt:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return out, nil
	case ListLong:
		return v, nil
	}
	return nil, mismatch("castLongList", "list_int or list_long", p)
}

// castDoubleList widens every numeric list.
func castDoubleList(p Property) ([]float64, error) {
	switch v := p.(type) {
	case ListInt:
		return widen(v), nil
	case ListLong:
		return widen(v), nil
	case ListFloat:
		return widen(v), nil
	case ListDouble:
		return v, nil
	}
	return nil, mismatch("castDoubleList", "numeric list", p)
}

func widen[T int32 | int64 | float32](in []T) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}

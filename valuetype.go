package yson

// ValueType is the coarse classification of a scalar or container value.
type ValueType int

const (
	TypeUnknown ValueType = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeString
	TypeArray
	TypeObject
	TypeInvalid
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "NULL_VALUE"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeArray:
		return "ARRAY"
	case TypeObject:
		return "OBJECT"
	case TypeInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// DetailedValueType is a fine-grained classification that additionally
// records the smallest integer width containing a numeric literal.
type DetailedValueType int

const (
	DetailUnknown DetailedValueType = iota
	DetailInvalid
	DetailNull
	DetailBoolean
	DetailString
	DetailObject
	DetailArray
	DetailChar
	DetailUint7
	DetailUint8
	DetailSint8
	DetailUint15
	DetailUint16
	DetailSint16
	DetailUint31
	DetailUint32
	DetailSint32
	DetailUint63
	DetailUint64
	DetailSint64
	DetailFloat32
	DetailFloat64
	DetailBigInt
	DetailHighPrecisionNumber
)

func (t DetailedValueType) String() string {
	switch t {
	case DetailInvalid:
		return "INVALID"
	case DetailNull:
		return "NULL_VALUE"
	case DetailBoolean:
		return "BOOLEAN"
	case DetailString:
		return "STRING"
	case DetailObject:
		return "OBJECT"
	case DetailArray:
		return "ARRAY"
	case DetailChar:
		return "CHAR"
	case DetailUint7:
		return "UINT_7"
	case DetailUint8:
		return "UINT_8"
	case DetailSint8:
		return "SINT_8"
	case DetailUint15:
		return "UINT_15"
	case DetailUint16:
		return "UINT_16"
	case DetailSint16:
		return "SINT_16"
	case DetailUint31:
		return "UINT_31"
	case DetailUint32:
		return "UINT_32"
	case DetailSint32:
		return "SINT_32"
	case DetailUint63:
		return "UINT_63"
	case DetailUint64:
		return "UINT_64"
	case DetailSint64:
		return "SINT_64"
	case DetailFloat32:
		return "FLOAT_32"
	case DetailFloat64:
		return "FLOAT_64"
	case DetailBigInt:
		return "BIG_INT"
	case DetailHighPrecisionNumber:
		return "HIGH_PRECISION_NUMBER"
	default:
		return "UNKNOWN"
	}
}

// Coarse maps a detailed value type down to its coarse ValueType.
func (t DetailedValueType) Coarse() ValueType {
	switch t {
	case DetailInvalid:
		return TypeInvalid
	case DetailNull:
		return TypeNull
	case DetailBoolean:
		return TypeBoolean
	case DetailString, DetailChar:
		return TypeString
	case DetailObject:
		return TypeObject
	case DetailArray:
		return TypeArray
	case DetailUint7, DetailUint8, DetailSint8, DetailUint15, DetailUint16,
		DetailSint16, DetailUint31, DetailUint32, DetailSint32, DetailUint63,
		DetailUint64, DetailSint64, DetailBigInt:
		return TypeInteger
	case DetailFloat32, DetailFloat64, DetailHighPrecisionNumber:
		return TypeFloat
	default:
		return TypeUnknown
	}
}

// detailBit is this type's membership bit in the compatibility bitset below.
func (t DetailedValueType) detailBit() uint32 {
	if t < 0 || int(t) >= 32 {
		return 0
	}
	return 1 << uint(t)
}

// compatible[u] is the set of detailed types that can be narrowed/widened
// into u, i.e. IsCompatible(t, u) iff compatible[u] has t's bit set. Each
// integer category additionally contains every narrower integer category
// with the same signedness reach, and both float categories dominate every
// integer category by value range (not by exact representation).
var compatibleSets = buildCompatibleSets()

func buildCompatibleSets() map[DetailedValueType]uint32 {
	// ordered narrowest-to-widest unsigned and signed integer chains
	uchain := []DetailedValueType{DetailUint7, DetailUint8, DetailUint15, DetailUint16,
		DetailUint31, DetailUint32, DetailUint63, DetailUint64}
	schain := []DetailedValueType{DetailSint8, DetailSint16, DetailSint32, DetailSint64}

	m := map[DetailedValueType]uint32{}
	addChain := func(chain []DetailedValueType) {
		for i, u := range chain {
			bits := uint32(0)
			for j := 0; j <= i; j++ {
				bits |= chain[j].detailBit()
			}
			m[u] = m[u] | bits
		}
	}
	addChain(uchain)
	addChain(schain)

	// UINT_7 is also a valid SINT-compatible non-negative value for every
	// signed width, and UINT_k for k < 63 fits within a wider signed width
	// whose value-bit count exceeds k (Sint_{k+1} covers non-negative values
	// up to 2^k - 1).
	m[DetailSint8] |= DetailUint7.detailBit()
	m[DetailSint16] |= DetailUint7.detailBit() | DetailUint8.detailBit() | DetailUint15.detailBit()
	m[DetailSint32] |= m[DetailSint16] | DetailUint16.detailBit() | DetailUint31.detailBit()
	m[DetailSint64] |= m[DetailSint32] | DetailUint32.detailBit() | DetailUint63.detailBit()

	// Both float categories dominate every integer category by value range;
	// float64 additionally dominates float32.
	allInts := uint32(0)
	for _, c := range uchain {
		allInts |= c.detailBit()
	}
	for _, c := range schain {
		allInts |= c.detailBit()
	}
	m[DetailFloat32] = allInts | DetailFloat32.detailBit()
	m[DetailFloat64] = allInts | DetailFloat32.detailBit() | DetailFloat64.detailBit()

	// every category is trivially compatible with itself
	for t := DetailUnknown; t <= DetailHighPrecisionNumber; t++ {
		m[t] |= t.detailBit()
	}
	return m
}

// IsCompatible reports whether a value of detailed type from can be assigned
// to a variable of detailed type to without loss, per spec.md's bitset
// compatibility table.
func IsCompatible(from, to DetailedValueType) bool {
	bits, ok := compatibleSets[to]
	if !ok {
		return from == to
	}
	return bits&from.detailBit() != 0
}

package nifti

// Datatype codes (NIFTI_TYPE_*).
const (
	TypeUnknown    = 0
	TypeBinary     = 1
	TypeUint8      = 2
	TypeInt16      = 4
	TypeInt32      = 8
	TypeFloat32    = 16
	TypeComplex64  = 32
	TypeFloat64    = 64
	TypeRGB24      = 128
	TypeInt8       = 256
	TypeUint16     = 512
	TypeUint32     = 768
	TypeInt64      = 1024
	TypeUint64     = 1280
	TypeFloat128   = 1536
	TypeComplex128 = 1792
	TypeComplex256 = 2048
	TypeRGBA32     = 2304
)

// Transform codes (NIFTI_XFORM_*).
const (
	XformUnknown     = 0
	XformScannerAnat = 1
	XformAlignedAnat = 2
	XformTalairach   = 3
	XformMNI152      = 4
)

// Units codes (NIFTI_UNITS_*).
const (
	UnitsUnknown = 0
	UnitsMeter   = 1
	UnitsMM      = 2
	UnitsMicron  = 3
	UnitsSec     = 8
	UnitsMsec    = 16
	UnitsUsec    = 24
	UnitsHz      = 32
	UnitsPPM     = 40
	UnitsRads    = 48
)

// Masks splitting xyzt_units into its spatial and temporal parts.
const (
	SpatialUnitsMask  = 0x07
	TemporalUnitsMask = 0x38
)

// CodeLookup maps header codes to display labels.
type CodeLookup interface {
	DatatypeString(code int) string
	TransformString(code int) string
	UnitsString(code int) string
}

// StandardCodes is the CodeLookup for the codes defined by nifti1.h.
type StandardCodes struct{}

var datatypeNames = map[int]string{
	TypeBinary:     "1-Bit Binary",
	TypeUint8:      "1-Byte Unsigned Integer",
	TypeInt16:      "2-Byte Signed Integer",
	TypeInt32:      "4-Byte Signed Integer",
	TypeFloat32:    "4-Byte Float",
	TypeComplex64:  "8-Byte Complex",
	TypeFloat64:    "8-Byte Float",
	TypeRGB24:      "RGB",
	TypeInt8:       "1-Byte Signed Integer",
	TypeUint16:     "2-Byte Unsigned Integer",
	TypeUint32:     "4-Byte Unsigned Integer",
	TypeInt64:      "8-Byte Signed Integer",
	TypeUint64:     "8-Byte Unsigned Integer",
	TypeFloat128:   "16-Byte Float",
	TypeComplex128: "16-Byte Complex",
	TypeComplex256: "32-Byte Complex",
	TypeRGBA32:     "RGBA",
}

var transformNames = map[int]string{
	XformScannerAnat: "Scanner",
	XformAlignedAnat: "Aligned",
	XformTalairach:   "Talairach",
	XformMNI152:      "MNI",
}

var unitsNames = map[int]string{
	UnitsMeter:  "Meters",
	UnitsMM:     "Millimeters",
	UnitsMicron: "Microns",
	UnitsSec:    "Seconds",
	UnitsMsec:   "Milliseconds",
	UnitsUsec:   "Microseconds",
	UnitsHz:     "Hz",
	UnitsPPM:    "PPM",
	UnitsRads:   "RADS",
}

func lookup(m map[int]string, code int) string {
	if s, ok := m[code]; ok {
		return s
	}
	return "Unknown"
}

func (StandardCodes) DatatypeString(code int) string  { return lookup(datatypeNames, code) }
func (StandardCodes) TransformString(code int) string { return lookup(transformNames, code) }
func (StandardCodes) UnitsString(code int) string     { return lookup(unitsNames, code) }

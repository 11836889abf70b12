package nifti2

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kaczmarj/gonifti/nifti"
)

// number renders v the way the header report shows plain values: integral
// values without a fraction, exponent form only for very small or very
// large magnitudes.
func number(v float64) string {
	a := math.Abs(v)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case a < 1e-6 || a >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatNumber rounds v to 7 significant digits before rendering it.
func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return number(v)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 7, 64), 64)
	if err != nil {
		return number(v)
	}
	return number(r)
}

func joinInts(v []int64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(s, ", ")
}

func joinFormatted(v []float64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = formatNumber(x)
	}
	return strings.Join(s, ", ")
}

type reportLine struct {
	label string
	sep   string
	value string
}

func (h *Header) report(lookup nifti.CodeLookup) []reportLine {
	var lines []reportLine
	eq := func(label, format string, args ...any) {
		lines = append(lines, reportLine{label, " = ", fmt.Sprintf(format, args...)})
	}
	colon := func(label, format string, args ...any) {
		lines = append(lines, reportLine{label, ": ", fmt.Sprintf(format, args...)})
	}
	quoted := func(label, text string) {
		lines = append(lines, reportLine{label, ": ", "\"" + text + "\""})
	}

	eq("Datatype", "%d (%s)", h.DatatypeCode, lookup.DatatypeString(int(h.DatatypeCode)))
	eq("Bits Per Voxel", "%d", h.NumBitsPerVoxel)
	colon("Image Dimensions (1-8)", "%s", joinInts(h.Dims[:]))
	colon("Intent Parameters (1-3)", "%s, %s, %s", number(h.IntentP1), number(h.IntentP2), number(h.IntentP3))
	colon("Voxel Dimensions (1-8)", "%s", joinFormatted(h.PixDims[:]))
	eq("Image Offset", "%d", h.VoxOffset)
	colon("Data Scale", " Slope = %s  Intercept = %s", number(h.SclSlope), number(h.SclInter))
	colon("Display Range", " Max = %s  Min = %s", number(h.CalMax), number(h.CalMin))
	eq("Slice Duration", "%s", number(h.SliceDuration))
	eq("Time Axis Shift", "%s", number(h.TOffset))
	eq("Slice Start", "%d", h.SliceStart)
	eq("Slice End", "%d", h.SliceEnd)
	quoted("Description", h.Description)
	quoted("Auxiliary File", h.AuxFile)
	eq("Q-Form Code", "%d (%s)", h.QformCode, lookup.TransformString(int(h.QformCode)))
	eq("S-Form Code", "%d (%s)", h.SformCode, lookup.TransformString(int(h.SformCode)))
	colon("Quaternion Parameters", " b = %s  c = %s  d = %s",
		formatNumber(h.QuaternB), formatNumber(h.QuaternC), formatNumber(h.QuaternD))
	colon("Quaternion Offsets", " x = %s  y = %s  z = %s",
		number(h.QoffsetX), number(h.QoffsetY), number(h.QoffsetZ))
	for i, axis := range []string{"X", "Y", "Z"} {
		colon("S-Form Parameters "+axis, "%s", joinFormatted(h.Affine[i][:]))
	}
	eq("Slice Code", "%d", h.SliceCode)
	eq("Units Code", "%d (%s, %s)", h.XYZTUnits,
		lookup.UnitsString(h.SpatialUnits()), lookup.UnitsString(h.TemporalUnits()))
	eq("Intent Code", "%d", h.IntentCode)
	quoted("Intent Name", h.IntentName)
	eq("Dim Info", "%d", h.DimInfo)

	return lines
}

// FormattedString returns a multi-line report of the header, one labeled
// line per field group, resolving codes through lookup. Text fields are
// printed raw between double quotes.
func (h *Header) FormattedString(lookup nifti.CodeLookup) string {
	var sb strings.Builder
	for _, l := range h.report(lookup) {
		sb.WriteString(l.label)
		sb.WriteString(l.sep)
		sb.WriteString(l.value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns the header report using the standard code labels.
func (h *Header) String() string {
	return h.FormattedString(nifti.StandardCodes{})
}

// Fields returns the header report as label/value pairs, in report order.
func (h *Header) Fields() [][2]string {
	lines := h.report(nifti.StandardCodes{})
	pairs := make([][2]string, len(lines))
	for i, l := range lines {
		pairs[i] = [2]string{l.label, strings.TrimSpace(l.value)}
	}
	return pairs
}

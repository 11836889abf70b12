package nifti2

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// jsonFloat encodes non-finite values as the strings the header report
// uses ("NaN", "Infinity", "-Infinity").
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(number(v))
	}
	return json.Marshal(v)
}

// MarshalJSON encodes the header field by field under its json tags.
// Floating point fields may hold NaN or infinities, which encoding/json
// rejects, so they are written through jsonFloat.
func (h *Header) MarshalJSON() ([]byte, error) {
	v := reflect.ValueOf(h).Elem()
	t := v.Type()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" {
			name = t.Field(i).Name
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(jsonValue(v.Field(i)))
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return jsonFloat(v.Float())
	case reflect.Array:
		if !holdsFloats(v.Type()) {
			break
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = jsonValue(v.Index(i))
		}
		return out
	}
	return v.Interface()
}

func holdsFloats(t reflect.Type) bool {
	for t.Kind() == reflect.Array {
		t = t.Elem()
	}
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

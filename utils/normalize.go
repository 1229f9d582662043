package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims string fields and rounds float64 fields in place on a
// pointer-to-struct create DTO (client, project, item inputs use value fields).
func NormalizeDTO(dto any) {
	s := structValue(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		normalizeField(s.Field(i))
	}
}

// NormalizePtrDTO does the same for patch DTOs built from pointer fields.
// Nil pointers are left alone so absent fields never reach the update map.
func NormalizePtrDTO(dto any) {
	s := structValue(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		normalizeField(f.Elem())
	}
}

func structValue(dto any) reflect.Value {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return reflect.Value{}
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return s
}

func normalizeField(f reflect.Value) {
	if !f.CanSet() {
		return
	}
	switch f.Kind() {
	case reflect.String:
		f.SetString(strings.TrimSpace(f.String()))
	case reflect.Float64:
		f.SetFloat(Round2(f.Float()))
	}
}

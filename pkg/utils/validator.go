package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// ใช้ชื่อจาก json tag เพื่อให้ client เห็นชื่อ field เดียวกับที่ส่งมา
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidateStruct ตรวจ struct ตาม validate tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors แปลง error จาก ValidateStruct เป็น field -> message
func GetValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		if err != nil {
			fields["_"] = err.Error()
		}
		return fields
	}

	for _, fe := range validationErrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("must be less than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "alphanum":
		return "must contain only letters and numbers"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// DecodeAndValidate decode JSON body ทีละ field แล้วรัน validate tags
// คืน field -> message ของทุก field ที่ไม่ผ่าน (type ผิดหรือผิด rule) หรือ nil ถ้าผ่านหมด
func DecodeAndValidate(body []byte, out any) map[string]string {
	var raw map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return map[string]string{"body": "must be a valid JSON object"}
		}
	}

	fields := make(map[string]string)

	v := reflect.ValueOf(out).Elem()
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if !sf.IsExported() || name == "" || name == "-" {
			continue
		}

		value, ok := lookupField(raw, name)
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			fields[name] = typeMessage(sf.Type)
		}
	}

	if err := ValidateStruct(out); err != nil {
		for field, message := range GetValidationErrors(err) {
			// type error ของ field เดียวกันสำคัญกว่า
			if _, exists := fields[field]; !exists {
				fields[field] = message
			}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// lookupField หา key แบบเดียวกับ encoding/json (ตรงตัวก่อน แล้วไม่สนตัวพิมพ์)
func lookupField(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := raw[name]; ok {
		return value, true
	}
	for key, value := range raw {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func typeMessage(t reflect.Type) string {
	typeName := jsonTypeName(t)
	if typeName == "date" {
		return "must be an RFC 3339 date"
	}
	return "must be of type " + typeName
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Time{}) {
		return "date"
	}
	switch {
	case t.Kind() == reflect.String:
		return "string"
	case t.Kind() == reflect.Bool:
		return "boolean"
	case isNumeric(t.Kind()):
		return "number"
	default:
		return t.String()
	}
}

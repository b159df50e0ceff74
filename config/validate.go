package config

import (
	"fmt"
	"math"
)

type valueCache struct {
	stringVal      string
	stringArrayVal []string
	intVal         int64
	boolVal        bool
}

func (vc *valueCache) getData(opt *Option) interface{} {
	switch opt.OptType {
	case OptTypeBool:
		return vc.boolVal
	case OptTypeInt:
		return vc.intVal
	case OptTypeString:
		return vc.stringVal
	case OptTypeStringArray:
		return vc.stringArrayVal
	default:
		return nil
	}
}

func validateValue(option *Option, value interface{}) (*valueCache, error) {
	switch v := value.(type) {
	case nil:
		return nil, newInvalidValueError(option.Key, v, "value is missing")

	case string:
		if option.OptType != OptTypeString {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type string")
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(v) {
			return nil, newInvalidValueError(option.Key, v, "validation regex failed")
		}
		return &valueCache{stringVal: v}, nil

	case []interface{}:
		// json arrays arrive untyped
		converted := make([]string, len(v))
		for pos, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, newInvalidValueError(option.Key, fmt.Sprintf("element %+v at index %d", entry, pos), "not a string")
			}
			converted[pos] = s
		}
		return validateValue(option, converted)

	case []string:
		if option.OptType != OptTypeStringArray {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type []string")
		}
		if option.compiledRegex != nil {
			for pos, entry := range v {
				if !option.compiledRegex.MatchString(entry) {
					return nil, newInvalidValueError(option.Key, fmt.Sprintf("element %s at index %d", entry, pos), "validation regex failed")
				}
			}
		}
		return &valueCache{stringArrayVal: v}, nil

	case bool:
		if option.OptType != OptTypeBool {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type bool")
		}
		return &valueCache{boolVal: v}, nil
	}

	// numbers
	n, isNumber, err := toInt64(value)
	if !isNumber {
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", value), "invalid value")
	}
	if option.OptType != OptTypeInt {
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", value), "expected type int")
	}
	if err != nil {
		return nil, newInvalidValueError(option.Key, value, err.Error())
	}
	// %v handles float and int alike
	if option.compiledRegex != nil && !option.compiledRegex.MatchString(fmt.Sprintf("%v", value)) {
		return nil, newInvalidValueError(option.Key, value, "validation regex failed")
	}
	return &valueCache{intVal: n}, nil
}

// toInt64 converts any number type to int64. uint64 is not supported, as it
// does not fit into an int64.
func toInt64(value interface{}) (n int64, isNumber bool, err error) {
	switch v := value.(type) {
	case int:
		return int64(v), true, nil
	case int8:
		return int64(v), true, nil
	case int16:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case uint:
		return int64(v), true, nil
	case uint8:
		return int64(v), true, nil
	case uint16:
		return int64(v), true, nil
	case uint32:
		return int64(v), true, nil
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	default:
		return 0, false, nil
	}
}

func floatToInt64(f float64) (int64, bool, error) {
	if math.Remainder(f, 1) != 0 {
		return 0, true, fmt.Errorf("cannot convert %v to int without losing precision", f)
	}
	return int64(f), true, nil
}

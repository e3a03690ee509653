package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// Parse decodes a complete JSON document. Object keys keep the order in
// which they appear in data.
func Parse(data []byte) (Value, error) {
	// jsonparser walks lazily and tolerates some malformed input, so the
	// document is checked for well-formedness first.
	if !json.Valid(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return Value{}, fmt.Errorf("invalid JSON: %w", err)
		}
		return Value{}, errors.New("invalid JSON")
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return convert(raw, dataType)
}

// MustParse is like [Parse] but panics on error. It is meant for tests and
// literals known to be valid.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("jsonvalue.MustParse(%q): %v", s, err))
	}
	return v
}

func convert(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case jsonparser.Number:
		// strconv keeps the range error that jsonparser.ParseFloat hides.
		n, err := strconv.ParseFloat(string(raw), 64)
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("number %s out of range", raw)
		}
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", raw, err)
		}
		return Value{kind: KindNumber, n: n, raw: string(raw)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case jsonparser.Array:
		return convertArray(raw)
	case jsonparser.Object:
		return convertObject(raw)
	default:
		return Value{}, fmt.Errorf("unexpected JSON token %q", raw)
	}
}

func convertArray(raw []byte) (Value, error) {
	items := []Value{}
	var walkErr error
	_, err := jsonparser.ArrayEach(raw, func(item []byte, dataType jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = err
			return
		}
		v, err := convert(item, dataType)
		if err != nil {
			walkErr = err
			return
		}
		items = append(items, v)
	})
	if walkErr != nil {
		return Value{}, walkErr
	}
	if err != nil {
		return Value{}, err
	}
	return List(items...), nil
}

func convertObject(raw []byte) (Value, error) {
	obj := NewObject()
	err := jsonparser.ObjectEach(raw, func(key []byte, item []byte, dataType jsonparser.ValueType, _ int) error {
		// ObjectEach hands over keys already unescaped.
		v, err := convert(item, dataType)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(string(key), v)
		return nil
	})
	if err != nil {
		return Value{}, err
	}
	return Map(obj), nil
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValueKind enumerates the value kinds a metadata entry can hold
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindList
	KindMap
)

// String returns the name of the kind
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single metadata value. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flt  float64
	b    bool
	t    time.Time
	list []Value
	m    Metadata
}

// Null returns a null value
func Null() Value { return Value{} }

// String returns a string value
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating point value
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp value truncated to millisecond precision in UTC
func Time(t time.Time) Value { return Value{kind: KindTime, t: t.UTC().Truncate(time.Millisecond)} }

// List returns a list value
func List(values ...Value) Value { return Value{kind: KindList, list: values} }

// Map returns a nested mapping value
func Map(m Metadata) Value { return Value{kind: KindMap, m: m} }

// Kind returns the kind of the value
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by the value
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer held by the value
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsFloat returns the float held by the value. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInt:
		return float64(v.num), true
	default:
		return 0, false
	}
}

// AsBool returns the boolean held by the value
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsTime returns the timestamp held by the value
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// AsList returns the list held by the value
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the nested mapping held by the value
func (v Value) AsMap() (Metadata, bool) { return v.m, v.kind == KindMap }

// Interface returns the value as a plain Go value
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for _, f := range v.m {
			out[f.Key] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Field is a single key/value entry of Metadata
type Field struct {
	Key   string
	Value Value
}

// Metadata is an ordered open-ended mapping attached to stored records.
// Keys keep the order in which they were first set.
type Metadata []Field

// Get returns the value stored under key
func (m Metadata) Get(key string) (Value, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set stores value under key, replacing an existing entry in place
func (m Metadata) Set(key string, value Value) Metadata {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Field{Key: key, Value: value})
}

// Keys returns the keys in order
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// MarshalBSON encodes the metadata as an embedded document
func (m Metadata) MarshalBSON() ([]byte, error) {
	return bson.Marshal(m.toD())
}

// UnmarshalBSON decodes an embedded document into the metadata
func (m *Metadata) UnmarshalBSON(data []byte) error {
	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	*m = metadataFromD(d)
	return nil
}

// MarshalBSONValue encodes the metadata as a document field. Nil metadata is stored as null.
func (m Metadata) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if m == nil {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(m.toD())
}

// UnmarshalBSONValue decodes a document field. Null and undefined decode to nil metadata.
func (m *Metadata) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*m = nil
		return nil
	case bsontype.EmbeddedDocument:
		return m.UnmarshalBSON(data)
	default:
		return fmt.Errorf("failed to decode metadata: unexpected BSON type %s", t)
	}
}

func (m Metadata) toD() bson.D {
	d := make(bson.D, 0, len(m))
	for _, f := range m {
		d = append(d, bson.E{Key: f.Key, Value: f.Value.toBSON()})
	}
	return d
}

func (v Value) toBSON() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.b
	case KindTime:
		return primitive.NewDateTimeFromTime(v.t)
	case KindList:
		a := make(bson.A, len(v.list))
		for i, item := range v.list {
			a[i] = item.toBSON()
		}
		return a
	case KindMap:
		return v.m.toD()
	default:
		return nil
	}
}

func metadataFromD(d primitive.D) Metadata {
	m := make(Metadata, 0, len(d))
	for _, e := range d {
		m = append(m, Field{Key: e.Key, Value: valueFromBSON(e.Value)})
	}
	return m
}

func metadataFromMap(raw map[string]any) Metadata {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := make(Metadata, 0, len(keys))
	for _, k := range keys {
		m = append(m, Field{Key: k, Value: valueFromBSON(raw[k])})
	}
	return m
}

func valueFromBSON(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case primitive.Null, primitive.Undefined:
		return Null()
	case string:
		return String(x)
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case int:
		return Int(int64(x))
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case primitive.DateTime:
		return Time(x.Time())
	case time.Time:
		return Time(x)
	case primitive.ObjectID:
		return String(x.Hex())
	case primitive.Decimal128:
		return String(x.String())
	case primitive.A:
		return listFromBSON(x)
	case []any:
		return listFromBSON(x)
	case primitive.D:
		return Map(metadataFromD(x))
	case primitive.M:
		return Map(metadataFromMap(x))
	case map[string]any:
		return Map(metadataFromMap(x))
	default:
		return String(fmt.Sprint(x))
	}
}

func listFromBSON(items []any) Value {
	list := make([]Value, len(items))
	for i, item := range items {
		list[i] = valueFromBSON(item)
	}
	return List(list...)
}

// MarshalJSON encodes the metadata as a JSON object keeping key order
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes a single value. Timestamps are written as RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindFloat:
		return json.Marshal(v.flt)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.m.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON object into the metadata keeping key order
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	switch v.kind {
	case KindNull:
		*m = nil
	case KindMap:
		*m = v.m
	default:
		return fmt.Errorf("metadata must be a JSON object, got %s", v.kind)
	}
	return nil
}

// UnmarshalJSON decodes a single JSON value
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	decoded, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Float(f), nil
	case json.Delim:
		switch t {
		case '{':
			m := Metadata{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				m = m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(m), nil
		case '[':
			list := []Value{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(list...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

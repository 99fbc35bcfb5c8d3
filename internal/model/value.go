package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"
)

// ErrCycle indicates a document or list contains itself, directly or
// indirectly, and cannot be rendered as JSON.
var ErrCycle = errors.New("cyclic reference")

// Value is a JSON-like value: String, Number, Bool, Null, *Document or *List.
// The union is closed so encoding is total apart from cycles and non-finite
// numbers.
type Value interface {
	valueKind() string
}

// String is a JSON string value
type String string

// Number is a JSON numeric value
type Number float64

// Bool is a JSON boolean value
type Bool bool

// Null is the JSON null value
type Null struct{}

func (String) valueKind() string    { return "string" }
func (Number) valueKind() string    { return "number" }
func (Bool) valueKind() string      { return "bool" }
func (Null) valueKind() string      { return "null" }
func (*Document) valueKind() string { return "document" }
func (*List) valueKind() string     { return "list" }

// Document is an ordered string-keyed mapping of values. Keys keep their
// insertion order through encoding.
type Document struct {
	keys   []string
	fields map[string]Value
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{fields: make(map[string]Value)}
}

// Set stores a value under a key, appending the key on first use and keeping
// its original position on overwrite. Returns the document for chaining.
func (d *Document) Set(key string, value Value) *Document {
	if d.fields == nil {
		d.fields = make(map[string]Value)
	}
	if _, exists := d.fields[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = value
	return d
}

// Get retrieves the value stored under a key
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Keys returns the document's keys in insertion order
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len returns the number of keys in the document
func (d *Document) Len() int {
	return len(d.keys)
}

// List is an ordered sequence of values
type List struct {
	items []Value
}

// NewList creates a list from the given values
func NewList(items ...Value) *List {
	return &List{items: items}
}

// Append adds values to the end of the list
func (l *List) Append(items ...Value) *List {
	l.items = append(l.items, items...)
	return l
}

// Items returns the list's values in order
func (l *List) Items() []Value {
	items := make([]Value, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of values in the list
func (l *List) Len() int {
	return len(l.items)
}

// Encode renders a value as pretty-printed JSON with two-space indentation,
// preserving document key order. It fails on cyclic documents or lists and on
// non-finite numbers.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := &encoder{buf: &buf, seen: make(map[interface{}]bool)}
	if err := enc.encode(v, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

type encoder struct {
	buf  *bytes.Buffer
	seen map[interface{}]bool
}

func (e *encoder) encode(v Value, depth int) error {
	switch val := v.(type) {
	case nil, Null:
		e.buf.WriteString("null")
	case String:
		data, err := json.Marshal(string(val))
		if err != nil {
			return fmt.Errorf("encode string: %w", err)
		}
		e.buf.Write(data)
	case Number:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("encode number: %v is not representable in JSON", f)
		}
		e.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case Bool:
		e.buf.WriteString(strconv.FormatBool(bool(val)))
	case *Document:
		return e.encodeDocument(val, depth)
	case *List:
		return e.encodeList(val, depth)
	default:
		return fmt.Errorf("encode: unsupported value type %T", v)
	}
	return nil
}

func (e *encoder) encodeDocument(d *Document, depth int) error {
	if d == nil {
		e.buf.WriteString("null")
		return nil
	}
	if e.seen[d] {
		return fmt.Errorf("encode document: %w", ErrCycle)
	}
	e.seen[d] = true
	defer delete(e.seen, d)

	if len(d.keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteString("{\n")
	for i, key := range d.keys {
		e.writeIndent(depth + 1)
		keyData, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("encode key %q: %w", key, err)
		}
		e.buf.Write(keyData)
		e.buf.WriteString(": ")
		if err := e.encode(d.fields[key], depth+1); err != nil {
			return err
		}
		if i < len(d.keys)-1 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteByte('\n')
	}
	e.writeIndent(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeList(l *List, depth int) error {
	if l == nil {
		e.buf.WriteString("null")
		return nil
	}
	if e.seen[l] {
		return fmt.Errorf("encode list: %w", ErrCycle)
	}
	e.seen[l] = true
	defer delete(e.seen, l)

	if len(l.items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	e.buf.WriteString("[\n")
	for i, item := range l.items {
		e.writeIndent(depth + 1)
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
		if i < len(l.items)-1 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteByte('\n')
	}
	e.writeIndent(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.buf.WriteString("  ")
	}
}

// Decode parses JSON text into a value, preserving object key order
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the first value
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode: unexpected trailing content")
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return decodeToken(dec, token)
}

func decodeToken(dec *json.Decoder, token json.Token) (Value, error) {
	switch t := token.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeDocument(dec)
		case '[':
			return decodeList(dec)
		}
	}
	return nil, fmt.Errorf("decode: unexpected token %v", token)
}

func decodeDocument(dec *json.Decoder) (*Document, error) {
	doc := NewDocument()
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("decode: non-string key %v", keyToken)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		doc.Set(key, value)
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

func decodeList(dec *json.Decoder) (*List, error) {
	list := NewList()
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		list.Append(value)
	}
	// Consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return list, nil
}

// FromGo converts a plain Go value into a Value. Maps are sorted by key since
// Go map iteration order is undefined; use a Document directly when insertion
// order matters. Unsupported types fail.
func FromGo(v interface{}) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Number(val), nil
	case int8:
		return Number(val), nil
	case int16:
		return Number(val), nil
	case int32:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case uint:
		return Number(val), nil
	case uint8:
		return Number(val), nil
	case uint16:
		return Number(val), nil
	case uint32:
		return Number(val), nil
	case uint64:
		return Number(val), nil
	case float32:
		return Number(val), nil
	case float64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("convert number %q: %w", val.String(), err)
		}
		return Number(f), nil
	case time.Time:
		return String(val.UTC().Format(time.RFC3339)), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := NewDocument()
		for _, k := range keys {
			converted, err := FromGo(val[k])
			if err != nil {
				return nil, fmt.Errorf("convert key %q: %w", k, err)
			}
			doc.Set(k, converted)
		}
		return doc, nil
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := NewDocument()
		for _, k := range keys {
			doc.Set(k, String(val[k]))
		}
		return doc, nil
	case []interface{}:
		list := NewList()
		for i, item := range val {
			converted, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("convert index %d: %w", i, err)
			}
			list.Append(converted)
		}
		return list, nil
	case []string:
		list := NewList()
		for _, item := range val {
			list.Append(String(item))
		}
		return list, nil
	default:
		return nil, fmt.Errorf("convert: unsupported type %T", v)
	}
}

// ToGo converts a Value back into plain Go types: string, float64, bool, nil,
// map[string]interface{} and []interface{}. Document key order is lost.
func ToGo(v Value) interface{} {
	switch val := v.(type) {
	case String:
		return string(val)
	case Number:
		return float64(val)
	case Bool:
		return bool(val)
	case *Document:
		if val == nil {
			return nil
		}
		m := make(map[string]interface{}, len(val.keys))
		for _, k := range val.keys {
			m[k] = ToGo(val.fields[k])
		}
		return m
	case *List:
		if val == nil {
			return nil
		}
		items := make([]interface{}, len(val.items))
		for i, item := range val.items {
			items[i] = ToGo(item)
		}
		return items
	default:
		return nil
	}
}

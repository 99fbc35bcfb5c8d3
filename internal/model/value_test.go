package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	t.Run("Keys keep insertion order", func(t *testing.T) {
		doc := NewDocument().
			Set("zebra", Number(1)).
			Set("apple", Number(2)).
			Set("mango", Number(3))

		assert.Equal(t, []string{"zebra", "apple", "mango"}, doc.Keys())
		assert.Equal(t, 3, doc.Len())
	})

	t.Run("Overwriting a key keeps its original position", func(t *testing.T) {
		doc := NewDocument().
			Set("first", Number(1)).
			Set("second", Number(2))
		doc.Set("first", Number(10))

		assert.Equal(t, []string{"first", "second"}, doc.Keys())
		v, ok := doc.Get("first")
		require.True(t, ok)
		assert.Equal(t, Number(10), v)
	})

	t.Run("Get reports missing keys", func(t *testing.T) {
		doc := NewDocument()

		_, ok := doc.Get("absent")
		assert.False(t, ok)
	})
}

func TestList(t *testing.T) {
	t.Run("Items keep order", func(t *testing.T) {
		list := NewList(String("a")).Append(String("b"), String("c"))

		assert.Equal(t, 3, list.Len())
		assert.Equal(t, []Value{String("a"), String("b"), String("c")}, list.Items())
	})
}

func TestEncode(t *testing.T) {
	t.Run("Pretty prints with two-space indentation and original key order", func(t *testing.T) {
		doc := NewDocument().
			Set("total_lines", Number(1000)).
			Set("covered_lines", Number(850)).
			Set("coverage_percent", Number(85.0))

		data, err := Encode(doc)
		require.NoError(t, err)

		expected := "{\n" +
			"  \"total_lines\": 1000,\n" +
			"  \"covered_lines\": 850,\n" +
			"  \"coverage_percent\": 85\n" +
			"}\n"
		assert.Equal(t, expected, string(data))
	})

	t.Run("Nested documents and lists indent one level per depth", func(t *testing.T) {
		doc := NewDocument().
			Set("name", String("run")).
			Set("files", NewList(String("a.go"), String("b.go"))).
			Set("meta", NewDocument().Set("ok", Bool(true)))

		data, err := Encode(doc)
		require.NoError(t, err)

		expected := "{\n" +
			"  \"name\": \"run\",\n" +
			"  \"files\": [\n" +
			"    \"a.go\",\n" +
			"    \"b.go\"\n" +
			"  ],\n" +
			"  \"meta\": {\n" +
			"    \"ok\": true\n" +
			"  }\n" +
			"}\n"
		assert.Equal(t, expected, string(data))
	})

	t.Run("Empty document and list encode compactly", func(t *testing.T) {
		data, err := Encode(NewDocument().Set("d", NewDocument()).Set("l", NewList()))
		require.NoError(t, err)

		assert.Contains(t, string(data), "\"d\": {}")
		assert.Contains(t, string(data), "\"l\": []")
	})

	t.Run("Null and nil encode as JSON null", func(t *testing.T) {
		data, err := Encode(NewDocument().Set("a", Null{}).Set("b", nil))
		require.NoError(t, err)

		assert.Contains(t, string(data), "\"a\": null")
		assert.Contains(t, string(data), "\"b\": null")
	})

	t.Run("Strings are escaped", func(t *testing.T) {
		data, err := Encode(NewDocument().Set("msg", String("line\n\"quoted\"")))
		require.NoError(t, err)

		assert.Contains(t, string(data), `"msg": "line\n\"quoted\""`)
	})

	t.Run("Cyclic document fails", func(t *testing.T) {
		doc := NewDocument().Set("name", String("loop"))
		doc.Set("self", doc)

		_, err := Encode(doc)
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("Indirect cycle through a list fails", func(t *testing.T) {
		doc := NewDocument()
		list := NewList()
		list.Append(doc)
		doc.Set("items", list)

		_, err := Encode(doc)
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("Shared but acyclic subdocuments are allowed", func(t *testing.T) {
		shared := NewDocument().Set("ok", Bool(true))
		doc := NewDocument().Set("a", shared).Set("b", shared)

		_, err := Encode(doc)
		assert.NoError(t, err)
	})

	t.Run("Non-finite numbers fail", func(t *testing.T) {
		_, err := Encode(NewDocument().Set("bad", Number(math.NaN())))
		assert.Error(t, err)

		_, err = Encode(NewDocument().Set("bad", Number(math.Inf(1))))
		assert.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	t.Run("Preserves object key order", func(t *testing.T) {
		value, err := Decode([]byte(`{"zebra": 1, "apple": 2, "mango": [true, null, "x"]}`))
		require.NoError(t, err)

		doc, ok := value.(*Document)
		require.True(t, ok)
		assert.Equal(t, []string{"zebra", "apple", "mango"}, doc.Keys())
	})

	t.Run("Rejects malformed JSON", func(t *testing.T) {
		_, err := Decode([]byte(`{"open": `))
		assert.Error(t, err)
	})

	t.Run("Rejects trailing content", func(t *testing.T) {
		_, err := Decode([]byte(`{} {}`))
		assert.Error(t, err)
	})

	t.Run("Round trips an encoded document", func(t *testing.T) {
		doc := NewDocument().
			Set("commit_hash", String("abc123")).
			Set("files_changed", NewList(String("src/module.py"))).
			Set("nested", NewDocument().Set("count", Number(3)).Set("flag", Bool(false)))

		data, err := Encode(doc)
		require.NoError(t, err)

		parsed, err := Decode(data)
		require.NoError(t, err)

		back, ok := parsed.(*Document)
		require.True(t, ok)
		assert.Equal(t, doc.Keys(), back.Keys())
		assert.Equal(t, ToGo(doc), ToGo(back))
	})
}

func TestFromGo(t *testing.T) {
	t.Run("Converts scalars and containers", func(t *testing.T) {
		value, err := FromGo(map[string]interface{}{
			"name":    "run",
			"count":   3,
			"ratio":   1.5,
			"ok":      true,
			"nothing": nil,
			"files":   []string{"a.go"},
			"mixed":   []interface{}{"x", 1, false},
		})
		require.NoError(t, err)

		doc, ok := value.(*Document)
		require.True(t, ok)
		// Map input is sorted by key
		assert.Equal(t, []string{"count", "files", "mixed", "name", "nothing", "ok", "ratio"}, doc.Keys())
	})

	t.Run("Converts times to RFC3339 strings", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

		value, err := FromGo(ts)
		require.NoError(t, err)
		assert.Equal(t, String("2025-06-01T12:30:00Z"), value)
	})

	t.Run("Passes values through unchanged", func(t *testing.T) {
		doc := NewDocument().Set("x", Number(1))

		value, err := FromGo(doc)
		require.NoError(t, err)
		assert.Same(t, doc, value.(*Document))
	})

	t.Run("Rejects unsupported types", func(t *testing.T) {
		_, err := FromGo(make(chan int))
		assert.Error(t, err)

		_, err = FromGo(map[string]interface{}{"fn": func() {}})
		assert.Error(t, err)
	})
}

func TestToGo(t *testing.T) {
	t.Run("Converts back to plain Go types", func(t *testing.T) {
		doc := NewDocument().
			Set("name", String("run")).
			Set("count", Number(3)).
			Set("ok", Bool(true)).
			Set("none", Null{}).
			Set("items", NewList(Number(1), Number(2)))

		got := ToGo(doc)

		assert.Equal(t, map[string]interface{}{
			"name":  "run",
			"count": 3.0,
			"ok":    true,
			"none":  nil,
			"items": []interface{}{1.0, 2.0},
		}, got)
	})
}

package jsonpointer

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEscaping(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		assert.Equal(t, "a~1b", EncodeSegment("a/b"))
		assert.Equal(t, "m~0n", EncodeSegment("m~n"))
		assert.Equal(t, "~0~1", EncodeSegment("~/"))
		assert.Equal(t, "plain", EncodeSegment("plain"))
	})

	t.Run("decode", func(t *testing.T) {
		assert.Equal(t, "a/b", DecodeSegment("a~1b"))
		assert.Equal(t, "m~n", DecodeSegment("m~0n"))
		assert.Equal(t, "~/", DecodeSegment("~0~1"))
	})

	t.Run("decode order per rfc 6901", func(t *testing.T) {
		// "~01" must decode to "~1", not "/".
		assert.Equal(t, "~1", DecodeSegment("~01"))
	})
}

func TestCreatePath(t *testing.T) {
	assert.Equal(t, "", CreatePath())
	assert.Equal(t, "/a", CreatePath("a"))
	assert.Equal(t, "/a/b~1c/d~0e", CreatePath("a", "b/c", "d~e"))
	assert.Equal(t, "/", CreatePath(""))
}

func TestSegments(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		segs, err := Segments("/a/b~1c/d~0e")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b/c", "d~e"}, segs)
	})

	t.Run("empty pointer is the whole document", func(t *testing.T) {
		segs, err := Segments("")
		require.NoError(t, err)
		assert.Nil(t, segs)
	})

	t.Run("missing leading slash", func(t *testing.T) {
		_, err := Segments("a/b")
		require.Error(t, err)
	})
}

func TestEvaluate(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "doc",
		"a/b": 1,
		"m~n": 2,
		"items": [{"name": "first"}, {"name": "second"}],
		"nested": {"deep": {"value": true}}
	}`), &doc))

	t.Run("resolves values", func(t *testing.T) {
		for pointer, want := range map[string]any{
			"":                   doc,
			"/title":             "doc",
			"/a~1b":              float64(1),
			"/m~0n":              float64(2),
			"/items/0/name":      "first",
			"/items/1/name":      "second",
			"/nested/deep/value": true,
		} {
			got, err := Evaluate(doc, pointer)
			require.NoError(t, err, pointer)
			assert.Equal(t, want, got, pointer)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := Evaluate(doc, "/absent")
		require.Error(t, err)
	})

	t.Run("array index errors", func(t *testing.T) {
		for _, pointer := range []string{"/items/2", "/items/-", "/items/01", "/items/x", "/items/-1"} {
			_, err := Evaluate(doc, pointer)
			require.Error(t, err, pointer)
		}
	})

	t.Run("descend into scalar", func(t *testing.T) {
		_, err := Evaluate(doc, "/title/oops")
		require.Error(t, err)
	})
}

// Encoding then splitting a pointer must return the original segments for
// any token, including ones containing "~" and "/".
func TestPointerRoundTripProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200

	segment := gen.OneGenOf(
		gen.AlphaString(),
		gen.RegexMatch(`[a-z~/]{1,8}`),
	)

	properties := gopter.NewProperties(params)
	properties.Property("segments survive the round trip", prop.ForAll(
		func(segs []string) bool {
			got, err := Segments(CreatePath(segs...))
			if err != nil {
				return false
			}
			if len(segs) == 0 {
				return got == nil
			}
			if len(got) != len(segs) {
				return false
			}
			for i := range segs {
				if got[i] != segs[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(segment),
	))
	properties.TestingRun(t)
}

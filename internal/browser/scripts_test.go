// internal/browser/scripts_test.go
package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", `#popup`, `"#popup"`},
		{"EmbeddedQuotes", `a[name="x"]`, `"a[name=\"x\"]"`},
		{"Backslash", `a\b`, `"a\\b"`},
		{"BreakoutAttempt", `"); alert(1); ("`, `"\"); alert(1); (\""`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, jsString(tc.in))
		})
	}
}

func TestJSStrings(t *testing.T) {
	assert.Equal(t, `["x-after","y-below"]`, jsStrings([]string{"x-after", "y-below"}))
	assert.Equal(t, `[]`, jsStrings([]string{}))
}

func TestJSObject(t *testing.T) {
	got := jsObject(map[string]string{"left": "100px"})
	assert.Equal(t, `{"left":"100px"}`, got)
}

func TestScriptsInterpolateSafely(t *testing.T) {
	// Node expressions are built from jsString-encoded selectors upstream;
	// the script builders must embed them verbatim inside an IIFE.
	nodeExpr := `document.querySelector("#popup")`

	t.Run("Exists", func(t *testing.T) {
		s := existsScript(nodeExpr)
		assert.Contains(t, s, nodeExpr)
		assert.Contains(t, s, "!!")
	})

	t.Run("BoundingRect", func(t *testing.T) {
		s := boundingRectScript(nodeExpr)
		assert.Contains(t, s, "getBoundingClientRect")
		assert.Contains(t, s, "return null", "a vanished node must yield null, not throw")
	})

	t.Run("ClientRects", func(t *testing.T) {
		s := clientRectsScript(nodeExpr)
		assert.Contains(t, s, "getClientRects")
		assert.Contains(t, s, "Array.from")
	})

	t.Run("ApplyStyles", func(t *testing.T) {
		s := applyStylesScript(nodeExpr, map[string]string{"left": "100px"}, true)
		assert.Contains(t, s, `{"left":"100px"}`)
		assert.Contains(t, s, "removeAttribute('style')")
		assert.Contains(t, s, "setProperty")
	})

	t.Run("AddClasses", func(t *testing.T) {
		s := addClassesScript(nodeExpr, []string{"x-after"})
		assert.Contains(t, s, `classList.add(...["x-after"])`)
	})
}

func TestMoveAndRestoreScripts(t *testing.T) {
	nodeExpr := `document.querySelector("#popup")`
	targetExpr := `document.querySelector("#overlay")`

	t.Run("MoveRemembersOrigin", func(t *testing.T) {
		s := moveScript(nodeExpr, targetExpr, true)
		assert.Contains(t, s, "__anchorpopOrigins")
		assert.Contains(t, s, "WeakMap")
		assert.Contains(t, s, "document.body", "missing target falls back to the document root")
	})

	t.Run("AppendSkipsOrigin", func(t *testing.T) {
		s := moveScript(nodeExpr, targetExpr, false)
		assert.Contains(t, s, "if (false)")
	})

	t.Run("RestoreReinserts", func(t *testing.T) {
		s := restoreScript(nodeExpr)
		assert.Contains(t, s, "insertBefore")
		assert.Contains(t, s, "origins.delete(node)")
	})
}

// internal/browser/scripts.go
package browser

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// The scripts below are IIFEs evaluated in the page. Every dynamic piece is
// JSON-encoded before interpolation so selectors with quotes or backslashes
// cannot break out of the script.

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsString JSON-encodes a Go string into a safe JS string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshal of a plain string cannot fail; keep the script well-formed
		// regardless.
		return `""`
	}
	return string(b)
}

// jsStrings JSON-encodes a slice into a JS array literal.
func jsStrings(ss []string) string {
	b, err := json.Marshal(ss)
	if err != nil {
		return `[]`
	}
	return string(b)
}

// jsObject JSON-encodes a flat property map into a JS object literal.
func jsObject(props map[string]string) string {
	b, err := json.Marshal(props)
	if err != nil {
		return `{}`
	}
	return string(b)
}

func existsScript(nodeExpr string) string {
	return fmt.Sprintf(`(() => { return !!(%s); })()`, nodeExpr)
}

func boundingRectScript(nodeExpr string) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return null;
		const r = node.getBoundingClientRect();
		return { x: r.x, y: r.y, left: r.left, top: r.top, right: r.right, bottom: r.bottom, width: r.width, height: r.height };
	})()`, nodeExpr)
}

func clientRectsScript(nodeExpr string) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return null;
		return Array.from(node.getClientRects(), r => ({ x: r.x, y: r.y, left: r.left, top: r.top, right: r.right, bottom: r.bottom, width: r.width, height: r.height }));
	})()`, nodeExpr)
}

func hasParentScript(nodeExpr string) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		return !!(node && node.parentElement);
	})()`, nodeExpr)
}

const viewportScript = `(() => { return { width: window.innerWidth, height: window.innerHeight }; })()`

func applyStylesScript(nodeExpr string, props map[string]string, reset bool) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return false;
		if (%t) node.removeAttribute('style');
		const props = %s;
		for (const [prop, value] of Object.entries(props)) {
			node.style.setProperty(prop, value);
		}
		return true;
	})()`, nodeExpr, reset, jsObject(props))
}

func addClassesScript(nodeExpr string, classes []string) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return false;
		node.classList.add(...%s);
		return true;
	})()`, nodeExpr, jsStrings(classes))
}

// moveScript reparents a node. When remember is true the node's original
// parent and next sibling are stashed in a page-side WeakMap so restoreScript
// can reinsert it later. A target expression that resolves to nothing falls
// back to the document root.
func moveScript(nodeExpr, targetExpr string, remember bool) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return false;
		let target = %s;
		if (!target) target = document.body;
		if (%t) {
			window.__anchorpopOrigins = window.__anchorpopOrigins || new WeakMap();
			if (!window.__anchorpopOrigins.has(node)) {
				window.__anchorpopOrigins.set(node, { parent: node.parentElement, next: node.nextSibling });
			}
		}
		target.appendChild(node);
		return true;
	})()`, nodeExpr, targetExpr, remember)
}

func restoreScript(nodeExpr string) string {
	return fmt.Sprintf(`
	(() => {
		const node = %s;
		if (!node) return false;
		const origins = window.__anchorpopOrigins;
		const origin = origins && origins.get(node);
		if (!origin || !origin.parent) return false;
		origin.parent.insertBefore(node, origin.next);
		origins.delete(node);
		return true;
	})()`, nodeExpr)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontendBundle(t *testing.T) {
	t.Run("tagged blocks become files", func(t *testing.T) {
		output := "```javascript:src/App.jsx\nexport default function App() { return null; }\n```\n" +
			"```json:package.json\n{\"name\": \"frontend\", \"version\": \"0.1.0\"}\n```"
		bundle := FrontendBundle(output)
		assert.Len(t, bundle, 2)
		assert.Contains(t, bundle, "src/App.jsx")
		assert.Contains(t, bundle, "package.json")
	})

	t.Run("common word tag is rejected", func(t *testing.T) {
		output := "```js:on\nthis is not a real file body but long enough\n```"
		bundle := FrontendBundle(output)
		// the rejected block leaves zero valid files, so the fallback applies
		assert.Len(t, bundle, 1)
		assert.Contains(t, bundle, "src/App.jsx")
	})

	t.Run("frontend prefix stripped", func(t *testing.T) {
		output := "```css:frontend/src/App.css\nbody { margin: 0; padding: 0; }\n```"
		bundle := FrontendBundle(output)
		assert.Contains(t, bundle, "src/App.css")
	})

	t.Run("bare component rooted under src", func(t *testing.T) {
		output := "```jsx:TodoList.jsx\nexport function TodoList() { return null; }\n```"
		bundle := FrontendBundle(output)
		assert.Contains(t, bundle, "src/TodoList.jsx")
	})

	t.Run("tiny blocks dropped", func(t *testing.T) {
		output := "```js:src/util.js\nx=1\n```"
		bundle := FrontendBundle(output)
		assert.NotContains(t, bundle, "src/util.js")
	})

	t.Run("unknown extension rejected", func(t *testing.T) {
		output := "```js:src/notes.md\nnot a frontend file but long enough to pass\n```"
		bundle := FrontendBundle(output)
		assert.NotContains(t, bundle, "src/notes.md")
	})

	t.Run("no blocks falls back to single component", func(t *testing.T) {
		output := "```\nconst App = () => <div>hi</div>;\n```"
		bundle := FrontendBundle(output)
		assert.Len(t, bundle, 1)
		assert.Equal(t, "const App = () => <div>hi</div>;", bundle["src/App.jsx"])
	})
}

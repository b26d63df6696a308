package introspect

import (
	htmltemplate "html/template"
	"reflect"
	"testing"
	texttemplate "text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Invoice struct {
	Total int64 `json:"total"`
}

// INVOICE collides with Invoice under case-insensitive comparison.
type INVOICE struct {
	Amount int64 `json:"amount"`
}

func TestConflictDetection(t *testing.T) {
	e := New()

	n1, err := e.Introspect(Invoice{})
	require.NoError(t, err)
	n2, err := e.Introspect(INVOICE{})
	require.NoError(t, err)

	// Both entries stay in the cache under distinct output names.
	assert.NotEqual(t, n1, n2)
	require.Len(t, e.Schemas(), 2)

	conflicts := e.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Invoice", conflicts[0].Name)
	require.Len(t, conflicts[0].Members, 2)

	types := []reflect.Type{conflicts[0].Members[0].Type, conflicts[0].Members[1].Type}
	assert.Contains(t, types, reflect.TypeOf(Invoice{}))
	assert.Contains(t, types, reflect.TypeOf(INVOICE{}))
}

func TestConflictDoesNotBlockResolution(t *testing.T) {
	e := New()

	_, err := e.Introspect(Invoice{})
	require.NoError(t, err)
	_, err = e.Introspect(INVOICE{})
	require.NoError(t, err)

	// Re-introspecting conflicting types still short-circuits to the
	// cached entries.
	_, err = e.Introspect(Invoice{})
	require.NoError(t, err)
	_, err = e.Introspect(INVOICE{})
	require.NoError(t, err)

	assert.Len(t, e.Schemas(), 2)
	assert.Len(t, e.Conflicts(), 1)
}

func TestCacheUniqueNames(t *testing.T) {
	t.Run("package prefix on exact collision", func(t *testing.T) {
		c := newSchemaCache()

		first := c.insert(reflect.TypeOf(texttemplate.Template{}), "Template")
		second := c.insert(reflect.TypeOf(htmltemplate.Template{}), "Template")

		assert.Equal(t, "Template", first.Name)
		assert.Equal(t, "TemplateTemplate", second.Name)
	})

	t.Run("numeric suffix when prefix collides", func(t *testing.T) {
		c := newSchemaCache()

		c.insert(reflect.TypeOf(texttemplate.Template{}), "Template")
		c.insert(reflect.TypeOf(htmltemplate.Template{}), "Template")
		third := c.insert(reflect.TypeOf(struct{ X int }{}), "TemplateTemplate")

		assert.Equal(t, "TemplateTemplate2", third.Name)
	})
}

func TestCacheRollback(t *testing.T) {
	c := newSchemaCache()
	t1 := reflect.TypeOf(Invoice{})
	t2 := reflect.TypeOf(INVOICE{})

	c.insert(t1, "Invoice")
	c.insert(t2, "INVOICE")
	require.Len(t, c.conflictGroups(), 1)

	c.remove(t2, "INVOICE")

	assert.Nil(t, c.get(t2))
	assert.Empty(t, c.conflictGroups())
	assert.NotNil(t, c.get(t1))
}

func TestCacheRollbackSpan(t *testing.T) {
	c := newSchemaCache()
	t1 := reflect.TypeOf(Invoice{})
	t2 := reflect.TypeOf(INVOICE{})
	t3 := reflect.TypeOf(struct{ X int }{})

	c.insert(t1, "Invoice")
	mark := c.mark()
	c.insert(t2, "INVOICE")
	c.insert(t3, "Scratch")

	c.rollback(mark)

	assert.NotNil(t, c.get(t1))
	assert.Nil(t, c.get(t2))
	assert.Nil(t, c.get(t3))
	assert.Empty(t, c.conflictGroups())

	// The freed names are claimable again.
	assert.Equal(t, "INVOICE", c.insert(t2, "INVOICE").Name)
}

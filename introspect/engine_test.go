package introspect

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectPrimitives(t *testing.T) {
	e := New()

	t.Run("bool", func(t *testing.T) {
		n, err := e.Introspect(true)
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindBoolean}, n)
	})

	t.Run("int32", func(t *testing.T) {
		n, err := e.Introspect(int32(0))
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindInteger, Format: "int32"}, n)
	})

	t.Run("int64", func(t *testing.T) {
		n, err := e.Introspect(int64(0))
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindInteger, Format: "int64"}, n)
	})

	t.Run("float32", func(t *testing.T) {
		n, err := e.Introspect(float32(0))
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindNumber, Format: "float"}, n)
	})

	t.Run("float64", func(t *testing.T) {
		n, err := e.Introspect(0.0)
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindNumber, Format: "double"}, n)
	})

	t.Run("string", func(t *testing.T) {
		n, err := e.Introspect("")
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindString}, n)
	})

	t.Run("bytes", func(t *testing.T) {
		n, err := e.Introspect([]byte{})
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindString, Format: "byte"}, n)
	})

	t.Run("time", func(t *testing.T) {
		n, err := e.Introspect(time.Time{})
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindString, Format: "date-time"}, n)
	})

	t.Run("duration", func(t *testing.T) {
		n, err := e.Introspect(time.Second)
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindInteger, Format: "int64"}, n)
	})

	t.Run("uuid", func(t *testing.T) {
		n, err := e.Introspect(uuid.UUID{})
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindString, Format: "uuid"}, n)
	})

	t.Run("url", func(t *testing.T) {
		n, err := e.Introspect(url.URL{})
		require.NoError(t, err)
		assert.Equal(t, Primitive{Kind: KindString, Format: "uri"}, n)
	})

	t.Run("nil", func(t *testing.T) {
		n, err := e.Introspect(nil)
		require.NoError(t, err)
		assert.Nil(t, n)
	})
}

type parcel struct {
	Color     string `json:"color"`
	Weight    int32  `json:"weight"`
	IsFragile bool   `json:"isFragile"`
}

func TestIntrospectObject(t *testing.T) {
	e := New()

	n, err := e.Introspect(parcel{})
	require.NoError(t, err)
	assert.Equal(t, Ref{Name: "parcel"}, n)

	schemas := e.Schemas()
	require.Len(t, schemas, 1)

	obj, ok := schemas[0].Node.(Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 3)

	assert.Equal(t, "color", obj.Properties[0].Name)
	assert.Equal(t, Primitive{Kind: KindString}, obj.Properties[0].Node)

	assert.Equal(t, "weight", obj.Properties[1].Name)
	assert.Equal(t, Primitive{Kind: KindInteger, Format: "int32"}, obj.Properties[1].Node)

	assert.Equal(t, "isFragile", obj.Properties[2].Name)
	assert.Equal(t, Primitive{Kind: KindBoolean}, obj.Properties[2].Node)

	for _, p := range obj.Properties {
		assert.True(t, p.Required, p.Name)
		assert.False(t, p.Nullable, p.Name)
	}
}

func TestIntrospectIdempotent(t *testing.T) {
	e := New()

	first, err := e.Introspect(parcel{})
	require.NoError(t, err)
	second, err := e.Introspect(parcel{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, e.Schemas(), 1)
}

type shipment struct {
	ID      string  `json:"id"`
	Content *parcel `json:"content,omitempty"`
}

func TestIntrospectNestedNullable(t *testing.T) {
	e := New()

	n, err := e.Introspect(shipment{})
	require.NoError(t, err)
	assert.Equal(t, Ref{Name: "shipment"}, n)

	schemas := e.Schemas()
	require.Len(t, schemas, 2)
	assert.Equal(t, "parcel", schemas[0].Name)
	assert.Equal(t, "shipment", schemas[1].Name)

	obj := schemas[1].Node.(Object)
	require.Len(t, obj.Properties, 2)

	content := obj.Properties[1]
	assert.Equal(t, Ref{Name: "parcel"}, content.Node)
	assert.True(t, content.Nullable)
	assert.False(t, content.Required)
}

func TestIntrospectNestedArrays(t *testing.T) {
	e := New()

	n, err := e.Introspect([][]parcel{})
	require.NoError(t, err)
	assert.Equal(t, Array{Items: Array{Items: Ref{Name: "parcel"}}}, n)

	require.Len(t, e.Schemas(), 1)
}

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next,omitempty"`
}

type ping struct {
	Pong *pong `json:"pong,omitempty"`
}

type pong struct {
	Ping *ping `json:"ping,omitempty"`
}

func TestIntrospectCycles(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(node{})
		require.NoError(t, err)
		assert.Equal(t, Ref{Name: "node"}, n)

		schemas := e.Schemas()
		require.Len(t, schemas, 1)

		obj := schemas[0].Node.(Object)
		require.Len(t, obj.Properties, 2)
		assert.Equal(t, Ref{Name: "node"}, obj.Properties[1].Node)
	})

	t.Run("mutual reference", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(ping{})
		require.NoError(t, err)
		assert.Equal(t, Ref{Name: "ping"}, n)

		schemas := e.Schemas()
		require.Len(t, schemas, 2)
		assert.Equal(t, "ping", schemas[0].Name)
		assert.Equal(t, "pong", schemas[1].Name)
	})
}

func TestIntrospectMap(t *testing.T) {
	t.Run("string keys", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(map[string]int64{})
		require.NoError(t, err)
		assert.Equal(t, Map{Value: Primitive{Kind: KindInteger, Format: "int64"}}, n)
	})

	t.Run("named string keys", func(t *testing.T) {
		type key string
		e := New()

		n, err := e.Introspect(map[key]bool{})
		require.NoError(t, err)
		assert.Equal(t, Map{Value: Primitive{Kind: KindBoolean}}, n)
	})

	t.Run("non-string keys", func(t *testing.T) {
		e := New()

		_, err := e.Introspect(map[int]string{})
		require.ErrorIs(t, err, ErrUnsupportedKeyType)
		assert.Empty(t, e.Schemas())
	})

	t.Run("non-string keys nested", func(t *testing.T) {
		type holder struct {
			Counts map[int]int `json:"counts"`
		}
		e := New()

		_, err := e.Introspect(holder{})
		require.ErrorIs(t, err, ErrUnsupportedKeyType)

		// The failed object must not leave a partial schema behind.
		assert.Empty(t, e.Schemas())
	})
}

type audit struct {
	Secret  string    `json:"-"`
	Details *shipment `json:"-"`
	Public  string    `json:"public"`
}

func TestIntrospectTransient(t *testing.T) {
	e := New()

	_, err := e.Introspect(audit{})
	require.NoError(t, err)

	schemas := e.Schemas()
	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s.Name)
	}
	// Transient property types are still walked and cached.
	assert.Equal(t, []string{"audit", "parcel", "shipment"}, names)

	var auditObj Object
	for _, s := range schemas {
		if s.Name == "audit" {
			auditObj = s.Node.(Object)
		}
	}
	require.Len(t, auditObj.Properties, 1)
	assert.Equal(t, "public", auditObj.Properties[0].Name)
}

func TestIntrospectRenamedFrom(t *testing.T) {
	type renamed struct {
		UserName string `json:"username"`
		Plain    string `json:"Plain"`
	}
	e := New()

	_, err := e.Introspect(renamed{})
	require.NoError(t, err)

	obj := e.Schemas()[0].Node.(Object)
	assert.Equal(t, "UserName", obj.Properties[0].RenamedFrom)
	assert.Empty(t, obj.Properties[1].RenamedFrom)
}

func TestIntrospectEmbedded(t *testing.T) {
	type Base struct {
		ID string `json:"id"`
	}
	type Extra struct {
		Note string `json:"note"`
	}
	type combined struct {
		Base
		*Extra
		Own string `json:"own"`
	}
	e := New()

	n, err := e.Introspect(combined{})
	require.NoError(t, err)
	assert.Equal(t, Ref{Name: "combined"}, n)

	var obj Object
	for _, s := range e.Schemas() {
		if s.Name == "combined" {
			obj = s.Node.(Object)
		}
	}
	require.Len(t, obj.Properties, 3)

	assert.Equal(t, "id", obj.Properties[0].Name)
	assert.True(t, obj.Properties[0].Required)

	// Fields inlined through a pointer embed are optional.
	assert.Equal(t, "note", obj.Properties[1].Name)
	assert.False(t, obj.Properties[1].Required)

	assert.Equal(t, "own", obj.Properties[2].Name)
}

func TestIntrospectAnonymousStruct(t *testing.T) {
	e := New()

	n, err := e.Introspect(struct {
		Inline string `json:"inline"`
	}{})
	require.NoError(t, err)

	obj, ok := n.(Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 1)
	assert.Equal(t, "inline", obj.Properties[0].Name)

	// Anonymous structs are structural and never cached.
	assert.Empty(t, e.Schemas())
}

func TestIntrospectInterface(t *testing.T) {
	type payload struct {
		Data any `json:"data"`
	}
	e := New()

	_, err := e.Introspect(payload{})
	require.NoError(t, err)

	obj := e.Schemas()[0].Node.(Object)
	assert.Equal(t, Any{}, obj.Properties[0].Node)
}

func TestIntrospectUnknown(t *testing.T) {
	t.Run("root degrades to placeholder", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(make(chan int))
		require.NoError(t, err)
		assert.Equal(t, Object{}, n)

		failures := e.Failures()
		require.Len(t, failures, 1)
		assert.ErrorIs(t, failures[0], ErrUnresolvableType)
		assert.Contains(t, failures[0].Error(), "chan int")
	})

	t.Run("nested fails the object", func(t *testing.T) {
		type broken struct {
			Ch chan int `json:"ch"`
		}
		e := New()

		_, err := e.Introspect(broken{})
		require.ErrorIs(t, err, ErrMissingCustomType)
		assert.ErrorIs(t, err, ErrUnresolvableType)
		assert.Empty(t, e.Schemas())
		assert.Empty(t, e.Failures())
	})
}

type vault struct {
	Lock vaultKey `json:"lock"`
	Feed chan int `json:"feed"`
}

type vaultKey struct {
	Owner *vault `json:"owner,omitempty"`
}

func TestIntrospectRollbackNestedEntries(t *testing.T) {
	e := New()

	// vaultKey resolves completely before the chan field fails, holding
	// a Ref back to the vault placeholder. The rollback must take the
	// whole span with it, or Schemas would expose a dangling Ref.
	_, err := e.Introspect(vault{})
	require.ErrorIs(t, err, ErrMissingCustomType)
	assert.Empty(t, e.Schemas())

	// The engine stays usable: the rolled-back types resolve once the
	// blocker is registered.
	require.NoError(t, e.RegisterCustomType(make(chan int), CustomType{Kind: KindString}))
	_, err = e.Introspect(vault{})
	require.NoError(t, err)
	assert.Len(t, e.Schemas(), 2)
}

type exampled struct {
	Name string `json:"name"`
}

func (exampled) OpenAPIExample() any {
	return exampled{Name: "Alice"}
}

func TestIntrospectExampler(t *testing.T) {
	e := New()

	_, err := e.Introspect(exampled{})
	require.NoError(t, err)

	schemas := e.Schemas()
	require.Len(t, schemas, 1)
	assert.Equal(t, exampled{Name: "Alice"}, schemas[0].Example)
}

type color string

func (color) OpenAPIEnum() []string {
	return []string{"red", "green", "blue"}
}

func TestIntrospectEnum(t *testing.T) {
	e := New()

	n, err := e.Introspect(color(""))
	require.NoError(t, err)
	assert.Equal(t, Ref{Name: "color"}, n)

	schemas := e.Schemas()
	require.Len(t, schemas, 1)
	assert.Equal(t, Enum{Values: []string{"red", "green", "blue"}}, schemas[0].Node)

	// Resolving again returns a reference to the same entry.
	again, err := e.Introspect(color(""))
	require.NoError(t, err)
	assert.Equal(t, n, again)
	assert.Len(t, e.Schemas(), 1)
}

func TestIntrospectTagConstraints(t *testing.T) {
	type constrained struct {
		Weight int32  `json:"weight" openapi:"minimum=0,maximum=5000,description=Grams"`
		Code   string `json:"code" openapi:"minLength=2,maxLength=8,pattern=^[A-Z]+$"`
		Kind   string `json:"kind" openapi:"enum=letter|box"`
		Tag    string `json:"tag,omitempty" openapi:"required"`
	}
	e := New()

	_, err := e.Introspect(constrained{})
	require.NoError(t, err)

	obj := e.Schemas()[0].Node.(Object)

	weight := obj.Properties[0]
	assert.Equal(t, "Grams", weight.Description)
	wp := weight.Node.(Primitive)
	require.NotNil(t, wp.Constraints.Minimum)
	assert.Equal(t, 0.0, *wp.Constraints.Minimum)
	require.NotNil(t, wp.Constraints.Maximum)
	assert.Equal(t, 5000.0, *wp.Constraints.Maximum)

	cp := obj.Properties[1].Node.(Primitive)
	require.NotNil(t, cp.Constraints.MinLength)
	assert.Equal(t, 2, *cp.Constraints.MinLength)
	require.NotNil(t, cp.Constraints.MaxLength)
	assert.Equal(t, 8, *cp.Constraints.MaxLength)
	assert.Equal(t, "^[A-Z]+$", cp.Constraints.Pattern)

	assert.Equal(t, Enum{Values: []string{"letter", "box"}}, obj.Properties[2].Node)

	// The required tag key overrides omitempty.
	assert.True(t, obj.Properties[3].Required)
}

func TestReset(t *testing.T) {
	e := New()

	_, err := e.Introspect(parcel{})
	require.NoError(t, err)
	_, err = e.Introspect(make(chan int))
	require.NoError(t, err)

	require.Len(t, e.Schemas(), 1)
	require.Len(t, e.Failures(), 1)

	e.Reset()

	assert.Empty(t, e.Schemas())
	assert.Empty(t, e.Failures())
	assert.Empty(t, e.Conflicts())
}

package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "User"},
		{"", ""},
		{"Box[github.com/acme/models.User]", "BoxUser"},
		{"Box[int]", "BoxInt"},
		{"Box[[]github.com/acme/models.User]", "BoxUserList"},
		{"Box[*github.com/acme/models.User]", "BoxUser"},
		{"Pair[int,string]", "PairIntString"},
		{"Pair[github.com/a.User,github.com/b.Team]", "PairUserTeam"},
		{"Box[map[string]github.com/acme/models.User]", "BoxUserMap"},
		{"Box[github.com/acme.Box[github.com/acme.User]]", "BoxBoxUser"},
		{"Pair[[]int,map[string][]github.com/acme.User]", "PairIntListUserListMap"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaName(tt.in))
		})
	}
}

type box[T any] struct {
	Value T `json:"value"`
}

type pair[A, B any] struct {
	First  A `json:"first"`
	Second B `json:"second"`
}

func TestIntrospectGenerics(t *testing.T) {
	t.Run("deterministic naming across call sites", func(t *testing.T) {
		first := New()
		n1, err := first.Introspect(box[parcel]{})
		require.NoError(t, err)

		second := New()
		n2, err := second.Introspect(box[parcel]{})
		require.NoError(t, err)

		assert.Equal(t, n1, n2)
		assert.Equal(t, Ref{Name: "boxParcel"}, n1)
	})

	t.Run("distinct instantiations get distinct entries", func(t *testing.T) {
		e := New()

		n1, err := e.Introspect(box[parcel]{})
		require.NoError(t, err)
		n2, err := e.Introspect(box[int64]{})
		require.NoError(t, err)

		assert.NotEqual(t, n1, n2)

		names := make([]string, 0)
		for _, s := range e.Schemas() {
			names = append(names, s.Name)
		}
		assert.Contains(t, names, "boxParcel")
		assert.Contains(t, names, "boxInt64")
	})

	t.Run("instantiation resolves once", func(t *testing.T) {
		e := New()

		_, err := e.Introspect(box[parcel]{})
		require.NoError(t, err)
		_, err = e.Introspect(box[parcel]{})
		require.NoError(t, err)

		var count int
		for _, s := range e.Schemas() {
			if s.Name == "boxParcel" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("multiple parameters", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(pair[string, parcel]{})
		require.NoError(t, err)
		assert.Equal(t, Ref{Name: "pairStringParcel"}, n)

		var obj Object
		for _, s := range e.Schemas() {
			if s.Name == "pairStringParcel" {
				obj = s.Node.(Object)
			}
		}
		require.Len(t, obj.Properties, 2)
		assert.Equal(t, Primitive{Kind: KindString}, obj.Properties[0].Node)
		assert.Equal(t, Ref{Name: "parcel"}, obj.Properties[1].Node)
	})

	t.Run("nested generic argument", func(t *testing.T) {
		e := New()

		n, err := e.Introspect(box[box[parcel]]{})
		require.NoError(t, err)
		assert.Equal(t, Ref{Name: "boxBoxParcel"}, n)
	})
}

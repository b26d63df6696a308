package introspect

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// channelList is a named slice that declares its values.
type channelList []string

func (channelList) OpenAPIEnum() []string {
	return []string{"stable", "beta", "nightly"}
}

func TestClassifyOrder(t *testing.T) {
	e := New()

	t.Run("custom registration beats every other category", func(t *testing.T) {
		require.NoError(t, e.RegisterCustomType(color(""), CustomType{Kind: KindString}))
		assert.Equal(t, CategoryCustom, e.classify(reflect.TypeOf(color(""))))
	})

	t.Run("enum beats primitive", func(t *testing.T) {
		// color is a string kind, but Enumer wins when unregistered.
		fresh := New()
		assert.Equal(t, CategoryEnum, fresh.classify(reflect.TypeOf(color(""))))
	})

	t.Run("enum beats container shape", func(t *testing.T) {
		// The interface is an explicit author declaration; structural
		// classification is the fallback, even for slice kinds.
		assert.Equal(t, CategoryEnum, e.classify(reflect.TypeOf(channelList{})))
	})

	t.Run("well-known structs stay primitive", func(t *testing.T) {
		assert.Equal(t, CategoryPrimitive, e.classify(reflect.TypeOf(time.Time{})))
	})

	t.Run("containers", func(t *testing.T) {
		assert.Equal(t, CategoryArray, e.classify(reflect.TypeOf([3]int{})))
		assert.Equal(t, CategoryCollection, e.classify(reflect.TypeOf([]int{})))
		assert.Equal(t, CategoryMap, e.classify(reflect.TypeOf(map[string]int{})))
	})

	t.Run("structs", func(t *testing.T) {
		assert.Equal(t, CategoryObject, e.classify(reflect.TypeOf(parcel{})))
		assert.Equal(t, CategoryGeneric, e.classify(reflect.TypeOf(box[parcel]{})))
	})

	t.Run("interface", func(t *testing.T) {
		assert.Equal(t, CategoryAny, e.classify(reflect.TypeOf((*any)(nil)).Elem()))
	})

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, CategoryUnknown, e.classify(reflect.TypeOf(make(chan int))))
		assert.Equal(t, CategoryUnknown, e.classify(reflect.TypeOf(func() {})))
		assert.Equal(t, CategoryUnknown, e.classify(reflect.TypeOf(complex128(0))))
	})
}

package foundationtest_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationtest "github.com/Versent/go-foundationtest"
)

type Cache interface {
	Get(string) (any, bool)
	Put(string, any) error
	Delete(string)
}

type mockCache struct {
	foundationtest.Double
}

func (m *mockCache) Get(key string) (any, bool) {
	return foundationtest.Call2[any, bool](m.Double, "Get", key)
}

func (m *mockCache) Put(key string, value any) error {
	return foundationtest.Call1[error](m.Double, "Put", key, value)
}

func (m *mockCache) Delete(key string) {
	foundationtest.Call0(m.Double, "Delete", key)
}

func TestNewSpy_Expect(t *testing.T) {
	called := false
	var cache Cache = &mockCache{foundationtest.NewSpy(t, "cache",
		foundationtest.Expect("Put", func(_ testing.TB, key string, value any) error {
			if key != "foo" || value != "bar" {
				t.Error("unexpected arguments")
			}
			called = true
			return nil
		}),
		foundationtest.Expect("Get", func(key string) (any, bool) {
			if key != "foo" {
				t.Error("unexpected arguments")
			}
			called = true
			return "bar", true
		}),
		foundationtest.Expect("Delete", func(key string) {
			if key != "foo" {
				t.Error("unexpected arguments")
			}
			called = true
		}),
	)}

	called = false
	if err := cache.Put("foo", "bar"); err != nil {
		t.Error("unexpected error:", err)
	}
	if !called {
		t.Error("expected call to Put delegate")
	}

	called = false
	if result, ok := cache.Get("foo"); result != "bar" || !ok {
		t.Error("unexpected result")
	}
	if !called {
		t.Error("expected call to Get delegate")
	}

	called = false
	cache.Delete("foo")
	if !called {
		t.Error("expected call to Delete delegate")
	}
}

func TestSpy_unexpectedCall(t *testing.T) {
	rec := &recorder{}
	spy := foundationtest.NewSpy(rec, "cache", foundationtest.Expect("Delete", func(string) {}))

	spy.Call("Delete", "foo")
	assert.False(t, rec.Failed())

	spy.Call("Delete", "foo")
	assert.Contains(t, rec.output(), "unexpected call to cache.Delete")
}

func TestSpy_unexpectedCallError(t *testing.T) {
	rec := &recorder{}
	cache := &mockCache{foundationtest.NewSpy(rec, "cache", foundationtest.Stubbed("Put"))}

	assert.NoError(t, cache.Put("foo", "bar"))
	assert.False(t, rec.Failed())

	cache.Double.Stub("Put", "not an error")
	err := cache.Put("foo", "bar")
	assert.EqualError(t, err, "unexpected type string for result parameter error")
	assert.True(t, rec.Failed())
}

func TestSpy_ExpectMany(t *testing.T) {
	var counts []foundationtest.CallCount
	spy := foundationtest.NewSpy(t, "cache",
		foundationtest.ExpectMany("Get", func(count foundationtest.CallCount, key string) (any, bool) {
			counts = append(counts, count)
			return key, true
		}),
	)
	cache := &mockCache{spy}
	for _, key := range []string{"a", "b", "c"} {
		v, ok := cache.Get(key)
		assert.Equal(t, key, v)
		assert.True(t, ok)
	}
	assert.Equal(t, []foundationtest.CallCount{0, 1, 2}, counts)
	foundationtest.AssertExpectedCalls(t, spy)
}

func TestSpy_ExpectInOrder(t *testing.T) {
	newSpy := func(t testing.TB) *foundationtest.Spy {
		return foundationtest.NewSpy(t, "cache",
			foundationtest.ExpectInOrder(
				foundationtest.Expect("Put", func(string, any) error { return nil }),
				foundationtest.Expect("Delete", func(string) {}),
			),
			foundationtest.Expect("Get", func(string) (any, bool) { return nil, false }),
		)
	}

	t.Run("in order", func(t *testing.T) {
		rec := &recorder{}
		cache := &mockCache{newSpy(rec)}
		cache.Get("a")
		_ = cache.Put("a", 1)
		cache.Delete("a")
		assert.Empty(t, rec.output())
	})

	t.Run("out of order", func(t *testing.T) {
		rec := &recorder{}
		cache := &mockCache{newSpy(rec)}
		cache.Delete("a")
		_ = cache.Put("a", 1)
		assert.Contains(t, rec.output(), "out of order call to Delete: expected 2, got 1")
		assert.Contains(t, rec.output(), "out of order call to Put: expected 1, got 2")
	})
}

func TestSpy_AssertExpectedCalls(t *testing.T) {
	rec := &recorder{}
	spy := foundationtest.NewSpy(rec, "cache",
		foundationtest.Expect("Delete", func(string) {}),
		foundationtest.Expect("Put", func(string, any) error { return nil }),
		foundationtest.Expect("Put", func(string, any) error { return nil }),
		foundationtest.Expect("Put", func(string, any) error { return nil }),
	)
	spy.Call("Put", "a", 1)

	assert.False(t, spy.AssertExpectedCalls(rec))
	assert.Contains(t, rec.output(), "failed to make call to cache.Delete")
	assert.Contains(t, rec.output(), "failed to make call to cache.Put: only got one call")
}

func TestSpy_Fake(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache")
	spy.Stub("Get", nil, false)
	spy.Fake("Get", func(key string) (any, bool) { return "any", true })
	spy.Fake("Get", func(key string) (any, bool) { return "foo", true }, foundationtest.Eq("foo"))

	cache := &mockCache{spy}
	v, ok := cache.Get("foo")
	assert.Equal(t, "foo", v)
	assert.True(t, ok)

	v, ok = cache.Get("bar")
	assert.Equal(t, "any", v)
	assert.True(t, ok)

	assert.Equal(t, [][]any{{"foo"}, {"bar"}}, spy.Calls("Get"))
}

func TestSpy_FakeError(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache")
	spy.Fake("Put", func(key string, value any) error {
		return errors.New("full")
	})
	cache := &mockCache{spy}
	assert.EqualError(t, cache.Put("k", nil), "full")
	foundationtest.AssertCalled(t, spy, "Put", "k", nil)
}

func TestSpy_FakePanicsOnNonFunc(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache")
	assert.PanicsWithValue(t, "foundationtest.Fake: expected function, got int", func() {
		spy.Fake("Get", 42)
	})
	assert.PanicsWithValue(t, "foundationtest.Expect: expected function, got string", func() {
		foundationtest.Expect("Get", "nope")
	})
}

func TestAssertCalled(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache", foundationtest.Stubbed("Delete", "Get"))
	spy.Call("Delete", "foo")

	require.True(t, foundationtest.AssertCalled(t, spy, "Delete"))
	require.True(t, foundationtest.AssertCalled(t, spy, "Delete", "foo"))
	require.True(t, foundationtest.AssertNotCalled(t, spy, "Get"))

	rec := &recorder{}
	assert.False(t, foundationtest.AssertCalled(rec, spy, "Delete", "bar"))
	assert.False(t, foundationtest.AssertCalled(rec, spy, "Get"))
	assert.False(t, foundationtest.AssertNotCalled(rec, spy, "Delete"))
	assert.Contains(t, rec.output(), "expected cache.Delete to be called with [bar]")
}

func TestSpy_Methods(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache",
		foundationtest.Stubbed("Put", "Get"),
		foundationtest.Expect("Delete", func(string) {}),
	)
	assert.Equal(t, []string{"Delete", "Get", "Put"}, spy.Methods())
	assert.Equal(t, "cache", spy.Name())
	assert.Nil(t, spy.Calls("Unknown"))
}

// within fails t when fn does not return in time.
func within(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out: spy still locked")
	}
}

func TestSpy_panickingExpectation(t *testing.T) {
	spy := foundationtest.NewSpy(t, "cache",
		foundationtest.Expect("Delete", func(string) { panic("boom") }),
		foundationtest.Expect("Delete", func(string) {}),
	)
	assert.PanicsWithValue(t, "boom", func() { spy.Call("Delete", "a") })

	within(t, func() {
		assert.Len(t, spy.Calls("Delete"), 1)
		spy.Call("Delete", "b")
		assert.True(t, spy.AssertExpectedCalls(t))
	})
}

func TestSpy_expectationFailNow(t *testing.T) {
	rec := &recorder{}
	spy := foundationtest.NewSpy(rec, "cache",
		foundationtest.Expect("Delete", func(t testing.TB, key string) { t.FailNow() }),
	)
	rec.run(func() { spy.Call("Delete", "a") })
	require.True(t, rec.fatal)

	within(t, func() {
		assert.Equal(t, [][]any{{"a"}}, spy.Calls("Delete"))
	})
}

package correlation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "canonical lower case", id: "550e8400-e29b-41d4-a716-446655440000", want: true},
		{name: "canonical upper case", id: "550E8400-E29B-41D4-A716-446655440000", want: true},
		{name: "empty", id: "", want: false},
		{name: "free text", id: "custom-correlation-id-123456", want: false},
		{name: "no hyphens", id: "550e8400e29b41d4a716446655440000", want: false},
		{name: "urn form", id: "urn:uuid:550e8400-e29b-41d4-a716-446655440000", want: false},
		{name: "braced form", id: "{550e8400-e29b-41d4-a716-446655440000}", want: false},
		{name: "non hex digit", id: "550e8400-e29b-41d4-a716-44665544000z", want: false},
		{name: "very long", id: strings.Repeat("a", 10000), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.id))
		})
	}
}

func TestResolve_AdoptsValidIDVerbatim(t *testing.T) {
	in := "550E8400-E29B-41D4-A716-446655440000"

	id, adopted := Resolve(in)

	assert.True(t, adopted)
	assert.Equal(t, in, id)
}

func TestResolve_ReplacesInvalidID(t *testing.T) {
	for _, in := range []string{"", "abc", "test cid with space", "test-!@#$%^&*()"} {
		id, adopted := Resolve(in)

		assert.False(t, adopted)
		assert.NotEqual(t, in, id)
		assert.True(t, IsValid(id), "generated id %q must be canonical", id)
	}
}

func TestNewID_IsVersion4(t *testing.T) {
	parsed, err := uuid.Parse(NewID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNewID_UniqueAcrossGoroutines(t *testing.T) {
	const n = 200

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[string]struct{}, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewID()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestContext_RoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")

	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id)
	assert.Equal(t, id, IDFromContext(ctx))
}

func TestContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, Unknown, IDFromContext(context.Background()))

	//nolint:staticcheck // nil context is handled explicitly
	_, ok = FromContext(nil)
	assert.False(t, ok)
}

func TestContext_ChildDoesNotLeakToParent(t *testing.T) {
	parent := WithID(context.Background(), NewID())
	child := WithID(parent, NewID())

	assert.NotEqual(t, IDFromContext(parent), IDFromContext(child))
}

func TestResolve_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "inbound")

		id, adopted := Resolve(in)

		if adopted {
			assert.Equal(t, in, id)
		} else {
			assert.True(t, IsValid(id))
		}
		assert.Equal(t, IsValid(in), adopted)
	})
}

func TestResolve_PropertyValidUUIDsAlwaysAdopted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "bytes")
		u, err := uuid.FromBytes(raw)
		require.NoError(t, err)

		in := u.String()
		if rapid.Bool().Draw(t, "upper") {
			in = strings.ToUpper(in)
		}

		id, adopted := Resolve(in)
		assert.True(t, adopted)
		assert.Equal(t, in, id)
	})
}

package pipe_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/knoxlab/bindery/http"
	"github.com/knoxlab/bindery/http/validation"
	"github.com/knoxlab/bindery/pipe"
)

func requestWithHeader(t *testing.T, key, value string) *gohttp.Request {
	t.Helper()
	r := httptest.NewRequest("GET", "/profile", nil)
	if key != "" {
		r.Header.Set(key, value)
	}
	return gohttp.NewRequest(r)
}

// ── CurrentUser ──────────────────────────────────────────────────────────────

func TestCurrentUser_HeaderPresent(t *testing.T) {
	p := pipe.NewCurrentUser(requestWithHeader(t, pipe.HeaderUserID, "1"))

	out, err := p.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipe.User{ID: 1, Name: "Test User"}, out)
}

func TestCurrentUser_EmptyHeaders(t *testing.T) {
	p := pipe.NewCurrentUser(requestWithHeader(t, "", ""))

	out, err := p.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipe.Anonymous, out)
}

func TestCurrentUser_BlankHeaderValue(t *testing.T) {
	p := pipe.NewCurrentUser(requestWithHeader(t, pipe.HeaderUserID, "   "))

	out, err := p.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipe.Anonymous, out)
}

func TestCurrentUser_NonNumericHeader(t *testing.T) {
	p := pipe.NewCurrentUser(requestWithHeader(t, pipe.HeaderUserID, "abc"))

	out, err := p.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipe.Anonymous, out)
}

func TestCurrentUser_NegativeID(t *testing.T) {
	p := pipe.NewCurrentUser(requestWithHeader(t, pipe.HeaderUserID, "-3"))

	out, err := p.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pipe.Anonymous, out)
}

// ── Func adapter ─────────────────────────────────────────────────────────────

func TestFunc_Adapter(t *testing.T) {
	doubled := pipe.Func(func(_ context.Context, raw any) (any, error) {
		return raw.(int) * 2, nil
	})

	out, err := doubled.Transform(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_Passes(t *testing.T) {
	p := pipe.NewValidate(validation.Rules{
		"name":  "required|min:2",
		"email": "required|email",
	})

	input := map[string]string{"name": "Alice", "email": "alice@example.com"}
	out, err := p.Transform(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestValidate_FailsWithBag(t *testing.T) {
	p := pipe.NewValidate(validation.Rules{"email": "required|email"})

	_, err := p.Transform(context.Background(), map[string]string{"email": "nope"})
	require.Error(t, err)

	var ve *pipe.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors.First("email"))
	assert.Contains(t, err.Error(), "email")
}

func TestValidate_WrongInputType(t *testing.T) {
	p := pipe.NewValidate(validation.Rules{"name": "required"})

	_, err := p.Transform(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map[string]string")
}

package util

import (
	"bytes"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/bhdao/bhdao/util/logging"
)

type testError struct {
	suite.Suite
}

func (t *testError) TestIs() {
	e0 := NewError("showme")
	t.Implements((*(interface{ Error() string }))(nil), e0)

	t.Equal("showme", e0.Error())

	t.True(errors.Is(e0, e0))
	t.False(errors.Is(e0, NewError("showme")))
	t.False(errors.Is(e0, NewError("findme")))
	t.True(errors.Is(e0, e0.Errorf("showme")))
}

func (t *testError) TestAs() {
	e0 := NewError("showme")

	var e1 *NError
	t.True(errors.As(e0, &e1))

	t.True(errors.Is(e0, e1))
	t.True(errors.Is(e1, e0))
}

func (t *testError) TestWrap() {
	e0 := NewError("showme")

	pe := &os.PathError{Err: errors.Errorf("path error")}
	e1 := e0.Wrap(pe)

	t.False(errors.Is(e1, NewError("showme")))
	t.True(errors.Is(e1, e0))
	t.True(errors.Is(e1, pe))

	var npe *os.PathError
	t.True(errors.As(e1, &npe))
}

func (t *testError) TestErrorf() {
	e0 := NewError("showme")
	pe := &os.PathError{Op: "open", Path: "/tmp/showme", Err: errors.Errorf("path error")}
	e1 := e0.Errorf("error: %w", pe)

	t.True(errors.Is(e0, e1))
	t.True(errors.Is(e1, e0))
	t.Equal("showme; error: open /tmp/showme: path error", e1.Error())

	var npe *os.PathError
	t.True(errors.As(e1, &npe))
}

func (t *testError) TestCategory() {
	category := NewError("category")
	a := category.New("kind a")
	b := category.New("kind b")

	t.True(errors.Is(a, category))
	t.True(errors.Is(b, category))
	t.False(errors.Is(a, b))
	t.False(errors.Is(b, a))
	t.False(errors.Is(category, a))

	ea := a.Errorf("account=%s", "alice")
	t.True(errors.Is(ea, a))
	t.True(errors.Is(ea, category))
	t.False(errors.Is(ea, b))

	wrapped := errors.Wrap(ea, "outer")
	t.True(errors.Is(wrapped, a))
	t.True(errors.Is(wrapped, category))
}

func (t *testError) TestBuiltinCategories() {
	t.False(errors.Is(NotFoundError, ConflictError))
	t.False(errors.Is(UnauthorizedError, NotFoundError))
	t.False(errors.Is(OverflowError, TemporalError))
}

func (t *testError) TestLogStack() {
	e := NewError("showme").Caller(3)

	var bf bytes.Buffer
	l := logging.Setup(&bf, zerolog.DebugLevel, "json", false)

	l.Log().Error().Err(e).Msg("find")
	t.Contains(bf.String(), "showme")
}

func TestError(t *testing.T) {
	suite.Run(t, new(testError))
}

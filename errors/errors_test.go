package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rowError struct {
	index int
}

func (e *rowError) Error() string {
	return fmt.Sprintf("record %d", e.index)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := New("database is locked")
	err := Wrapf(Wrap(cause, "insert posting"), "save batch of %d", 3)

	assert.Equal(t, "save batch of 3: insert posting: database is locked", err.Error())
	assert.True(t, Is(err, cause))
	assert.False(t, Is(err, New("database is locked")), "identity, not message, decides Is")
}

func TestAsFindsTypedCause(t *testing.T) {
	err := Wrap(&rowError{index: 7}, "decode import")

	var target *rowError
	require.True(t, As(err, &target))
	assert.Equal(t, 7, target.index)
}

func TestHintsAndDetailsSurviveWrapping(t *testing.T) {
	err := New("no such table: job_postings")
	err = WithHint(err, "run 'recruitiq init' first")
	err = WithDetail(err, "database: recruitiq.db")
	err = WithHintf(Wrap(err, "search"), "or pass --db %s", "other.db")

	assert.Equal(t, []string{"run 'recruitiq init' first", "or pass --db other.db"}, GetAllHints(err))
	assert.Equal(t, []string{"database: recruitiq.db"}, GetAllDetails(err))
	assert.Equal(t, "search: no such table: job_postings", err.Error())
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
	assert.NotNil(t, GetStack(err))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestMark(t *testing.T) {
	sentinel := New("persistence failure")
	cause := New("disk I/O error")

	marked := Mark(Wrap(cause, "insert posting"), sentinel)
	wrapped := Wrap(marked, "save batch")

	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, cause))
	assert.NotContains(t, wrapped.Error(), "persistence failure")
}

func TestSecondaryError(t *testing.T) {
	primary := New("scrape failed")
	secondary := New("record run failed")
	err := WithSecondaryError(primary, secondary)

	assert.Equal(t, "scrape failed", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "record run failed")
}

func TestSentinelHelpers(t *testing.T) {
	notFound := NewNotFoundError("config key %q", "scrape.delay")
	assert.True(t, IsNotFoundError(notFound))
	assert.Equal(t, `config key "scrape.delay": not found`, notFound.Error())
	assert.False(t, IsInvalidRequestError(notFound))

	invalid := Wrap(NewInvalidRequestError("bad limit %d", -1), "search")
	assert.True(t, IsInvalidRequestError(invalid))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidRequestError(nil))
}

func ExampleWithHint() {
	err := WithHint(New("unknown report kind \"weekly\""), "valid kinds: executive, salary, skills, companies, market")
	fmt.Println(err)
	fmt.Println(GetAllHints(err)[0])
	// Output:
	// unknown report kind "weekly"
	// valid kinds: executive, salary, skills, companies, market
}

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_StartsOnLogin(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, StackAuth, r.Stack())
	assert.Equal(t, Login, r.Current())
}

func TestRouter_ReplaceAndPush(t *testing.T) {
	r := NewRouter()

	require.NoError(t, r.Push(Signup))
	assert.Equal(t, Signup, r.Current())

	assert.Equal(t, StackTabs, r.Replace(StackTabs))
	assert.Equal(t, Summarize, r.Current())

	require.NoError(t, r.Push(Profile))
	require.NoError(t, r.Push(ChangePassword))
	assert.Equal(t, ChangePassword, r.Current())

	assert.True(t, r.Back())
	assert.Equal(t, Profile, r.Current())
	assert.True(t, r.Back())
	assert.False(t, r.Back(), "root cannot be popped")
	assert.Equal(t, Summarize, r.Current())
}

func TestRouter_PushRejectsForeignRoute(t *testing.T) {
	r := NewRouter()
	err := r.Push(History)
	require.EqualError(t, err, `route "history" is not part of the auth stack`)
	assert.Equal(t, Login, r.Current())
}

func TestRouter_GuardTabs(t *testing.T) {
	r := NewRouter()
	token := ""
	r.GuardTabs(func() bool { return token != "" })

	assert.Equal(t, StackAuth, r.Replace(StackTabs))
	assert.Equal(t, Login, r.Current())

	token = "at"
	assert.Equal(t, StackTabs, r.Replace(StackTabs))
	assert.Equal(t, Summarize, r.Current())
}

func TestRouter_OnChange(t *testing.T) {
	r := NewRouter()

	type move struct {
		s Stack
		r Route
	}
	var moves []move
	r.OnChange(func(s Stack, route Route) { moves = append(moves, move{s, route}) })

	r.Replace(StackTabs)
	require.NoError(t, r.Push(History))
	r.Back()
	r.Replace(StackAuth)

	assert.Equal(t, []move{
		{StackTabs, Summarize},
		{StackTabs, History},
		{StackTabs, Summarize},
		{StackAuth, Login},
	}, moves)
}

func TestStack_Contains(t *testing.T) {
	assert.True(t, StackAuth.Contains(ForgotPassword))
	assert.False(t, StackAuth.Contains(Profile))
	assert.True(t, StackTabs.Contains(ChangePassword))
	assert.Equal(t, Login, StackAuth.Root())
}

package user

import (
	"testing"

	"github.com/matryer/is"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	u, err := New(Options{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "hunter2",
	})
	is.NoErr(err)
	is.Equal(u.Username, "alice")
	is.Equal(u.GravatarEmailAddress, "alice@example.com")
	is.True(!u.Biography.Valid)
	is.True(!u.AccountVerified)
	is.NoErr(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")))

	u2, err := New(Options{Username: "bob", Password: "x", GravatarEmail: "avatar@example.com", Biography: "hi", Verified: true})
	is.NoErr(err)
	is.True(u2.ID != u.ID)
	is.Equal(u2.GravatarEmailAddress, "avatar@example.com")
	is.Equal(u2.Biography.String, "hi")
	is.True(u2.Biography.Valid)
	is.True(u2.AccountVerified)
}

func TestNewRequiresFields(t *testing.T) {
	is := is.New(t)
	_, err := New(Options{Password: "x"})
	is.True(err != nil)
	_, err = New(Options{Username: "alice"})
	is.True(err != nil)
}

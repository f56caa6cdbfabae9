package screens

import (
	"fmt"
	"io"
)

// ProfileScreen shows the account and the links available from it.
type ProfileScreen struct {
	users   UserSource
	website string
	version string
}

func NewProfileScreen(users UserSource, website, version string) *ProfileScreen {
	return &ProfileScreen{users: users, website: website, version: version}
}

func (s *ProfileScreen) Website() string { return s.website }

func (s *ProfileScreen) Render(w io.Writer) error {
	email := ""
	if u := s.users.User(); u != nil {
		email = u.Email
	}
	_, err := fmt.Fprintf(w, "Profile\n  %s\n\n  Visit Website: %s\n  passwd - change password\n  logout - sign out\n\nVersion %s\n",
		email, s.website, s.version)
	return err
}

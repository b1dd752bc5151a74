package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
)

// wait simulates a network round trip. The session reports Authenticating
// while any auth call is waiting.
func (s *Store) wait(d time.Duration) {
	s.pending.Add(1)
	defer s.pending.Add(-1)
	if d > 0 {
		s.sleep(d)
	}
}

// Login signs in with any non-empty email and password. It returns false
// without touching state when either is empty.
func (s *Store) Login(email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	s.wait(s.loginDelay)

	name, _, _ := strings.Cut(email, "@")
	user := s.newUser(loginUserID(email), name, email, constants.AvatarURLPrefix+email)
	token := s.issueToken(user)

	err := s.commit("login", func(st *Snapshot) bool {
		st.User = &user
		st.IsAuthenticated = true
		st.Token = token
		s.appendLog(st, constants.ActionLogin, "Successful login")
		s.pushNotification(st, models.Notification{
			Title:   "Welcome Back!",
			Message: fmt.Sprintf("Good to see you, %s.", user.Name),
			Kind:    models.NotificationSuccess,
		})
		return true
	})
	if err != nil {
		return false, err
	}
	logger.Info("User logged in", "user_id", user.ID)
	return true, nil
}

// Register creates a new account and signs it in. Name, email and password
// are required; nothing else is checked.
func (s *Store) Register(name, email, password string) (bool, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return false, nil
	}

	s.wait(s.loginDelay)

	user := s.newUser("u-"+s.newID(), name, email, constants.AvatarURLPrefix+name)
	token := s.issueToken(user)

	err := s.commit("register", func(st *Snapshot) bool {
		st.User = &user
		st.IsAuthenticated = true
		st.Token = token
		s.appendLog(st, constants.ActionRegister, "Account created")
		s.pushNotification(st, models.Notification{
			Title:   "Welcome to Zenith",
			Message: "Your account setup is complete.",
			Kind:    models.NotificationInfo,
		})
		return true
	})
	if err != nil {
		return false, err
	}
	logger.Info("User registered", "user_id", user.ID)
	return true, nil
}

// ForgotPassword pretends to send a reset link and returns the message to
// show. State is not changed.
func (s *Store) ForgotPassword(email string) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", errors.ErrClosed
	}

	s.wait(s.forgotDelay)
	logger.Info("Password reset requested", "email", email)
	return fmt.Sprintf("Password reset email sent to %s", email), nil
}

// Logout clears the session. The entry is logged under the outgoing user,
// or under "unknown" when nobody was signed in.
func (s *Store) Logout() error {
	return s.commit("logout", func(st *Snapshot) bool {
		userID := constants.UnknownUserID
		if st.User != nil {
			userID = st.User.ID
		}
		st.User = nil
		st.IsAuthenticated = false
		st.Token = ""
		s.appendLogAs(st, userID, constants.ActionLogout, "User logged out")
		return true
	})
}

// UpdateProfile merges the set fields of update into the current user. It
// does nothing while anonymous or when update sets no fields.
func (s *Store) UpdateProfile(update models.ProfileUpdate) error {
	return s.commit("update_profile", func(st *Snapshot) bool {
		if st.User == nil || !st.IsAuthenticated {
			return false
		}
		user, fields := update.Apply(*st.User)
		if len(fields) == 0 {
			return false
		}
		st.User = &user
		s.appendLog(st, constants.ActionProfileUpdate, "Updated: "+strings.Join(fields, ", "))
		s.pushNotification(st, models.Notification{
			Title:   "Profile Updated",
			Message: "Your profile changes have been saved.",
			Kind:    models.NotificationInfo,
		})
		return true
	})
}

func (s *Store) newUser(id, name, email, avatar string) models.User {
	city, country := s.locale.Location()
	return models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		Timezone:  s.locale.Timezone(),
		City:      city,
		Country:   country,
		CreatedAt: s.now(),
		Preferences: models.Preferences{
			Theme:              constants.DefaultTheme,
			EmailNotifications: true,
		},
	}
}

func (s *Store) issueToken(user models.User) string {
	if s.tokens == nil {
		return ""
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Warn("Failed to issue session token", "error", err)
		return ""
	}
	return token
}

// loginUserID derives a stable id from the email so repeated logins with the
// same address map to the same user.
func loginUserID(email string) string {
	return "u-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}

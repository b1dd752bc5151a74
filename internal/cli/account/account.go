package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/state"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password. Prompted for when omitted." env:"ZENITH_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = cli.PromptPassword("Password"); err != nil {
			return err
		}
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	ok, err := store.Login(c.Email, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("email and password are required")
	}

	snap := store.Snapshot()
	fmt.Printf("✓ Signed in as %s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password. Prompted for when omitted." env:"ZENITH_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = cli.PromptPassword("Choose a password"); err != nil {
			return err
		}
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	ok, err := store.Register(c.Name, c.Email, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("name, email and password are required")
	}

	fmt.Printf("✓ Account created for %s\n", strings.TrimSpace(c.Name))
	return nil
}

type ForgotPasswordCmd struct {
	Email string `arg:"" help:"Email address to send the reset link to."`
}

func (c *ForgotPasswordCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	msg, err := store.ForgotPassword(c.Email)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	wasSignedIn := store.Phase() == state.Authenticated
	if err := store.Logout(); err != nil {
		return err
	}
	if wasSignedIn {
		fmt.Println("✓ Signed out")
	} else {
		fmt.Println("Not signed in")
	}
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil {
		fmt.Println("Not signed in")
		return nil
	}

	u := snap.User
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	fmt.Printf("  ID:       %s\n", u.ID)
	fmt.Printf("  Timezone: %s\n", u.Timezone)
	if loc := u.DisplayLocation(); loc != "" {
		fmt.Printf("  Location: %s\n", loc)
	}
	fmt.Printf("  Theme:    %s\n", u.Preferences.Theme)
	fmt.Printf("  Email notifications: %v\n", u.Preferences.EmailNotifications)
	fmt.Printf("  Member since %s\n", u.CreatedAt.Format("Jan 2, 2006"))
	return nil
}

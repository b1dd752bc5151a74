package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/utils"
)

type ProfileSetCmd struct {
	Name               *string `help:"Display name."`
	Email              *string `help:"Email address."`
	Avatar             *string `help:"Avatar image URL."`
	Timezone           *string `help:"IANA timezone, e.g. America/New_York."`
	Location           *string `help:"Free-form location."`
	Theme              string  `help:"Theme preference (light or dark)." enum:"light,dark," default:""`
	EmailNotifications *bool   `help:"Enable or disable email notifications." name:"email-notifications"`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	if store.Phase() != state.Authenticated {
		return errors.New("not signed in. Use 'zenith login' first")
	}

	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
	}

	update := models.ProfileUpdate{
		Name:     c.Name,
		Email:    c.Email,
		Avatar:   c.Avatar,
		Timezone: c.Timezone,
		Location: c.Location,
	}
	if c.Theme != "" || c.EmailNotifications != nil {
		prefs := store.Snapshot().User.Preferences
		if c.Theme != "" {
			prefs.Theme = c.Theme
		}
		if c.EmailNotifications != nil {
			prefs.EmailNotifications = *c.EmailNotifications
		}
		update.Preferences = &prefs
	}

	if _, fields := update.Apply(models.User{}); len(fields) == 0 {
		fmt.Println("No changes specified. Use flags such as --name or --timezone to update your profile.")
		return nil
	}

	if err := store.UpdateProfile(update); err != nil {
		return err
	}
	fmt.Println("✓ Profile updated")
	return nil
}

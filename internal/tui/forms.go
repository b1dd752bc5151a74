package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/utils"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

type loginForm struct {
	mode     string
	name     string
	email    string
	password string
}

func newLoginForm() (*loginForm, *huh.Form) {
	lf := &loginForm{mode: modeLogin}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to Zenith").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create an account", modeRegister),
				).
				Value(&lf.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&lf.name).
				Validate(required("name")),
		).WithHideFunc(func() bool { return lf.mode != modeRegister }),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&lf.email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&lf.password).
				Validate(required("password")),
		),
	)
	return lf, form
}

type taskForm struct {
	title    string
	priority string
	due      string
}

func newTaskForm() (*taskForm, *huh.Form) {
	tf := &taskForm{priority: string(models.PriorityMedium)}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&tf.title).
				Validate(required("title")),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(models.PriorityLow)),
					huh.NewOption("Medium", string(models.PriorityMedium)),
					huh.NewOption("High", string(models.PriorityHigh)),
				).
				Value(&tf.priority),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&tf.due).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return utils.ValidateDate(strings.TrimSpace(s))
				}),
		),
	)
	return tf, form
}

func (tf *taskForm) task() models.Task {
	return models.Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(tf.title),
		Status:   models.StatusTodo,
		Priority: models.TaskPriority(tf.priority),
		DueDate:  strings.TrimSpace(tf.due),
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

package constants

// Activity log action labels
const (
	ActionLogin          = "Login"
	ActionRegister       = "Register"
	ActionLogout         = "Logout"
	ActionProfileUpdate  = "Profile Update"
	ActionCreateTask     = "Create Task"
	ActionUpdateTask     = "Update Task"
	ActionToggleHabit    = "Toggle Habit"
	ActionAddTransaction = "Add Transaction"
	ActionCreateReminder = "Create Reminder"
)

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/summary"
	"github.com/julianstephens/zenith/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil && (m.state == constants.StateLogin || m.state == constants.StateAddTask) {
		title := "Sign in"
		if m.state == constants.StateAddTask {
			title = "New task"
		}
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(title),
			m.form.View(),
			m.viewStatus(),
		))
	}

	var content string
	switch m.state {
	case constants.StateTasks:
		content = m.tasks.View()
	case constants.StateHabits:
		content = m.habits.View()
	case constants.StateBudget:
		content = m.viewBudget()
	case constants.StateNotifications:
		content = m.notes.View()
	case constants.StateActivity:
		content = m.viewActivity()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		name := t.name
		if t.state == constants.StateNotifications {
			if unread := m.snap.UnreadCount(); unread > 0 {
				name = fmt.Sprintf("%s (%d)", name, unread)
			}
		}
		if t.state == m.state {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func (m Model) viewHeader() string {
	d := summary.Dashboard(m.snap, m.clock())
	line := d.Greeting
	if d.UserName != "" {
		line += ", " + d.UserName
	}
	stats := mutedStyle.Render(fmt.Sprintf("  %d/%d tasks done · balance %s",
		d.CompletedTasks, d.TotalTasks, utils.FormatMoney(d.Balance)))
	if d.Unread > 0 {
		stats += " " + badgeStyle.Render(fmt.Sprintf("%d unread", d.Unread))
	}
	return headerStyle.Render(line + stats)
}

func (m Model) viewBudget() string {
	b := summary.Budget(m.snap.Transactions)
	var sb strings.Builder

	sb.WriteString(successStyle.Render("Income   " + utils.FormatMoney(b.Income)))
	sb.WriteString("\n")
	sb.WriteString(dangerStyle.Render("Expenses " + utils.FormatMoney(b.Expense)))
	sb.WriteString("\n")
	balance := "Balance  " + utils.FormatMoney(b.Balance)
	if b.Balance < 0 {
		sb.WriteString(warningStyle.Render(balance))
	} else {
		sb.WriteString(balance)
	}
	sb.WriteString("\n\n")

	if len(b.ByCategory) == 0 {
		sb.WriteString(mutedStyle.Render("No expenses recorded."))
		return sb.String()
	}
	sb.WriteString(headerStyle.Render("Expenses by category"))
	sb.WriteString("\n")
	for _, c := range b.ByCategory {
		fmt.Fprintf(&sb, "  %-16s %s\n", c.Category, utils.FormatMoney(c.Amount))
	}
	return sb.String()
}

func (m Model) viewActivity() string {
	if len(m.snap.Logs) == 0 {
		return mutedStyle.Render("No activity yet.")
	}

	limit := len(m.snap.Logs)
	if m.height > 0 {
		limit = min(limit, max(m.height-10, 1))
	}
	now := m.clock()
	var sb strings.Builder
	for _, l := range m.snap.Logs[:limit] {
		line := l.Action
		if l.Details != "" {
			line += ": " + l.Details
		}
		fmt.Fprintf(&sb, "%s  %s\n", line, mutedStyle.Render(cli.RelTime(l.Timestamp, now)+" · "+l.Device))
	}
	return sb.String()
}

func (m Model) viewStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return dangerStyle.Render(m.status)
	default:
		return successStyle.Render(m.status)
	}
}

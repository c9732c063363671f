package tui

import (
	"github.com/andy/hotelmgr/internal/domain"
)

// clientRows turns clients into table rows: name, CPF, email, phone
func clientRows(clients []domain.Client) [][]string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			truncateStr(c.Nome, 40),
			c.CPF,
			truncateStr(c.Email, 40),
			c.Telefone,
		})
	}
	return rows
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

package notify

import (
	"fmt"
	"strings"

	"stationwatch/internal/models"
)

// MentionPrefix builds the chat mention string for an account's alert
// recipients, empty when the account configures none.
func MentionPrefix(userIDs []string) string {
	if len(userIDs) == 0 {
		return ""
	}
	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, " ")
}

// OfflineAlert announces a station transition to offline. Alert
// recipients are mentioned so the message pages them.
func OfflineAlert(account models.Account, st models.Station) string {
	prefix := MentionPrefix(account.AlertUserIDs)
	if prefix != "" {
		prefix += " "
	}
	return fmt.Sprintf("%s:rotating_light: %s Station *%s* (%s) is *OFFLINE*!", prefix, account.Name, st.ID, st.Name)
}

// RecoveryAlert announces a station returning online. No mentions.
func RecoveryAlert(accountName string, st models.Station) string {
	return fmt.Sprintf(":white_check_mark: %s Station *%s* (%s) has *RECOVERED*!", accountName, st.ID, st.Name)
}

// AllClearAlert announces that a previously-affected account has no
// offline stations left.
func AllClearAlert(accountName string) string {
	return fmt.Sprintf(":tada: All %s stations are now *ONLINE*!", accountName)
}

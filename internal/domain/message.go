package domain

import "fmt"

// ComposeMessage renders the greeting text for a user. Unknown kinds yield an
// empty string rather than an error; callers that care treat empty output as
// "nothing to send".
func ComposeMessage(u User, kind MessageKind) string {
	switch kind {
	case KindBirthday:
		return fmt.Sprintf("Hey, %s %s, it’s your birthday", u.FirstName, u.LastName)
	case KindAnniversary:
		return fmt.Sprintf("Happy Anniversary, %s %s!", u.FirstName, u.LastName)
	default:
		return ""
	}
}

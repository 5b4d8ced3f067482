package address

import "strings"

// Broadcast addresses are constants that stand for "any user" and "every
// group member". They carry no digest or check code; only the text, the
// network type and a fixed search number.
const (
	anywhereText   = "anywhere"
	everywhereText = "everywhere"

	broadcastNumber = 9527
)

// Anywhere is the broadcast address for users.
var Anywhere = Address{network: NetworkMain, text: anywhereText, broadcast: true}

// Everywhere is the broadcast address for groups.
var Everywhere = Address{network: NetworkGroup, text: everywhereText, broadcast: true}

func broadcastByText(text string) (Address, bool) {
	switch {
	case strings.EqualFold(text, anywhereText):
		return Anywhere, true
	case strings.EqualFold(text, everywhereText):
		return Everywhere, true
	}
	return Address{}, false
}
